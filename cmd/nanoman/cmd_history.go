package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/nanoman/internal/config"
	"github.com/sadopc/nanoman/internal/core/history"
)

func historyCmd() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	limitFlag := fs.Int("limit", 20, "Maximum entries to list")
	outputFlag := fs.String("output", "text", "Output format: text, json")
	yesFlag := fs.Bool("yes", false, "Clear without asking")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanoman history [list|search <query>|clear] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Show recorded requests, newest first. Only method, URL, status,\n")
		fmt.Fprintf(os.Stderr, "elapsed time and timestamp are stored.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nanoman history\n")
		fmt.Fprintf(os.Stderr, "  nanoman history search httpbin --output json\n")
		fmt.Fprintf(os.Stderr, "  nanoman history clear --yes\n")
	}

	args, err := parseInterspersed(fs, os.Args[2:])
	if err != nil {
		os.Exit(2)
	}
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	cfg := config.Load()
	store, err := openHistory(cfg, cliLogger(false))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var entries []history.Entry
	switch sub {
	case "list":
		entries = store.Recent(*limitFlag)
	case "search":
		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Error: search needs a query\n\n")
			fs.Usage()
			os.Exit(2)
		}
		entries = newestFirst(store.Search(strings.Join(args, " ")), *limitFlag)
	case "clear":
		n := store.Len()
		if n == 0 {
			fmt.Println("History is already empty")
			return
		}
		if !*yesFlag && !confirm(os.Stdin, os.Stderr, fmt.Sprintf("Delete all %d history entries? [y/N] ", n)) {
			fmt.Println("Aborted")
			return
		}
		if err := store.Clear(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared %d entries\n", n)
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown history command %q\n\n", sub)
		fs.Usage()
		os.Exit(2)
	}

	switch *outputFlag {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if entries == nil {
			entries = []history.Entry{}
		}
		if err := enc.Encode(entries); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		printEntries(os.Stdout, entries, time.Now())
	}
}

// newestFirst reverses oldest-first entries and keeps at most limit.
func newestFirst(entries []history.Entry, limit int) []history.Entry {
	out := make([]history.Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, entries[i])
	}
	return out
}

func printEntries(w io.Writer, entries []history.Entry, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No history")
		return
	}
	for _, e := range entries {
		status := "ERR"
		if e.StatusCode != nil {
			status = fmt.Sprintf("%d", *e.StatusCode)
		}
		when := humanize.RelTime(e.Timestamp, now, "ago", "from now")
		fmt.Fprintf(w, "%-16s %-6s %-3s %8.0fms  %s\n", when, e.Method, status, e.ElapsedMS, e.URL)
	}
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
