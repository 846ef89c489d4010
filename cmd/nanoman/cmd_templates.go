package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sadopc/nanoman/internal/export"
	"github.com/sadopc/nanoman/internal/presets"
)

func templatesCmd() {
	fs := flag.NewFlagSet("templates", flag.ExitOnError)
	curlFlag := fs.Bool("curl", false, "Print each example as a curl command")
	authFlag := fs.Bool("auth", false, "List auth presets instead of templates")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanoman templates [query] [flags]\n\n")
		fmt.Fprintf(os.Stderr, "List built-in and user API templates, fuzzy-filtered by query.\n")
		fmt.Fprintf(os.Stderr, "User templates are read from ~/.config/nanoman/%s.\n\n", presets.FileName)
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nanoman templates\n")
		fmt.Fprintf(os.Stderr, "  nanoman templates github repos --curl\n")
	}

	args, err := parseInterspersed(fs, os.Args[2:])
	if err != nil {
		os.Exit(2)
	}

	catalog := loadCatalog(cliLogger(false))
	if *authFlag {
		printAuthPresets(os.Stdout, catalog)
		return
	}
	printTemplates(os.Stdout, catalog, strings.Join(args, " "), *curlFlag)
}

func printTemplates(w io.Writer, c *presets.Catalog, query string, curl bool) {
	items := c.Search(query)
	if len(items) == 0 {
		fmt.Fprintf(w, "No templates match %q\n", query)
		return
	}
	for _, it := range items {
		req := c.Request(it.Template, it.Example)
		if curl {
			fmt.Fprintf(w, "# %s\n%s\n", it.Label(), export.AsCurl(req))
			continue
		}
		fmt.Fprintf(w, "%-20s %-6s %s", it.Template.Name, req.Method, req.URL)
		if it.Example.Desc != "" {
			fmt.Fprintf(w, "  - %s", it.Example.Desc)
		}
		fmt.Fprintln(w)
	}
}

func printAuthPresets(w io.Writer, c *presets.Catalog) {
	for _, a := range c.Auth {
		fmt.Fprintf(w, "%-12s %s\n", a.ID, a.Description)
		for _, h := range a.Headers() {
			fmt.Fprintf(w, "             %s: %s\n", h.Name, h.Value)
		}
	}
}
