package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sadopc/nanoman/internal/core/urlcheck"
)

func validateCmd() {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanoman validate <url> [urls...]\n\n")
		fmt.Fprintf(os.Stderr, "Check URLs with the same rules used before sending a request.\n")
		fmt.Fprintf(os.Stderr, "Only http:// and https:// URLs with a host are accepted.\n\n")
		fmt.Fprintf(os.Stderr, "Examples:\n")
		fmt.Fprintf(os.Stderr, "  nanoman validate https://httpbin.org/get\n")
		fmt.Fprintf(os.Stderr, "  nanoman validate http://intranet/api ftp://files.example.com\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one URL is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if !validateURLs(os.Stdout, os.Stderr, fs.Args()) {
		os.Exit(1)
	}
}

// validateURLs prints one line per URL and reports whether all passed.
func validateURLs(stdout, stderr io.Writer, urls []string) bool {
	ok := true
	for _, raw := range urls {
		if _, err := urlcheck.Validate(raw); err != nil {
			var invalid *urlcheck.InvalidURLError
			reason := err.Error()
			if errors.As(err, &invalid) {
				reason = invalid.Reason
			}
			fmt.Fprintf(stderr, "FAIL %s: %s\n", raw, reason)
			ok = false
			continue
		}
		fmt.Fprintf(stdout, "OK   %s\n", raw)
	}
	return ok
}
