package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/sadopc/nanoman/internal/config"
	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/import/curl"
	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/runner"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// headerFlags collects repeated -H values.
type headerFlags []string

func (h *headerFlags) String() string { return strings.Join(*h, ", ") }

func (h *headerFlags) Set(v string) error {
	*h = append(*h, v)
	return nil
}

func sendCmd() {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	var method string
	var headers headerFlags
	var data string
	fs.StringVar(&method, "X", "GET", "HTTP method: GET, POST, PUT, PATCH, DELETE")
	fs.StringVar(&method, "method", "GET", "Alias for -X")
	fs.Var(&headers, "H", "Request header \"Name: value\" (repeatable)")
	fs.Var(&headers, "header", "Alias for -H")
	fs.StringVar(&data, "d", "", "Request body; @file reads a file, @- reads stdin")
	fs.StringVar(&data, "data", "", "Alias for -d")
	queryFlag := fs.String("query", "", "gjson path to extract from a JSON response")
	outputFlag := fs.String("output", "text", "Output format: text, json, junit")
	timeoutFlag := fs.Duration("timeout", 0, "Request timeout (default from config, 10s)")
	colorFlag := fs.String("color", "auto", "Highlight output: auto, always, never")
	verboseFlag := fs.Bool("verbose", false, "Show status line, headers and debug logs")
	failFlag := fs.Bool("fail", false, "Exit 1 when any response has status >= 400")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record the request in history")
	fromCurlFlag := fs.String("from-curl", "", "Build the request from a curl command; @file reads a file, @- reads stdin")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: nanoman send [flags] <url> [url...]\n\n")
		fmt.Fprintf(os.Stderr, "Send a request and print the response body. Several URLs are sent\n")
		fmt.Fprintf(os.Stderr, "concurrently with the same method, headers and body.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nanoman send https://httpbin.org/get\n")
		fmt.Fprintf(os.Stderr, "  nanoman send -X POST -H 'Content-Type: application/json' -d '{\"a\":1}' https://httpbin.org/post\n")
		fmt.Fprintf(os.Stderr, "  nanoman send --query 'headers.Host' https://httpbin.org/get\n")
		fmt.Fprintf(os.Stderr, "  nanoman send --from-curl \"curl -u me:pw https://httpbin.org/basic-auth/me/pw\"\n")
		fmt.Fprintf(os.Stderr, "  nanoman send --output junit https://api.example.com/health https://api.example.com/ready\n")
		fmt.Fprintf(os.Stderr, "\nExit codes:\n")
		fmt.Fprintf(os.Stderr, "  0  All requests got a response\n")
		fmt.Fprintf(os.Stderr, "  1  --fail and a status >= 400, or the query did not match\n")
		fmt.Fprintf(os.Stderr, "  2  A request failed or the arguments were invalid\n")
	}

	urls, err := parseInterspersed(fs, os.Args[2:])
	if err != nil {
		os.Exit(2)
	}
	curlMode := flagSet(fs, "from-curl")
	if len(urls) == 0 && !curlMode {
		fmt.Fprintf(os.Stderr, "Error: at least one URL is required\n\n")
		fs.Usage()
		os.Exit(2)
	}

	switch *outputFlag {
	case "text", "json", "junit":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid output format %q (must be text, json, or junit)\n", *outputFlag)
		os.Exit(2)
	}

	var reqs []protocol.Request
	if curlMode {
		reqs, err = requestsFromCurl(*fromCurlFlag, os.Stdin, urls)
	} else {
		var body *string
		if flagSet(fs, "d", "data") {
			b, err := readBody(data, os.Stdin)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(2)
			}
			body = &b
		}
		reqs, err = buildRequests(method, headers, body, urls)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg := config.Load()
	if *timeoutFlag > 0 {
		cfg.DefaultTimeout = *timeoutFlag
	}
	logger := cliLogger(*verboseFlag)

	var store *history.Store
	if !*noHistoryFlag {
		store, err = openHistory(cfg, logger)
		if err != nil {
			logger.Warn("history disabled", "err", err)
		}
	}

	d, err := newDispatcher(cfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	go func() {
		<-ctx.Done()
		d.Close()
	}()

	results := runner.Run(d, reqs)
	cancel()
	d.Close()
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("closing history", "err", err)
		}
	}

	switch *outputFlag {
	case "json":
		if err := runner.PrintJSON(os.Stdout, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(2)
		}
	case "junit":
		if err := runner.PrintJUnit(os.Stdout, results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JUnit XML: %v\n", err)
			os.Exit(2)
		}
	default:
		opts := runner.TextOptions{
			Verbose:  *verboseFlag,
			Query:    *queryFlag,
			Color:    useColor(*colorFlag, os.Stdout),
			Palette:  theme.Resolve(cfg.Theme, themesDir()).Highlight(),
			MaxLines: cfg.MaxHighlightLines,
		}
		if err := runner.PrintText(os.Stdout, results, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(runner.ExitCode(results, *failFlag))
}

// parseInterspersed parses flags that appear before, between or after
// positional arguments, and returns the positionals in order.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

// flagSet reports whether any of names was given on the command line.
func flagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, n := range names {
			if f.Name == n {
				found = true
			}
		}
	})
	return found
}

// readBody resolves the -d value. "@-" reads stdin and "@path" a file.
func readBody(data string, stdin io.Reader) (string, error) {
	if !strings.HasPrefix(data, "@") {
		return data, nil
	}
	src := data[1:]
	if src == "-" {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading body from stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(b), nil
}

// buildRequests validates the method and headers and builds one request
// per URL. URLs themselves are validated by the dispatcher.
func buildRequests(method string, headers []string, body *string, urls []string) ([]protocol.Request, error) {
	m, err := protocol.ParseMethod(method)
	if err != nil {
		return nil, err
	}

	var hs protocol.Headers
	for _, h := range headers {
		parsed := protocol.ParseHeaders(h)
		if len(parsed) != 1 {
			return nil, fmt.Errorf("invalid header %q (want \"Name: value\")", h)
		}
		hs = append(hs, parsed[0])
	}

	reqs := make([]protocol.Request, len(urls))
	for i, u := range urls {
		reqs[i] = protocol.Request{Method: m, URL: u, Headers: hs, Body: body}
	}
	return reqs, nil
}

// requestsFromCurl parses a curl command (inline, @file or @-). Extra
// URLs reuse the parsed request with a different target.
func requestsFromCurl(src string, stdin io.Reader, urls []string) ([]protocol.Request, error) {
	text, err := readBody(src, stdin)
	if err != nil {
		return nil, err
	}
	req, err := curl.ParseCurl(text)
	if err != nil {
		return nil, fmt.Errorf("parsing curl command: %w", err)
	}
	if len(urls) == 0 {
		return []protocol.Request{req}, nil
	}
	reqs := make([]protocol.Request, len(urls))
	for i, u := range urls {
		r := req
		r.URL = u
		reqs[i] = r
	}
	return reqs, nil
}

// useColor resolves the --color mode against the output stream.
func useColor(mode string, out *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(out.Fd())
}
