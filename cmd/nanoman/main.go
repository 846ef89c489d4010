package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/app"
	"github.com/sadopc/nanoman/internal/config"
	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/dispatch"
	"github.com/sadopc/nanoman/internal/presets"
	httpclient "github.com/sadopc/nanoman/internal/protocol/http"
)

// Set at build time with -ldflags "-X main.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "send":
			sendCmd()
			return
		case "history":
			historyCmd()
			return
		case "templates":
			templatesCmd()
			return
		case "validate":
			validateCmd()
			return
		case "completion":
			completionCmd()
			return
		case "version", "--version":
			fmt.Printf("nanoman %s (%s) built %s\n", version, commit, date)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `nanoman - a small HTTP request tool for the terminal

Usage:
  nanoman                          Launch TUI (interactive mode)
  nanoman <command> [args] [flags] Run a subcommand

Commands:
  send        Send a request and print the response
  history     List, search or clear request history
  templates   List API templates, optionally filtered
  validate    Check URLs the way the request editor does
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

Configuration is read from ~/.config/nanoman/config.yaml.
Run 'nanoman <command> --help' for more information about a command.
`)
}

func tuiCmd() {
	cfg := config.Load()

	logger, closeLog := tuiLogger()
	defer closeLog()

	store, err := openHistory(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	d, err := newDispatcher(cfg, store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model := app.New(cfg, d, store, loadCatalog(logger), app.WithLogger(logger))
	p := tea.NewProgram(model, tea.WithAltScreen())

	_, runErr := p.Run()
	d.Close()
	if err := store.Close(); err != nil {
		logger.Error("closing history", "err", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// tuiLogger logs to a file in the config directory; the terminal belongs
// to the UI.
func tuiLogger() (*slog.Logger, func()) {
	dir, err := config.Dir()
	if err == nil {
		err = os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "nanoman.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}
	level := slog.LevelInfo
	if os.Getenv("NANOMAN_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), func() { f.Close() }
}

// cliLogger logs to stderr, quietly unless verbose.
func cliLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openHistory opens the configured history backend in the config directory.
func openHistory(cfg config.Config, logger *slog.Logger) (*history.Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("locating config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(dir, cfg.HistoryFile())

	var backend history.Backend
	switch cfg.HistoryBackend {
	case "sqlite":
		b, err := history.NewSQLiteBackend(path)
		if err != nil {
			return nil, fmt.Errorf("opening history database: %w", err)
		}
		backend = b
	default:
		backend = history.NewFileBackend(path)
	}
	store := history.NewStore(backend, history.WithLimit(cfg.HistoryLimit), history.WithLogger(logger))
	store.Load()
	return store, nil
}

func newDispatcher(cfg config.Config, store *history.Store, logger *slog.Logger) (*dispatch.Dispatcher, error) {
	client, err := httpclient.New(
		httpclient.WithTimeout(cfg.DefaultTimeout),
		httpclient.WithProxy(cfg.Proxy, cfg.NoProxy),
	)
	if err != nil {
		return nil, err
	}
	var recorder dispatch.Recorder
	if store != nil {
		recorder = store
	}
	return dispatch.New(client, recorder,
		dispatch.WithTimeout(cfg.DefaultTimeout),
		dispatch.WithWorkers(cfg.Workers),
		dispatch.WithLogger(logger),
	), nil
}

// loadCatalog merges user templates over the embedded catalog. A broken
// user file is logged and the built-in catalog is used.
func loadCatalog(logger *slog.Logger) *presets.Catalog {
	dir, err := config.Dir()
	if err != nil {
		return presets.Builtin()
	}
	c, err := presets.Load(dir)
	if err != nil {
		logger.Warn("loading user templates", "err", err)
	}
	return c
}

// themesDir is where custom theme YAML files are looked up.
func themesDir() string {
	dir, err := config.Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "themes")
}
