package config

import "time"

// Config holds the application configuration.
type Config struct {
	Theme             string        `yaml:"theme"`
	DefaultTimeout    time.Duration `yaml:"default_timeout"`
	MaxHighlightLines int           `yaml:"max_highlight_lines"`
	HistoryLimit      int           `yaml:"history_limit"`
	HistoryBackend    string        `yaml:"history_backend"` // json, sqlite
	Workers           int           `yaml:"workers"`
	Proxy             string        `yaml:"proxy"`
	NoProxy           string        `yaml:"no_proxy"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:             "catppuccin-mocha",
		DefaultTimeout:    10 * time.Second,
		MaxHighlightLines: 1000,
		HistoryLimit:      100,
		HistoryBackend:    "json",
		Workers:           4,
		Proxy:             "",
		NoProxy:           "",
	}
}

// HistoryFile returns the history file name for the configured backend.
func (c Config) HistoryFile() string {
	if c.HistoryBackend == "sqlite" {
		return "history.db"
	}
	return "history.json"
}
