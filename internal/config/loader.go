package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir returns the per-user configuration directory (~/.config/nanoman).
// History, template overrides and the TUI log live here so they do not
// depend on the directory nanoman was started from.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "nanoman"), nil
}

// Load loads configuration from ~/.config/nanoman/config.yaml.
func Load() Config {
	cfg := DefaultConfig()

	dir, err := Dir()
	if err != nil {
		return cfg
	}

	data, err := os.ReadFile(filepath.Join(dir, "config.yaml"))
	if err != nil {
		return cfg
	}

	loaded := cfg
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return cfg
	}
	return sanitize(loaded)
}

// sanitize replaces out-of-range values with their defaults.
func sanitize(cfg Config) Config {
	def := DefaultConfig()
	if cfg.DefaultTimeout <= 0 {
		cfg.DefaultTimeout = def.DefaultTimeout
	}
	if cfg.MaxHighlightLines <= 0 {
		cfg.MaxHighlightLines = def.MaxHighlightLines
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = def.HistoryLimit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	switch cfg.HistoryBackend {
	case "json", "sqlite":
	default:
		cfg.HistoryBackend = def.HistoryBackend
	}
	return cfg
}
