package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// LoadCustomTheme loads a theme from a YAML file of color keys. Keys left
// out keep the default theme's color.
func LoadCustomTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file: %w", err)
	}

	var colors map[string]string
	if err := yaml.Unmarshal(data, &colors); err != nil {
		return Theme{}, fmt.Errorf("parsing theme YAML: %w", err)
	}

	t := Default()
	t.Name = colors["name"]
	if t.Name == "" {
		base := filepath.Base(path)
		t.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	fields := map[string]*lipgloss.Color{
		"base":             &t.Base,
		"surface":          &t.Surface,
		"overlay":          &t.Overlay,
		"text":             &t.Text,
		"subtext":          &t.Subtext,
		"muted":            &t.Muted,
		"mauve":            &t.Mauve,
		"red":              &t.Red,
		"peach":            &t.Peach,
		"yellow":           &t.Yellow,
		"green":            &t.Green,
		"teal":             &t.Teal,
		"blue":             &t.Blue,
		"lavender":         &t.Lavender,
		"border_focused":   &t.BorderFocused,
		"border_unfocused": &t.BorderUnfocused,
	}
	for k, v := range colors {
		if dst, ok := fields[k]; ok && v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	return t, nil
}

// LoadCustomThemes loads all YAML themes from a directory. Unreadable
// files are skipped.
func LoadCustomThemes(dir string) map[string]Theme {
	themes := make(map[string]Theme)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return themes
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		t, err := LoadCustomTheme(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		themes[normalizeKey(t.Name)] = t
	}
	return themes
}
