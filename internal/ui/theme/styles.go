package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/protocol"
)

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	// Panel borders
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style

	// Text styles
	Title   lipgloss.Style
	Normal  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Key     lipgloss.Style
	Hint    lipgloss.Style

	// Components
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Selected    lipgloss.Style
	Cursor      lipgloss.Style
	Label       lipgloss.Style
	LabelActive lipgloss.Style

	methods map[protocol.Method]lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	s := Styles{
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Title:   lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Normal:  lipgloss.NewStyle().Foreground(t.Text),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Error:   lipgloss.NewStyle().Foreground(t.Red),
		Success: lipgloss.NewStyle().Foreground(t.Green),
		Key:     lipgloss.NewStyle().Foreground(t.Mauve),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(t.Subtext).
			Padding(0, 2),
		Selected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		Cursor: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text),
		Label:       lipgloss.NewStyle().Foreground(t.Subtext),
		LabelActive: lipgloss.NewStyle().Foreground(t.Lavender).Bold(true),

		methods: make(map[protocol.Method]lipgloss.Style, len(protocol.Methods)),
	}
	for _, m := range protocol.Methods {
		s.methods[m] = lipgloss.NewStyle().Foreground(t.MethodColor(m)).Bold(true)
	}
	return s
}

// MethodStyle returns the style for an HTTP method.
func (s Styles) MethodStyle(m protocol.Method) lipgloss.Style {
	if st, ok := s.methods[m]; ok {
		return st
	}
	return s.Normal
}
