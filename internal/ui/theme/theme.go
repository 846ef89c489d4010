package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/protocol"
)

// Theme holds all colors for the application.
type Theme struct {
	Name string

	// Base colors
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	// Text
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	// Accents
	Mauve    lipgloss.Color
	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Teal     lipgloss.Color
	Blue     lipgloss.Color
	Lavender lipgloss.Color

	// Semantic
	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
}

// MethodColor returns the color for an HTTP method.
func (t Theme) MethodColor(m protocol.Method) lipgloss.Color {
	switch m {
	case protocol.MethodGET:
		return t.Green
	case protocol.MethodPOST:
		return t.Yellow
	case protocol.MethodPUT:
		return t.Blue
	case protocol.MethodPATCH:
		return t.Peach
	case protocol.MethodDELETE:
		return t.Red
	default:
		return t.Text
	}
}

// StatusColor returns the color for an HTTP status code. Zero means the
// request never got a response.
func (t Theme) StatusColor(code int) lipgloss.Color {
	switch {
	case code >= 200 && code < 300:
		return t.Green
	case code >= 300 && code < 400:
		return t.Blue
	case code >= 400 && code < 500:
		return t.Yellow
	case code >= 500, code == 0:
		return t.Red
	default:
		return t.Text
	}
}
