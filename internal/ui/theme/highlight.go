package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/highlight"
)

// Highlight returns the response body palette for t.
func (t Theme) Highlight() highlight.Palette {
	chroma, ok := chromaStyles[t.Name]
	if !ok {
		chroma = "monokai"
	}
	return highlight.Palette{
		Key:         lipgloss.NewStyle().Foreground(t.Blue),
		String:      lipgloss.NewStyle().Foreground(t.Green),
		Number:      lipgloss.NewStyle().Foreground(t.Peach),
		Literal:     lipgloss.NewStyle().Foreground(t.Mauve).Bold(true),
		Punctuation: lipgloss.NewStyle().Foreground(t.Subtext),
		Plain:       lipgloss.NewStyle().Foreground(t.Text),
		ChromaStyle: chroma,
	}
}
