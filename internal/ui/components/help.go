package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/ui/theme"
)

type helpSection struct {
	Title    string
	Bindings []helpBinding
}

type helpBinding struct {
	Key  string
	Desc string
}

var helpSections = []helpSection{
	{
		Title: "General",
		Bindings: []helpBinding{
			{"Ctrl+C / q", "Quit"},
			{"Ctrl+R / S", "Send request"},
			{"Ctrl+T", "Template picker"},
			{"Ctrl+Y", "Copy request as cURL"},
			{"P", "Paste cURL command into editor"},
			{"?", "Toggle this help"},
			{"Tab / Shift+Tab", "Cycle panel focus"},
			{"b", "Toggle history panel"},
		},
	},
	{
		Title: "Editor",
		Bindings: []helpBinding{
			{"m", "Cycle HTTP method"},
			{"i / Enter", "Edit focused field"},
			{"j / k", "Next / previous field"},
			{"Esc", "Stop editing"},
		},
	},
	{
		Title: "Response",
		Bindings: []helpBinding{
			{"1 / 2", "Body / headers"},
			{"j / k", "Scroll down / up"},
			{"g / G", "Top / bottom"},
			{"y", "Copy response body"},
		},
	},
	{
		Title: "History",
		Bindings: []helpBinding{
			{"j / k", "Move cursor"},
			{"Enter", "Load entry into editor"},
			{"/", "Filter by URL or method"},
			{"X", "Clear history"},
		},
	},
}

// Help is a help overlay showing keybindings.
type Help struct {
	Visible  bool
	viewport viewport.Model
	theme    theme.Theme
	width    int
	height   int
}

// NewHelp creates a new help overlay.
func NewHelp(t theme.Theme) Help {
	return Help{theme: t}
}

// SetSize sets the terminal dimensions for centering.
func (m *Help) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Toggle toggles help visibility.
func (m *Help) Toggle() {
	m.Visible = !m.Visible
	if m.Visible {
		m.buildViewport()
	}
}

func (m *Help) buildViewport() {
	const contentWidth = 56

	keyStyle := lipgloss.NewStyle().Foreground(m.theme.Mauve).Bold(true).Width(18).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	sectionStyle := lipgloss.NewStyle().Foreground(m.theme.Lavender).Bold(true).MarginTop(1)
	sepStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var lines []string
	for _, section := range helpSections {
		lines = append(lines, sectionStyle.Render(section.Title))
		lines = append(lines, sepStyle.Render(strings.Repeat("─", contentWidth)))
		for _, b := range section.Bindings {
			lines = append(lines, keyStyle.Render(b.Key)+sepStyle.Render(" │ ")+descStyle.Render(b.Desc))
		}
	}

	vpHeight := max(m.height-8, 10)
	m.viewport = viewport.New(contentWidth, vpHeight)
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// Update implements tea.Model.
func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "?", "q":
			m.Visible = false
			return m, backToNormal
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the help overlay.
func (m Help) View() string {
	if !m.Visible {
		return ""
	}
	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(56).
		Align(lipgloss.Center).
		Render("Keyboard Shortcuts")

	return lipgloss.NewStyle().
		Width(62).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(title + "\n\n" + m.viewport.View())
}
