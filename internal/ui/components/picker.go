package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/presets"
	"github.com/sadopc/nanoman/internal/ui/msgs"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

const (
	pickerWidth    = 70
	pickerMaxItems = 15
)

// Picker is a fuzzy template picker overlay.
type Picker struct {
	Visible  bool
	input    textinput.Model
	catalog  *presets.Catalog
	filtered []presets.Item
	cursor   int
	theme    theme.Theme
	styles   theme.Styles
}

// NewPicker creates a picker over catalog.
func NewPicker(catalog *presets.Catalog, t theme.Theme, s theme.Styles) Picker {
	ti := textinput.New()
	ti.Placeholder = "Search templates..."
	ti.CharLimit = 64
	ti.Width = pickerWidth - 6

	if catalog == nil {
		catalog = presets.Builtin()
	}
	return Picker{
		input:    ti,
		catalog:  catalog,
		filtered: catalog.Items(),
		theme:    t,
		styles:   s,
	}
}

// Open shows the picker with an empty query.
func (m *Picker) Open() tea.Cmd {
	m.Visible = true
	m.input.SetValue("")
	m.filtered = m.catalog.Items()
	m.cursor = 0
	return m.input.Focus()
}

// Close hides the picker.
func (m *Picker) Close() {
	m.Visible = false
	m.input.Blur()
}

// Filtered returns the items matching the current query.
func (m Picker) Filtered() []presets.Item {
	return m.filtered
}

// Update implements tea.Model.
func (m Picker) Update(msg tea.Msg) (Picker, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			m.Close()
			return m, backToNormal
		case "enter":
			if m.cursor >= len(m.filtered) {
				return m, nil
			}
			item := m.filtered[m.cursor]
			m.Close()
			selected := msgs.TemplateSelectedMsg{
				Label:   item.Label(),
				Request: m.catalog.Request(item.Template, item.Example),
			}
			return m, tea.Batch(backToNormal, func() tea.Msg { return selected })
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filtered = m.catalog.Search(m.input.Value())
	m.cursor = max(min(m.cursor, len(m.filtered)-1), 0)
	return m, cmd
}

// View renders the picker overlay.
func (m Picker) View() string {
	if !m.Visible {
		return ""
	}
	inner := pickerWidth - 4

	title := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(inner).
		Align(lipgloss.Center).
		Render("API Templates")

	var items []string
	for i, it := range m.filtered {
		if i >= pickerMaxItems {
			items = append(items, m.styles.Muted.Render(fmt.Sprintf("… %d more", len(m.filtered)-pickerMaxItems)))
			break
		}
		name := truncate(it.Template.Name, 22)
		path := truncate(it.Example.Path, 24)
		line := fmt.Sprintf("%-22s %-6s %-24s %s", name, it.Example.Method, path, it.Example.Desc)
		line = truncate(line, inner)
		if i == m.cursor {
			items = append(items, m.styles.Cursor.Width(inner).Render(line))
		} else {
			items = append(items, m.styles.Normal.Render(line))
		}
	}
	if len(m.filtered) == 0 {
		items = append(items, m.styles.Muted.Render("No matches"))
	}

	content := title + "\n\n" + m.input.View() + "\n\n" + strings.Join(items, "\n")
	return lipgloss.NewStyle().
		Width(pickerWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}
