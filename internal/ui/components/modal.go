package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/ui/msgs"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

const modalWidth = 50

// Modal is a yes/no confirm dialog.
type Modal struct {
	Visible   bool
	Title     string
	Message   string
	onConfirm tea.Msg
	focusOK   bool
	theme     theme.Theme
}

// NewModal creates a new modal dialog.
func NewModal(t theme.Theme) Modal {
	return Modal{theme: t, focusOK: true}
}

// Show displays the modal. onConfirm is emitted if the user picks OK.
func (m *Modal) Show(title, message string, onConfirm tea.Msg) {
	m.Visible = true
	m.Title = title
	m.Message = message
	m.onConfirm = onConfirm
	m.focusOK = true
}

func backToNormal() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }

// Update implements tea.Model.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "esc", "n":
		m.Visible = false
		return m, backToNormal
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.focusOK = !m.focusOK
	case "y":
		m.focusOK = true
		fallthrough
	case "enter":
		m.Visible = false
		if m.focusOK && m.onConfirm != nil {
			confirm := m.onConfirm
			return m, tea.Batch(backToNormal, func() tea.Msg { return confirm })
		}
		return m, backToNormal
	}
	return m, nil
}

// View renders the modal dialog.
func (m Modal) View() string {
	if !m.Visible {
		return ""
	}

	center := lipgloss.NewStyle().Width(modalWidth - 4).Align(lipgloss.Center)
	idle := lipgloss.NewStyle().Padding(0, 3).Background(m.theme.Surface).Foreground(m.theme.Subtext)
	okStyle, cancelStyle := idle, idle
	if m.focusOK {
		okStyle = okStyle.Background(m.theme.Mauve).Foreground(m.theme.Base).Bold(true)
	} else {
		cancelStyle = cancelStyle.Background(m.theme.Red).Foreground(m.theme.Base).Bold(true)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Center, okStyle.Render("OK"), "  ", cancelStyle.Render("Cancel"))

	content := center.Foreground(m.theme.Text).Bold(true).Render(m.Title) + "\n\n" +
		center.Foreground(m.theme.Subtext).Render(m.Message) + "\n\n" +
		center.Render(buttons)

	return lipgloss.NewStyle().
		Width(modalWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
