package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// Model is the editor panel container.
type Model struct {
	form HTTPForm

	focused bool
	width   int
	height  int
	styles  theme.Styles
}

// New creates a new editor panel.
func New(styles theme.Styles) Model {
	return Model{
		form:   NewHTTPForm(styles),
		styles: styles,
		width:  60,
		height: 20,
	}
}

// SetFocused sets whether the editor panel is focused.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.form.SetSize(max(w-2, 10), max(h-2, 5))
}

// Editing returns whether the editor has an active text input.
func (m Model) Editing() bool {
	return m.form.Editing()
}

// Form returns a pointer to the HTTPForm.
func (m *Model) Form() *HTTPForm {
	return &m.form
}

// BuildRequest constructs a request from the form.
func (m Model) BuildRequest() protocol.Request {
	return m.form.BuildRequest()
}

// LoadRequest replaces the form contents with req.
func (m *Model) LoadRequest(req protocol.Request) {
	m.form.LoadRequest(req)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// View renders the editor panel.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}
	return border.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(m.form.View())
}
