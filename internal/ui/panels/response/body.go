package response

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/highlight"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// BodyModel displays the response body with syntax highlighting.
type BodyModel struct {
	viewport viewport.Model
	styles   theme.Styles
	palette  highlight.Palette
	maxLines int

	width       int
	height      int
	wrap        bool
	hasBody     bool
	highlighted bool
	raw         []byte
	contType    string
}

// NewBodyModel creates a new body viewer.
func NewBodyModel(s theme.Styles, p highlight.Palette, maxLines int) BodyModel {
	return BodyModel{
		viewport: viewport.New(0, 0),
		styles:   s,
		palette:  p,
		maxLines: maxLines,
	}
}

// SetContent sets the body content and highlights it.
func (m *BodyModel) SetContent(body []byte, contentType string) {
	m.raw = body
	m.contType = contentType
	m.hasBody = len(body) > 0
	m.renderContent()
	m.viewport.GotoTop()
}

// Highlighted reports whether the current body is syntax highlighted. It
// is false for plain bodies and bodies over the line limit.
func (m BodyModel) Highlighted() bool {
	return m.highlighted
}

// SetSize updates the viewport dimensions.
func (m *BodyModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.viewport.Height = h
	if m.hasBody {
		m.renderContent()
	}
}

func (m *BodyModel) renderContent() {
	if !m.hasBody {
		m.highlighted = false
		m.viewport.SetContent("")
		return
	}
	out, ok := highlight.RenderBody(m.raw, m.contType, m.maxLines, m.palette)
	m.highlighted = ok
	if m.wrap && m.width > 0 {
		out = lipgloss.NewStyle().Width(m.width).Render(out)
	}
	m.viewport.SetContent(out)
}

// Update implements tea.Model.
func (m BodyModel) Update(msg tea.Msg) (BodyModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "w":
			m.wrap = !m.wrap
			m.renderContent()
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the body.
func (m BodyModel) View() string {
	if !m.hasBody {
		return m.styles.Muted.Render("Empty body")
	}
	return m.viewport.View()
}
