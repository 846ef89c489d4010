package response

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// HeadersModel displays response headers as a two-column list.
type HeadersModel struct {
	viewport   viewport.Model
	styles     theme.Styles
	hasHeaders bool
}

// NewHeadersModel creates a new headers viewer.
func NewHeadersModel(s theme.Styles) HeadersModel {
	return HeadersModel{
		viewport: viewport.New(0, 0),
		styles:   s,
	}
}

// SetHeaders populates the header display in the given order.
func (m *HeadersModel) SetHeaders(headers protocol.Headers) {
	m.hasHeaders = len(headers) > 0
	var b strings.Builder
	sep := m.styles.Muted.Render(" : ")
	for _, h := range headers {
		fmt.Fprintf(&b, "%s%s%s\n", m.styles.Key.Render(h.Name), sep, m.styles.Normal.Render(h.Value))
	}
	m.viewport.SetContent(strings.TrimRight(b.String(), "\n"))
	m.viewport.GotoTop()
}

// SetSize updates the viewport dimensions.
func (m *HeadersModel) SetSize(w, h int) {
	m.viewport.Width = w
	m.viewport.Height = h
}

// Update implements tea.Model.
func (m HeadersModel) Update(msg tea.Msg) (HeadersModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the headers.
func (m HeadersModel) View() string {
	if !m.hasHeaders {
		return m.styles.Muted.Render("No headers")
	}
	return m.viewport.View()
}
