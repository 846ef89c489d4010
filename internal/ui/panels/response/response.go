package response

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/dispatch"
	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

type subTab int

const (
	tabBody subTab = iota
	tabHeaders
)

var subTabLabels = []string{"Body", "Headers"}

// Model is the response panel container wrapping body and headers.
type Model struct {
	body    BodyModel
	headers HeadersModel
	spinner spinner.Model

	styles  theme.Styles
	th      theme.Theme
	active  subTab
	focused bool
	loading bool
	hasResp bool
	raw     []byte
	errText string
	errKind dispatch.Kind
	status  string
	code    int
	width   int
	height  int
}

// New creates a new response panel model. Bodies longer than maxLines
// are shown without highlighting.
func New(t theme.Theme, s theme.Styles, maxLines int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(t.Mauve)

	return Model{
		body:    NewBodyModel(s, t.Highlight(), maxLines),
		headers: NewHeadersModel(s),
		spinner: sp,
		styles:  s,
		th:      t,
	}
}

// SetResponse populates the sub-models from a response.
func (m *Model) SetResponse(resp *protocol.Response) {
	m.loading = false
	m.errText = ""
	if resp == nil {
		m.hasResp = false
		return
	}
	m.hasResp = true
	m.raw = resp.Body
	m.code = resp.StatusCode
	m.status = resp.Status
	if m.status == "" {
		m.status = fmt.Sprintf("%d", resp.StatusCode)
	}

	m.body.SetContent(resp.Body, resp.ContentType)
	m.headers.SetHeaders(resp.Headers)
}

// Body returns the raw body of the displayed response.
func (m Model) Body() []byte {
	if !m.hasResp {
		return nil
	}
	return m.raw
}

// SetError shows a failed request in place of a response.
func (m *Model) SetError(err error) {
	m.loading = false
	m.hasResp = false
	m.errKind = dispatch.KindOf(err)
	m.errText = err.Error()
}

// SetLoading puts the panel into loading state.
func (m *Model) SetLoading(loading bool) tea.Cmd {
	m.loading = loading
	if loading {
		return m.spinner.Tick
	}
	return nil
}

// Loading reports whether a request is in flight.
func (m Model) Loading() bool {
	return m.loading
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h

	// Reserve space: 1 for tab bar, 1 for status line, 2 for border
	innerW := max(w-2, 0)
	innerH := max(h-4, 0)
	m.body.SetSize(innerW, innerH)
	m.headers.SetSize(innerW, innerH)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "1":
			m.active = tabBody
			return m, nil
		case "2":
			m.active = tabHeaders
			return m, nil
		case "left", "right", "h", "l":
			m.active = (m.active + 1) % subTab(len(subTabLabels))
			return m, nil
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.active {
	case tabBody:
		m.body, cmd = m.body.Update(msg)
	case tabHeaders:
		m.headers, cmd = m.headers.Update(msg)
	}
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 0)
	innerH := max(m.height-2, 0)

	var content string
	switch {
	case m.loading:
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center,
			fmt.Sprintf("%s Sending request...", m.spinner.View()))
	case m.errText != "":
		content = m.renderError(innerW, innerH)
	case !m.hasResp:
		content = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center,
			m.styles.Muted.Render("Send a request to see the response"))
	default:
		content = m.renderResponse(innerW, innerH)
	}

	return border.Width(innerW).Height(innerH).Render(content)
}

func (m Model) renderError(w, h int) string {
	title := m.styles.Error.Bold(true).Render(strings.ToUpper(strings.ReplaceAll(m.errKind.String(), "_", " ")))
	text := lipgloss.NewStyle().Width(w).Foreground(m.th.Text).Render(m.errText)
	return lipgloss.NewStyle().Width(w).Height(h).Render(title + "\n\n" + text)
}

func (m Model) renderResponse(w, h int) string {
	var tabs []string
	for i, label := range subTabLabels {
		if subTab(i) == m.active {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(label))
		}
	}
	tabRow := lipgloss.NewStyle().Width(w).Render(strings.Join(tabs, " "))

	statusLine := m.status
	if m.active == tabBody && !m.body.Highlighted() && m.body.hasBody {
		statusLine += m.styles.Hint.Render("  (plain)")
	}
	status := lipgloss.NewStyle().Foreground(m.th.StatusColor(m.code)).Bold(true).Width(w).Render(statusLine)

	var body string
	switch m.active {
	case tabBody:
		body = m.body.View()
	case tabHeaders:
		body = m.headers.View()
	}
	body = lipgloss.NewStyle().Width(w).Height(max(h-2, 0)).Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, tabRow, status, body)
}
