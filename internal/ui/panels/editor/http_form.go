package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/highlight"
	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// Field identifies a focusable field in the HTTP form.
type Field int

const (
	FieldMethod Field = iota
	FieldURL
	FieldHeaders
	FieldBody
)

const fieldCount = 4

var fieldLabels = [fieldCount]string{"Method", "URL", "Headers", "Body"}

// HTTPForm is the HTTP request form component.
type HTTPForm struct {
	Method protocol.Method

	url     textinput.Model
	headers textarea.Model
	body    textarea.Model

	focusField Field

	width  int
	height int
	styles theme.Styles
}

// NewHTTPForm creates a new HTTPForm.
func NewHTTPForm(styles theme.Styles) HTTPForm {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://api.example.com/users"
	urlInput.CharLimit = 2048
	urlInput.Width = 40

	headerArea := textarea.New()
	headerArea.Placeholder = "Content-Type: application/json"
	headerArea.ShowLineNumbers = false
	headerArea.CharLimit = 0
	headerArea.SetHeight(4)

	bodyArea := textarea.New()
	bodyArea.Placeholder = `{"key": "value"}`
	bodyArea.ShowLineNumbers = false
	bodyArea.CharLimit = 0
	bodyArea.SetHeight(6)

	f := HTTPForm{
		Method:     protocol.MethodGET,
		url:        urlInput,
		headers:    headerArea,
		body:       bodyArea,
		focusField: FieldURL,
		styles:     styles,
	}
	f.SetSize(60, 20)
	return f
}

// SetSize updates the form dimensions. Headers get a third of the space
// left after the URL row, the body gets the rest.
func (m *HTTPForm) SetSize(w, h int) {
	m.width = w
	m.height = h

	m.url.Width = max(w-12, 10)

	contentW := max(w-2, 10)
	free := max(h-6, 4) // url row, two labels, spacing
	headerH := max(free/3, 2)
	m.headers.SetWidth(contentW)
	m.headers.SetHeight(headerH)
	m.body.SetWidth(contentW)
	m.body.SetHeight(max(free-headerH, 2))
}

// Focused returns the focused field.
func (m HTTPForm) Focused() Field {
	return m.focusField
}

// FocusURL focuses the URL input field for editing.
func (m *HTTPForm) FocusURL() tea.Cmd {
	m.focusField = FieldURL
	m.blurAll()
	m.url.CursorEnd()
	return m.url.Focus()
}

// Editing returns whether any text field has the cursor.
func (m HTTPForm) Editing() bool {
	return m.url.Focused() || m.headers.Focused() || m.body.Focused()
}

// Update implements tea.Model.
func (m HTTPForm) Update(msg tea.Msg) (HTTPForm, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		if m.Editing() {
			return m.updateEditing(key)
		}
		return m.updateNormal(key)
	}
	return m.updateActive(msg)
}

func (m HTTPForm) updateNormal(msg tea.KeyMsg) (HTTPForm, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		m.focusField = (m.focusField + 1) % fieldCount
	case "k", "up":
		m.focusField = (m.focusField + fieldCount - 1) % fieldCount
	case "m":
		m.CycleMethod()
	case "enter", "i", " ":
		if m.focusField == FieldMethod {
			if msg.String() != "i" {
				m.CycleMethod()
			}
			return m, nil
		}
		return m, m.focusActive()
	}
	return m, nil
}

func (m HTTPForm) updateEditing(msg tea.KeyMsg) (HTTPForm, tea.Cmd) {
	if msg.String() == "esc" {
		m.blurAll()
		return m, nil
	}
	if m.focusField == FieldURL && msg.String() == "enter" {
		m.blurAll()
		return m, nil
	}
	return m.updateActive(msg)
}

func (m HTTPForm) updateActive(msg tea.Msg) (HTTPForm, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focusField {
	case FieldURL:
		m.url, cmd = m.url.Update(msg)
	case FieldHeaders:
		m.headers, cmd = m.headers.Update(msg)
	case FieldBody:
		m.body, cmd = m.body.Update(msg)
	}
	return m, cmd
}

func (m *HTTPForm) focusActive() tea.Cmd {
	m.blurAll()
	switch m.focusField {
	case FieldURL:
		return m.url.Focus()
	case FieldHeaders:
		return m.headers.Focus()
	case FieldBody:
		return m.body.Focus()
	}
	return nil
}

func (m *HTTPForm) blurAll() {
	m.url.Blur()
	m.headers.Blur()
	m.body.Blur()
}

// CycleMethod advances to the next HTTP method.
func (m *HTTPForm) CycleMethod() {
	m.Method = m.Method.Next()
}

// SetHeaders sets the header text, one "Name: value" per line.
func (m *HTTPForm) SetHeaders(text string) {
	m.headers.SetValue(text)
}

// SetBody sets the body content.
func (m *HTTPForm) SetBody(content string) {
	m.body.SetValue(content)
}

// BuildRequest constructs a protocol.Request from the form state. An empty
// body editor means no body. A JSON-looking body without an explicit
// Content-Type is sent as application/json; the body itself is untouched.
func (m HTTPForm) BuildRequest() protocol.Request {
	req := protocol.Request{
		Method:  m.Method,
		URL:     strings.TrimSpace(m.url.Value()),
		Headers: protocol.ParseHeaders(m.headers.Value()),
	}
	if body := m.body.Value(); strings.TrimSpace(body) != "" {
		req.Body = &body
		if len(req.Headers.Values("Content-Type")) == 0 && highlight.LooksJSON([]byte(body)) {
			req.Headers = append(req.Headers, protocol.Header{Name: "Content-Type", Value: "application/json"})
		}
	}
	return req
}

// LoadRequest populates the form from req.
func (m *HTTPForm) LoadRequest(req protocol.Request) {
	if method, err := protocol.ParseMethod(string(req.Method)); err == nil {
		m.Method = method
	}
	m.url.SetValue(req.URL)
	m.headers.SetValue(req.Headers.String())
	m.body.SetValue(req.BodyString())
	m.blurAll()
	m.focusField = FieldURL
}

// View renders the HTTP form.
func (m HTTPForm) View() string {
	var b strings.Builder

	method := m.styles.MethodStyle(m.Method).Render(string(m.Method))
	if m.focusField == FieldMethod {
		method = m.styles.Cursor.Render(" " + string(m.Method) + " ")
	}
	b.WriteString(method + " " + m.url.View())
	b.WriteString("\n\n")

	b.WriteString(m.label(FieldHeaders) + "\n")
	b.WriteString(m.headers.View())
	b.WriteString("\n")
	b.WriteString(m.label(FieldBody) + "\n")
	b.WriteString(m.body.View())

	return b.String()
}

func (m HTTPForm) label(f Field) string {
	if m.focusField == f {
		return m.styles.LabelActive.Render("▸ " + fieldLabels[f])
	}
	return m.styles.Label.Render("  " + fieldLabels[f])
}
