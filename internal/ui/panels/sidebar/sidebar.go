// Package sidebar renders the request history panel.
package sidebar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/ui/msgs"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// Model is the sidebar panel listing history entries, newest first.
type Model struct {
	entries  []history.Entry
	filtered []int // indices into entries that match the filter
	cursor   int   // index into filtered
	offset   int   // first visible row

	width   int
	height  int
	focused bool

	filtering   bool
	filterInput textinput.Model

	now    func() time.Time
	theme  theme.Theme
	styles theme.Styles
}

// New creates a new sidebar model.
func New(t theme.Theme, s theme.Styles) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 128

	return Model{
		theme:       t,
		styles:      s,
		filterInput: ti,
		now:         time.Now,
	}
}

// SetClock replaces the clock used for relative times.
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

// SetEntries replaces the displayed entries. entries must be newest first.
func (m *Model) SetEntries(entries []history.Entry) {
	m.entries = entries
	m.applyFilter()
}

// Len returns the number of visible rows.
func (m Model) Len() int {
	return len(m.filtered)
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Filtering reports whether the filter input has the cursor.
func (m Model) Filtering() bool {
	return m.filtering
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(key)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.filtering = true
		return m, m.filterInput.Focus()
	case "X":
		if len(m.entries) > 0 {
			return m, func() tea.Msg { return msgs.ConfirmClearHistoryMsg{} }
		}
		return m, nil
	}

	if len(m.filtered) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.filtered)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		m.cursor = len(m.filtered) - 1
	case "enter", "l":
		entry := m.entries[m.filtered[m.cursor]]
		return m, func() tea.Msg { return msgs.HistorySelectedMsg{Entry: entry} }
	}
	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if key.String() == "esc" {
				m.filterInput.SetValue("")
				m.applyFilter()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// applyFilter matches the query against method and URL, case-insensitive.
func (m *Model) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	m.filtered = m.filtered[:0]
	for i, e := range m.entries {
		if query == "" ||
			strings.Contains(strings.ToLower(e.URL), query) ||
			strings.Contains(strings.ToLower(e.Method), query) {
			m.filtered = append(m.filtered, i)
		}
	}
	m.cursor = max(min(m.cursor, len(m.filtered)-1), 0)
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	title := m.styles.Title.Render("History")
	if n := len(m.entries); n > 0 {
		title += m.styles.Muted.Render(fmt.Sprintf(" (%d)", n))
	}

	// Each entry takes two rows.
	listH := innerH - 2
	if m.filtering {
		listH--
	}
	visible := max(listH/2, 1)
	offset := m.offset
	if m.cursor < offset {
		offset = m.cursor
	}
	if m.cursor >= offset+visible {
		offset = m.cursor - visible + 1
	}

	lines := []string{title, ""}
	if len(m.filtered) == 0 {
		lines = append(lines, m.styles.Muted.Render("  No history yet"))
	}
	for vi := offset; vi < len(m.filtered) && vi < offset+visible; vi++ {
		lines = append(lines, m.renderEntry(m.entries[m.filtered[vi]], vi == m.cursor, innerW)...)
	}

	content := fitHeight(strings.Join(lines, "\n"), innerH-boolToInt(m.filtering))
	if m.filtering {
		content += "\n" + m.filterInput.View()
	}

	return border.Width(innerW).Height(innerH).Render(content)
}

func (m Model) renderEntry(e history.Entry, isCursor bool, width int) []string {
	method := protocol.Method(e.Method)
	badge := m.styles.MethodStyle(method).Render(padMethod(e.Method))

	status := m.styles.Error.Render("ERR")
	if e.StatusCode != nil {
		status = lipgloss.NewStyle().Foreground(m.theme.StatusColor(*e.StatusCode)).
			Render(fmt.Sprintf("%d", *e.StatusCode))
	}
	when := humanize.RelTime(e.Timestamp, m.now(), "ago", "from now")
	meta := fmt.Sprintf("%s %s %s", status, m.styles.Muted.Render(fmt.Sprintf("%.0fms", e.ElapsedMS)), m.styles.Muted.Render(when))

	urlW := max(width-8, 4)
	first := badge + " " + truncate(e.URL, urlW)
	second := "       " + meta

	if isCursor {
		return []string{
			m.styles.Cursor.Width(width).Render(padMethod(e.Method) + " " + truncate(e.URL, urlW)),
			m.styles.Selected.Width(width).Render(second),
		}
	}
	return []string{first, second}
}

// padMethod pads an HTTP method to 6 chars.
func padMethod(method string) string {
	if len(method) >= 6 {
		return method[:6]
	}
	return method + strings.Repeat(" ", 6-len(method))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "…"
}

// fitHeight truncates or pads content to the given height.
func fitHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:max(h, 0)]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
