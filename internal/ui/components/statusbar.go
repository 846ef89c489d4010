package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/nanoman/internal/ui/msgs"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	statusCode  int
	failed      bool
	elapsed     time.Duration
	size        int64
	contentType string
	mode        msgs.AppMode
	message     string
	width       int
	theme       theme.Theme
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme) StatusBar {
	return StatusBar{
		theme: t,
		mode:  msgs.ModeNormal,
	}
}

// SetStatus sets the response status info.
func (m *StatusBar) SetStatus(code int, elapsed time.Duration, size int64, contentType string) {
	m.statusCode = code
	m.failed = false
	m.elapsed = elapsed
	m.size = size
	m.contentType = contentType
}

// SetFailed records a request that produced no response.
func (m *StatusBar) SetFailed(elapsed time.Duration) {
	m.SetStatus(0, elapsed, 0, "")
	m.failed = true
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a temporary status message.
func (m *StatusBar) SetMessage(text string) {
	m.message = text
}

// Message returns the current status message.
func (m StatusBar) Message() string {
	return m.message
}

// Update implements tea.Model.
func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	if msg, ok := msg.(msgs.StatusMsg); ok {
		m.message = msg.Text
		if msg.Duration > 0 {
			text := msg.Text
			return m, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
				return clearStatusMsg{text: text}
			})
		}
	}
	if msg, ok := msg.(clearStatusMsg); ok && m.message == msg.text {
		m.message = ""
	}
	return m, nil
}

// clearStatusMsg clears a temporary message unless it was replaced.
type clearStatusMsg struct {
	text string
}

// View renders the status bar.
func (m StatusBar) View() string {
	bg := lipgloss.NewStyle().Background(m.theme.Surface)
	barStyle := bg.Foreground(m.theme.Text).Width(m.width)

	var leftParts []string
	if m.message != "" {
		leftParts = append(leftParts, bg.Foreground(m.theme.Text).Render(m.message))
	} else {
		switch {
		case m.failed:
			leftParts = append(leftParts, bg.Foreground(m.theme.Red).Bold(true).Render("ERR"))
		case m.statusCode > 0:
			leftParts = append(leftParts, bg.Foreground(m.theme.StatusColor(m.statusCode)).Bold(true).
				Render(fmt.Sprintf("%d", m.statusCode)))
		}
		if m.elapsed > 0 {
			leftParts = append(leftParts, bg.Foreground(m.theme.Subtext).Render(FormatDuration(m.elapsed)))
		}
		if m.size > 0 {
			leftParts = append(leftParts, bg.Foreground(m.theme.Subtext).Render(humanize.IBytes(uint64(m.size))))
		}
		if m.contentType != "" {
			leftParts = append(leftParts, bg.Foreground(m.theme.Muted).Render(m.contentType))
		}
	}
	left := strings.Join(leftParts, " │ ")

	modeStr := bg.Foreground(m.theme.Mauve).Bold(true).Render("[" + m.mode.String() + "]")
	hint := bg.Foreground(m.theme.Muted).Render("?:help  ctrl+t:templates  ctrl+r:send")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(modeStr) - lipgloss.Width(hint) - 3
	if gap < 1 {
		gap = 1
	}
	gap1 := gap / 2
	line := " " + left + strings.Repeat(" ", gap1+1) + modeStr + strings.Repeat(" ", gap-gap1+1) + hint
	return barStyle.Render(line)
}

// FormatDuration renders d with a unit suited to its size.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
