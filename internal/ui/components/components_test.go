package components

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/presets"
	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/ui/msgs"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// helpers

func testStyles() theme.Styles {
	return theme.NewStyles(theme.Default())
}

func testTheme() theme.Theme {
	return theme.Default()
}

func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func specialKeyMsg(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// collectMsgs runs cmd and flattens any batch into its messages.
func collectMsgs(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collectMsgs(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusBar tests
// ─────────────────────────────────────────────────────────────────────────────

func TestStatusBar_NewDefault(t *testing.T) {
	sb := NewStatusBar(testTheme())
	if sb.mode != msgs.ModeNormal {
		t.Fatalf("expected ModeNormal, got %v", sb.mode)
	}
}

func TestStatusBar_SetStatus(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(120)
	sb.SetStatus(200, 150*time.Millisecond, 2048, "application/json")

	view := sb.View()
	for _, want := range []string{"200", "150ms", "2.0 KiB", "application/json"} {
		if !strings.Contains(view, want) {
			t.Errorf("status bar should contain %q:\n%s", want, view)
		}
	}
}

func TestStatusBar_SetFailed(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(120)
	sb.SetStatus(200, time.Second, 10, "text/plain")
	sb.SetFailed(10 * time.Second)

	view := sb.View()
	if !strings.Contains(view, "ERR") || !strings.Contains(view, "10.00s") {
		t.Errorf("failed status not rendered:\n%s", view)
	}
	if strings.Contains(view, "text/plain") {
		t.Error("failed status should clear the previous response info")
	}
}

func TestStatusBar_View_ContainsModeIndicator(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(120)
	sb.SetMode(msgs.ModeInsert)
	if !strings.Contains(sb.View(), "[INSERT]") {
		t.Error("status bar should show the mode")
	}
}

func TestStatusBar_MessageLifecycle(t *testing.T) {
	sb := NewStatusBar(testTheme())
	sb.SetWidth(120)

	sb, cmd := sb.Update(msgs.StatusMsg{Text: "Copied", Duration: time.Second})
	if sb.Message() != "Copied" || cmd == nil {
		t.Fatalf("expected message with clear timer, got %q", sb.Message())
	}
	if !strings.Contains(sb.View(), "Copied") {
		t.Error("message should be visible")
	}

	// A newer message is not cleared by the old timer.
	sb, _ = sb.Update(msgs.StatusMsg{Text: "Newer"})
	sb, _ = sb.Update(clearStatusMsg{text: "Copied"})
	if sb.Message() != "Newer" {
		t.Errorf("stale clear removed newer message: %q", sb.Message())
	}

	sb, _ = sb.Update(clearStatusMsg{text: "Newer"})
	if sb.Message() != "" {
		t.Errorf("expected cleared message, got %q", sb.Message())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.50s"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Toast tests
// ─────────────────────────────────────────────────────────────────────────────

func TestToast_Show(t *testing.T) {
	toast := NewToast(testTheme())
	if toast.Visible {
		t.Fatal("toast should start hidden")
	}

	cmd := toast.Show("Request sent!", false, 2*time.Second)
	if !toast.Visible || toast.Text() != "Request sent!" {
		t.Fatalf("unexpected toast state %+v", toast)
	}
	if cmd == nil {
		t.Fatal("Show should return a tick cmd for auto-dismiss")
	}
	if !strings.Contains(toast.View(), "Request sent!") {
		t.Error("view should contain text")
	}
}

func TestToast_DismissOnlyCurrent(t *testing.T) {
	toast := NewToast(testTheme())
	toast.Show("first", false, time.Second)
	toast.Show("second", true, time.Second)

	toast, _ = toast.Update(toastDismissMsg{seq: 1})
	if toast.Text() != "second" {
		t.Fatalf("stale dismiss hid the newer toast")
	}
	toast, _ = toast.Update(toastDismissMsg{seq: 2})
	if toast.Visible || toast.View() != "" {
		t.Fatal("toast should be hidden after dismiss")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Modal tests
// ─────────────────────────────────────────────────────────────────────────────

func TestModal_ConfirmAndCancel(t *testing.T) {
	m := NewModal(testTheme())
	m.Show("Clear history?", "This cannot be undone.", msgs.ClearHistoryMsg{})
	if !m.Visible || !strings.Contains(m.View(), "Clear history?") {
		t.Fatal("modal should be visible with title")
	}

	m, cmd := m.Update(specialKeyMsg(tea.KeyEnter))
	if m.Visible {
		t.Error("modal should close on enter")
	}
	var confirmed bool
	for _, msg := range collectMsgs(cmd) {
		if _, ok := msg.(msgs.ClearHistoryMsg); ok {
			confirmed = true
		}
	}
	if !confirmed {
		t.Error("enter on OK should emit the confirm message")
	}

	m.Show("Clear history?", "", msgs.ClearHistoryMsg{})
	m, _ = m.Update(specialKeyMsg(tea.KeyTab))
	m, cmd = m.Update(specialKeyMsg(tea.KeyEnter))
	for _, msg := range collectMsgs(cmd) {
		if _, ok := msg.(msgs.ClearHistoryMsg); ok {
			t.Error("enter on Cancel must not confirm")
		}
	}
}

func TestModal_EscAndNo(t *testing.T) {
	for _, k := range []tea.KeyMsg{specialKeyMsg(tea.KeyEsc), keyMsg("n")} {
		m := NewModal(testTheme())
		m.Show("t", "m", msgs.ClearHistoryMsg{})
		m, cmd := m.Update(k)
		if m.Visible {
			t.Errorf("%s should close modal", k)
		}
		got := collectMsgs(cmd)
		if len(got) != 1 {
			t.Fatalf("expected one message, got %v", got)
		}
		if mode, ok := got[0].(msgs.SetModeMsg); !ok || mode.Mode != msgs.ModeNormal {
			t.Errorf("expected return to normal mode, got %v", got[0])
		}
	}
}

func TestModal_IgnoresInputWhenHidden(t *testing.T) {
	m := NewModal(testTheme())
	if _, cmd := m.Update(specialKeyMsg(tea.KeyEnter)); cmd != nil {
		t.Error("hidden modal should ignore input")
	}
	if m.View() != "" {
		t.Error("hidden modal should render nothing")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Help tests
// ─────────────────────────────────────────────────────────────────────────────

func TestHelp_ToggleAndClose(t *testing.T) {
	h := NewHelp(testTheme())
	h.SetSize(120, 40)
	h.Toggle()
	if !h.Visible {
		t.Fatal("help should be visible after toggle")
	}
	view := h.View()
	for _, want := range []string{"Keyboard Shortcuts", "Ctrl+Y", "Template picker"} {
		if !strings.Contains(view, want) {
			t.Errorf("help should mention %q", want)
		}
	}

	h, cmd := h.Update(keyMsg("?"))
	if h.Visible || cmd == nil {
		t.Error("? should close help and restore normal mode")
	}
	if h.View() != "" {
		t.Error("hidden help should render nothing")
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Picker tests
// ─────────────────────────────────────────────────────────────────────────────

func TestPicker_OpenListsAll(t *testing.T) {
	catalog := presets.Builtin()
	p := NewPicker(catalog, testTheme(), testStyles())
	p.Open()
	if !p.Visible {
		t.Fatal("picker should be visible")
	}
	if len(p.Filtered()) != len(catalog.Items()) {
		t.Errorf("expected all %d items, got %d", len(catalog.Items()), len(p.Filtered()))
	}
	if !strings.Contains(p.View(), "API Templates") {
		t.Error("view should have a title")
	}
}

func TestPicker_FilterAndSelect(t *testing.T) {
	p := NewPicker(presets.Builtin(), testTheme(), testStyles())
	p.Open()
	for _, r := range "teapot" {
		p, _ = p.Update(keyMsg(string(r)))
	}
	if len(p.Filtered()) == 0 {
		t.Fatal("expected matches for teapot")
	}

	p, cmd := p.Update(specialKeyMsg(tea.KeyEnter))
	if p.Visible {
		t.Error("picker should close after selection")
	}
	var selected *msgs.TemplateSelectedMsg
	for _, msg := range collectMsgs(cmd) {
		if s, ok := msg.(msgs.TemplateSelectedMsg); ok {
			selected = &s
		}
	}
	if selected == nil {
		t.Fatal("expected TemplateSelectedMsg")
	}
	if selected.Request.URL != "https://httpbin.org/status/418" || selected.Request.Method != protocol.MethodGET {
		t.Errorf("unexpected request %+v", selected.Request)
	}
}

func TestPicker_CursorBounds(t *testing.T) {
	p := NewPicker(nil, testTheme(), testStyles())
	p.Open()
	p, _ = p.Update(specialKeyMsg(tea.KeyUp))
	if p.cursor != 0 {
		t.Errorf("cursor should not go below 0, got %d", p.cursor)
	}
	for i := 0; i < 100; i++ {
		p, _ = p.Update(specialKeyMsg(tea.KeyDown))
	}
	if p.cursor != len(p.Filtered())-1 {
		t.Errorf("cursor should stop at last item, got %d", p.cursor)
	}

	for _, r := range "zzzzqqqq" {
		p, _ = p.Update(keyMsg(string(r)))
	}
	if p.cursor != 0 || !strings.Contains(p.View(), "No matches") {
		t.Error("empty result should reset cursor and show placeholder")
	}
	if _, cmd := p.Update(specialKeyMsg(tea.KeyEnter)); cmd != nil {
		t.Error("enter with no matches should do nothing")
	}
}

func TestPicker_Esc(t *testing.T) {
	p := NewPicker(nil, testTheme(), testStyles())
	p.Open()
	p, cmd := p.Update(specialKeyMsg(tea.KeyEsc))
	if p.Visible || cmd == nil {
		t.Error("esc should close picker and restore mode")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 6); got != "hello…" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
}
