package sidebar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/ui/msgs"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newSidebarModelForTest() Model {
	th := theme.Default()
	m := New(th, theme.NewStyles(th))
	m.SetSize(60, 20)
	m.SetClock(func() time.Time { return testNow })
	return m
}

func testEntries() []history.Entry {
	return []history.Entry{
		history.NewEntry(testNow.Add(-time.Minute), "POST", "http://internal-service/api/users", history.Status(201), 40*time.Millisecond),
		history.NewEntry(testNow.Add(-time.Hour), "GET", "https://httpbin.org/get", history.Status(200), 120*time.Millisecond),
		history.NewEntry(testNow.Add(-2*time.Hour), "GET", "http://slow.example.com", nil, 10*time.Second),
	}
}

func TestSidebar_View(t *testing.T) {
	m := newSidebarModelForTest()
	if !strings.Contains(m.View(), "No history yet") {
		t.Error("empty panel should say so")
	}

	m.SetEntries(testEntries())
	view := m.View()
	for _, want := range []string{"History", "(3)", "201", "ERR", "1 minute ago", "httpbin.org"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSidebar_FilterAndSelect(t *testing.T) {
	m := newSidebarModelForTest()
	m.SetEntries(testEntries())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.Filtering() {
		t.Fatal("expected filtering mode enabled")
	}
	for _, r := range "HTTPBIN" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if m.Len() != 1 {
		t.Fatalf("filtered len after query = %d, want 1", m.Len())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Filtering() {
		t.Fatal("enter should leave filter input")
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected HistorySelected command")
	}
	sel, ok := cmd().(msgs.HistorySelectedMsg)
	if !ok {
		t.Fatalf("expected HistorySelectedMsg, got %T", cmd())
	}
	if sel.Entry.URL != "https://httpbin.org/get" {
		t.Errorf("selected %q", sel.Entry.URL)
	}
}

func TestSidebar_FilterEscClears(t *testing.T) {
	m := newSidebarModelForTest()
	m.SetEntries(testEntries())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p', 'o', 's', 't'}})
	if m.Len() != 1 {
		t.Fatalf("method filter len = %d, want 1", m.Len())
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Filtering() || m.Len() != 3 {
		t.Errorf("esc should clear the filter, len=%d", m.Len())
	}
}

func TestSidebar_CursorMovement(t *testing.T) {
	m := newSidebarModelForTest()
	m.SetEntries(testEntries())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	if m.cursor != 0 {
		t.Errorf("cursor should not go negative, got %d", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if m.cursor != 2 {
		t.Errorf("G should jump to last, got %d", m.cursor)
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.cursor != 2 {
		t.Errorf("cursor should stop at last, got %d", m.cursor)
	}

	// Shrinking the list clamps the cursor.
	m.SetEntries(testEntries()[:1])
	if m.cursor != 0 {
		t.Errorf("cursor not clamped, got %d", m.cursor)
	}
}

func TestSidebar_ClearRequest(t *testing.T) {
	m := newSidebarModelForTest()
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}}); cmd != nil {
		t.Error("clearing empty history should do nothing")
	}
	m.SetEntries(testEntries())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'X'}})
	if cmd == nil {
		t.Fatal("expected confirm command")
	}
	if _, ok := cmd().(msgs.ConfirmClearHistoryMsg); !ok {
		t.Errorf("expected ConfirmClearHistoryMsg, got %T", cmd())
	}
}

func TestPadMethod(t *testing.T) {
	if got := padMethod("GET"); got != "GET   " {
		t.Errorf("padMethod(GET) = %q", got)
	}
	if got := padMethod("DELETE"); got != "DELETE" {
		t.Errorf("padMethod(DELETE) = %q", got)
	}
}
