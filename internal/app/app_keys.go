package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/ui/msgs"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.picker.Visible {
		var cmd tea.Cmd
		a.picker, cmd = a.picker.Update(msg)
		return a, cmd
	}
	if a.help.Visible {
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	}
	if a.modal.Visible {
		var cmd tea.Cmd
		a.modal, cmd = a.modal.Update(msg)
		return a, cmd
	}

	if cmd := a.handleGlobalKey(msg); cmd != nil {
		return a, cmd
	}

	if a.focus == msgs.FocusEditor && a.editor.Editing() {
		return a.updateEditorInsert(msg)
	}
	if a.focus == msgs.FocusHistory && a.history.Filtering() {
		var cmd tea.Cmd
		a.history, cmd = a.history.Update(msg)
		return a, cmd
	}
	return a.handlePanelKey(msg)
}

// handleGlobalKey handles bindings that work in every mode.
func (a App) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return tea.Quit
	case key.Matches(msg, a.keys.SendRequest):
		return func() tea.Msg { return msgs.SendRequestMsg{} }
	case key.Matches(msg, a.keys.Templates):
		return func() tea.Msg { return msgs.OpenPickerMsg{} }
	case key.Matches(msg, a.keys.CopyAsCurl):
		return func() tea.Msg { return msgs.CopyAsCurlMsg{} }
	}
	return nil
}

func (a App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.QuitNormal):
		return a, tea.Quit
	case key.Matches(msg, a.keys.CycleFocus):
		a.cycleFocus(false)
		return a, nil
	case key.Matches(msg, a.keys.CycleFocusRev):
		a.cycleFocus(true)
		return a, nil
	case key.Matches(msg, a.keys.ToggleHistory):
		a.toggleHistory()
		return a, nil
	case key.Matches(msg, a.keys.Help):
		a.showHelp()
		return a, nil
	case key.Matches(msg, a.keys.SendNormal):
		return a.sendRequest()
	case key.Matches(msg, a.keys.CopyBody) && a.focus == msgs.FocusResponse:
		return a.copyBody()
	case key.Matches(msg, a.keys.PasteCurl):
		return a.pasteCurl()
	}

	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusHistory:
		a.history, cmd = a.history.Update(msg)
	case msgs.FocusEditor:
		a.editor, cmd = a.editor.Update(msg)
		a.syncEditorMode()
	case msgs.FocusResponse:
		a.response, cmd = a.response.Update(msg)
	}
	return a, cmd
}

func (a App) updateEditorInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)
	a.syncEditorMode()
	return a, cmd
}

// syncEditorMode mirrors the editor's editing state into the app mode.
func (a *App) syncEditorMode() {
	if a.editor.Editing() {
		a.mode = msgs.ModeInsert
	} else {
		a.mode = msgs.ModeNormal
	}
	a.statusBar.SetMode(a.mode)
}

func (a *App) cycleFocus(reverse bool) {
	panels := []msgs.PanelFocus{msgs.FocusHistory, msgs.FocusEditor, msgs.FocusResponse}
	if !a.layout.HistoryVisible {
		panels = []msgs.PanelFocus{msgs.FocusEditor, msgs.FocusResponse}
	}

	idx := 0
	for i, p := range panels {
		if p == a.focus {
			idx = i
			break
		}
	}

	if reverse {
		idx = (idx - 1 + len(panels)) % len(panels)
	} else {
		idx = (idx + 1) % len(panels)
	}

	a.focus = panels[idx]
	a.updateFocus()
}
