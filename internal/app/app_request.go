package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/nanoman/internal/dispatch"
	"github.com/sadopc/nanoman/internal/export"
	"github.com/sadopc/nanoman/internal/import/curl"
	"github.com/sadopc/nanoman/internal/protocol"
	"github.com/sadopc/nanoman/internal/ui/msgs"
)

// sendRequest hands the editor's request to the dispatcher. The blocking
// wait happens inside the returned command, off the event loop.
func (a App) sendRequest() (tea.Model, tea.Cmd) {
	if a.dispatcher == nil {
		return a, a.toast.Show("No dispatcher configured", true, 3*time.Second)
	}
	req := a.editor.BuildRequest()

	a.submission++
	seq := a.submission
	d := a.dispatcher
	send := func() tea.Msg {
		return msgs.ResponseMsg{Seq: seq, Outcome: d.Do(req)}
	}

	a.statusBar.SetMessage("")
	spin := a.response.SetLoading(true)
	return a, tea.Batch(send, spin)
}

func (a App) handleResponse(msg msgs.ResponseMsg) (tea.Model, tea.Cmd) {
	out := msg.Outcome
	if msg.Seq != a.submission {
		a.logger.Debug("dropping superseded outcome", "id", out.ID, "seq", msg.Seq, "latest", a.submission)
		a.refreshHistory()
		return a, nil
	}

	a.refreshHistory()

	if out.Err != nil {
		a.response.SetError(out.Err)
		a.statusBar.SetFailed(out.Elapsed)
		if dispatch.KindOf(out.Err) == dispatch.KindInvalidURL {
			return a, a.toast.Show(out.Err.Error(), true, 3*time.Second)
		}
		return a, a.toast.Show("Request failed: "+out.Err.Error(), true, 5*time.Second)
	}

	resp := out.Response
	a.response.SetResponse(resp)
	a.statusBar.SetStatus(resp.StatusCode, resp.Elapsed, resp.Size, resp.ContentType)
	return a, nil
}

func (a *App) refreshHistory() {
	if a.store == nil {
		return
	}
	a.history.SetEntries(a.store.Recent(a.cfg.HistoryLimit))
}

func (a App) historyLen() int {
	if a.store == nil {
		return 0
	}
	return a.store.Len()
}

func (a App) handleHistorySelected(msg msgs.HistorySelectedMsg) (tea.Model, tea.Cmd) {
	e := msg.Entry
	a.editor.LoadRequest(protocol.Request{
		Method: protocol.Method(e.Method),
		URL:    e.URL,
	})
	a.focus = msgs.FocusEditor
	a.updateFocus()
	return a, func() tea.Msg {
		return msgs.StatusMsg{Text: fmt.Sprintf("Loaded %s %s", e.Method, e.URL), Duration: 3 * time.Second}
	}
}

// clearHistory wipes the store off the event loop; the backend write
// happens inside the returned command.
func (a App) clearHistory() tea.Cmd {
	if a.store == nil {
		return nil
	}
	store := a.store
	return func() tea.Msg {
		return msgs.HistoryClearedMsg{Err: store.Clear()}
	}
}

func (a App) handleHistoryCleared(msg msgs.HistoryClearedMsg) (tea.Model, tea.Cmd) {
	a.refreshHistory()
	if msg.Err != nil {
		a.logger.Error("clear history failed", "err", msg.Err)
		return a, a.toast.Show("Clear failed: "+msg.Err.Error(), true, 3*time.Second)
	}
	return a, a.toast.Show("History cleared", false, 2*time.Second)
}

func (a App) copyAsCurl() (tea.Model, tea.Cmd) {
	req := a.editor.BuildRequest()
	if req.URL == "" {
		return a, a.toast.Show("Nothing to copy", true, 2*time.Second)
	}
	if err := a.copy(export.AsCurl(req)); err != nil {
		return a, a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
	}
	return a, a.toast.Show("Copied as cURL", false, 2*time.Second)
}

func (a App) copyBody() (tea.Model, tea.Cmd) {
	body := a.response.Body()
	if len(body) == 0 {
		return a, a.toast.Show("No response body", true, 2*time.Second)
	}
	if err := a.copy(string(body)); err != nil {
		return a, a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
	}
	return a, a.toast.Show("Copied response body", false, 2*time.Second)
}

// pasteCurl loads a curl command from the clipboard into the editor.
func (a App) pasteCurl() (tea.Model, tea.Cmd) {
	text, err := a.paste()
	if err != nil {
		return a, a.toast.Show("Clipboard error: "+err.Error(), true, 3*time.Second)
	}
	req, err := curl.ParseCurl(text)
	if err != nil {
		a.logger.Debug("paste curl rejected", "err", err)
		return a, a.toast.Show("Not a curl command: "+err.Error(), true, 3*time.Second)
	}
	a.editor.LoadRequest(req)
	a.focus = msgs.FocusEditor
	a.updateFocus()
	return a, a.toast.Show(fmt.Sprintf("Imported %s %s", req.Method, req.URL), false, 2*time.Second)
}
