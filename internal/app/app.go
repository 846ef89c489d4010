// Package app wires the panels, overlays and the request dispatcher into
// the root Bubble Tea model.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/nanoman/internal/config"
	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/dispatch"
	"github.com/sadopc/nanoman/internal/presets"
	"github.com/sadopc/nanoman/internal/ui/components"
	"github.com/sadopc/nanoman/internal/ui/layout"
	"github.com/sadopc/nanoman/internal/ui/msgs"
	"github.com/sadopc/nanoman/internal/ui/panels/editor"
	"github.com/sadopc/nanoman/internal/ui/panels/response"
	"github.com/sadopc/nanoman/internal/ui/panels/sidebar"
	"github.com/sadopc/nanoman/internal/ui/theme"
)

// App is the root Bubble Tea model.
type App struct {
	history  sidebar.Model
	editor   editor.Model
	response response.Model

	statusBar components.StatusBar
	help      components.Help
	toast     components.Toast
	modal     components.Modal
	picker    components.Picker

	dispatcher *dispatch.Dispatcher
	store      *history.Store
	cfg        config.Config
	logger     *slog.Logger
	copy       func(string) error
	paste      func() (string, error)

	// submission numbers sends; a ResponseMsg for an older one is dropped.
	submission int

	mode           msgs.AppMode
	focus          msgs.PanelFocus
	historyVisible bool
	layout         layout.PanelLayout
	keys           KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// Option configures an App.
type Option func(*App)

// WithTheme overrides the theme resolved from the config.
func WithTheme(t theme.Theme) Option {
	return func(a *App) { a.theme = t }
}

// WithLogger sets the logger. The terminal belongs to the UI, so callers
// should point it at a file.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(a *App) {
		if write != nil {
			a.copy = write
		}
	}
}

// WithPasteSource replaces the clipboard reader used to import curl
// commands.
func WithPasteSource(read func() (string, error)) Option {
	return func(a *App) {
		if read != nil {
			a.paste = read
		}
	}
}

// New creates the root model. d sends requests and store is the history
// it records into.
func New(cfg config.Config, d *dispatch.Dispatcher, store *history.Store, catalog *presets.Catalog, opts ...Option) App {
	a := App{
		dispatcher:     d,
		store:          store,
		cfg:            cfg,
		logger:         slog.New(slog.DiscardHandler),
		copy:           clipboard.WriteAll,
		paste:          clipboard.ReadAll,
		mode:           msgs.ModeNormal,
		focus:          msgs.FocusEditor,
		historyVisible: true,
		keys:           DefaultKeyMap(),
	}
	if dir, err := config.Dir(); err == nil {
		a.theme = theme.Resolve(cfg.Theme, filepath.Join(dir, "themes"))
	} else {
		a.theme = theme.Resolve(cfg.Theme, "")
	}
	for _, opt := range opts {
		opt(&a)
	}

	t := a.theme
	s := theme.NewStyles(t)
	a.styles = s

	a.history = sidebar.New(t, s)
	a.editor = editor.New(s)
	a.response = response.New(t, s, cfg.MaxHighlightLines)
	a.statusBar = components.NewStatusBar(t)
	a.help = components.NewHelp(t)
	a.toast = components.NewToast(t)
	a.modal = components.NewModal(t)
	a.picker = components.NewPicker(catalog, t, s)

	a.refreshHistory()
	a.updateFocus()
	return a
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg, a.historyVisible)
		a.resizePanels()
		a.ready = true
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case msgs.SendRequestMsg:
		return a.sendRequest()
	case msgs.ResponseMsg:
		return a.handleResponse(msg)
	case msgs.ToggleSidebarMsg:
		a.toggleHistory()
		return a, nil
	case msgs.ShowHelpMsg:
		a.showHelp()
		return a, nil
	case msgs.OpenPickerMsg:
		a.mode = msgs.ModePicker
		a.statusBar.SetMode(a.mode)
		return a, a.picker.Open()
	case msgs.SetModeMsg:
		a.mode = msg.Mode
		a.statusBar.SetMode(msg.Mode)
		return a, nil
	case msgs.FocusPanelMsg:
		a.focus = msg.Panel
		a.updateFocus()
		return a, nil
	case msgs.ToastMsg:
		return a, a.toast.Show(msg.Text, msg.IsError, msg.Duration)
	case msgs.CopyAsCurlMsg:
		return a.copyAsCurl()
	case msgs.TemplateSelectedMsg:
		a.editor.LoadRequest(msg.Request)
		a.focus = msgs.FocusEditor
		a.updateFocus()
		return a, a.toast.Show("Template: "+msg.Label, false, 2*time.Second)
	case msgs.HistorySelectedMsg:
		return a.handleHistorySelected(msg)
	case msgs.ConfirmClearHistoryMsg:
		a.modal.Show("Clear history", fmt.Sprintf("Delete all %d history entries?", a.historyLen()), msgs.ClearHistoryMsg{})
		a.mode = msgs.ModeModal
		a.statusBar.SetMode(a.mode)
		return a, nil
	case msgs.ClearHistoryMsg:
		return a, a.clearHistory()
	case msgs.HistoryClearedMsg:
		return a.handleHistoryCleared(msg)
	}

	var cmd tea.Cmd
	a.toast, cmd = a.toast.Update(msg)
	cmds = append(cmds, cmd)
	a.statusBar, cmd = a.statusBar.Update(msg)
	cmds = append(cmds, cmd)
	a.response, cmd = a.response.Update(msg)
	cmds = append(cmds, cmd)
	if a.picker.Visible {
		a.picker, cmd = a.picker.Update(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *App) toggleHistory() {
	a.historyVisible = !a.historyVisible
	a.layout = layout.Calculate(a.width, a.height, a.historyVisible)
	a.resizePanels()
}

func (a *App) showHelp() {
	a.mode = msgs.ModeModal
	a.statusBar.SetMode(a.mode)
	a.help.SetSize(a.width, a.height)
	a.help.Toggle()
}

func (a *App) updateFocus() {
	if a.focus == msgs.FocusHistory && !a.layout.HistoryVisible && a.ready {
		a.focus = msgs.FocusEditor
	}
	a.history.SetFocused(a.focus == msgs.FocusHistory)
	a.editor.SetFocused(a.focus == msgs.FocusEditor)
	a.response.SetFocused(a.focus == msgs.FocusResponse)
}

func (a *App) resizePanels() {
	l := a.layout
	a.history.SetSize(l.HistoryWidth, l.ContentHeight)
	a.editor.SetSize(l.EditorWidth, l.EditorHeight)
	a.response.SetSize(l.ResponseWidth, l.ResponseHeight)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.updateFocus()
}

func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	var panels string
	if a.layout.Stacked {
		panels = lipgloss.JoinVertical(lipgloss.Left, a.editor.View(), a.response.View())
	} else {
		var views []string
		if a.layout.HistoryVisible {
			views = append(views, a.history.View())
		}
		views = append(views, a.editor.View(), a.response.View())
		panels = lipgloss.JoinHorizontal(lipgloss.Top, views...)
	}

	main := lipgloss.JoinVertical(lipgloss.Left, a.titleBar(), panels, a.statusBar.View())

	switch {
	case a.picker.Visible:
		main = a.overlayCenter(a.picker.View())
	case a.help.Visible:
		main = a.overlayCenter(a.help.View())
	case a.modal.Visible:
		main = a.overlayCenter(a.modal.View())
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}
	return main
}

func (a App) titleBar() string {
	name := lipgloss.NewStyle().Foreground(a.theme.Mauve).Bold(true).Render(" nanoman")
	info := a.styles.Muted.Render(fmt.Sprintf("  timeout %s", a.cfg.DefaultTimeout))
	return lipgloss.NewStyle().Width(a.width).MaxHeight(1).Render(name + info)
}

func (a App) overlayCenter(overlay string) string {
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(a.theme.Base),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	gap := max(width-lipgloss.Width(overlay)-2, 0)
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
