package msgs

import (
	"time"

	"github.com/sadopc/nanoman/internal/core/history"
	"github.com/sadopc/nanoman/internal/dispatch"
	"github.com/sadopc/nanoman/internal/protocol"
)

// Panel focus targets
type PanelFocus int

const (
	FocusHistory PanelFocus = iota
	FocusEditor
	FocusResponse
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModePicker
	ModeModal
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModePicker:
		return "PICKER"
	case ModeModal:
		return "MODAL"
	default:
		return "UNKNOWN"
	}
}

// FocusPanelMsg requests focus change to a specific panel.
type FocusPanelMsg struct {
	Panel PanelFocus
}

// ToggleSidebarMsg toggles history panel visibility.
type ToggleSidebarMsg struct{}

// SendRequestMsg triggers sending the current request.
type SendRequestMsg struct{}

// ResponseMsg carries a finished submission back to the event loop.
// Seq identifies the submission so superseded results can be dropped.
type ResponseMsg struct {
	Seq     int
	Outcome dispatch.Outcome
}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// CopyAsCurlMsg triggers copying the current request as cURL.
type CopyAsCurlMsg struct{}

// OpenPickerMsg opens the template picker.
type OpenPickerMsg struct{}

// TemplateSelectedMsg loads a template example into the editor.
type TemplateSelectedMsg struct {
	Label   string
	Request protocol.Request
}

// HistorySelectedMsg is emitted when a history entry is selected.
type HistorySelectedMsg struct {
	Entry history.Entry
}

// ConfirmClearHistoryMsg asks before wiping history.
type ConfirmClearHistoryMsg struct{}

// ClearHistoryMsg wipes history after confirmation.
type ClearHistoryMsg struct{}

// HistoryClearedMsg reports the result of a background history wipe.
type HistoryClearedMsg struct {
	Err error
}
