package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application keybindings.
type KeyMap struct {
	// Global
	Quit        key.Binding
	SendRequest key.Binding
	Templates   key.Binding
	CopyAsCurl  key.Binding
	Help        key.Binding

	// Normal mode only
	QuitNormal    key.Binding
	SendNormal    key.Binding
	CopyBody      key.Binding
	PasteCurl     key.Binding
	CycleFocus    key.Binding
	CycleFocusRev key.Binding
	ToggleHistory key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		SendRequest: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "send request"),
		),
		Templates: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "templates"),
		),
		CopyAsCurl: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy as curl"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		QuitNormal: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		SendNormal: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "send request"),
		),
		CopyBody: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy response body"),
		),
		PasteCurl: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "paste curl command"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		CycleFocusRev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "toggle history"),
		),
	}
}
