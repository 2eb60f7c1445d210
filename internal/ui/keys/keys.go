// Package keys defines keyboard shortcuts for the Outboundly TUI.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding

	// Campaign actions
	Generate   key.Binding
	ExportMenu key.Binding
	ResetDraft key.Binding
	CopyResult key.Binding
	Sample     key.Binding

	// Notices & dialogs
	DismissNotice key.Binding
	Settings      key.Binding
	Confirm       key.Binding
	Cancel        key.Binding

	// Call queue
	Refresh  key.Binding
	Dial     key.Binding
	MarkDone key.Binding
	Skip     key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default keyboard shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "next page"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "generate"),
		),
		ExportMenu: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		ResetDraft: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset draft"),
		),
		CopyResult: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy result"),
		),
		Sample: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "sample brief"),
		),
		DismissNotice: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "dismiss notice"),
		),
		Settings: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "settings"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dial: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "dial"),
		),
		MarkDone: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "done"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}
