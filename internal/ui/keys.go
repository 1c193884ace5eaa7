package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the browser.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextPage key.Binding
	PrevPage key.Binding

	// Redirect actions
	Add    key.Binding
	Delete key.Binding

	// Modals
	Confirm key.Binding
	Cancel  key.Binding
	Next    key.Binding
	Accept  key.Binding
	Decline key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh page"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("n", "right", "pgdown"),
			key.WithHelp("n", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("p", "left", "pgup"),
			key.WithHelp("p", "Previous page"),
		),

		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add redirect"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Delete redirect"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "down", "up"),
			key.WithHelp("tab", "Next field"),
		),
		Accept: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "Yes"),
		),
		Decline: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPage, k.PrevPage, k.Add, k.Delete, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.NextPage, k.PrevPage},
		{k.Add, k.Delete, k.Refresh},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
