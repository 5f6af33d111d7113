package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Task actions
	ToggleDone key.Binding // Mark done / not done
	Raise      key.Binding // Raise priority
	Lower      key.Binding // Lower priority

	// View
	ToggleShowAll key.Binding // Include done tasks
	Refresh       key.Binding
	Help          key.Binding

	// General
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		ToggleDone: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space/x", "done"),
		),
		Raise: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "raise priority"),
		),
		Lower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "lower priority"),
		),
		ToggleShowAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "show done"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.ToggleDone, k.ToggleShowAll, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},              // Navigation
		{k.ToggleDone, k.Raise, k.Lower},             // Task actions
		{k.ToggleShowAll, k.Refresh, k.Help, k.Quit}, // View & general
	}
}
