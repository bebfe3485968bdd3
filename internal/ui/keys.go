package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global key bindings. List and reader keys are handled
// by the views themselves.
type KeyMap struct {
	Back  key.Binding
	Home  key.Binding
	Menu  key.Binding
	About key.Binding
	Quit  key.Binding
	Help  key.Binding

	// Exit confirmation; any other key cancels
	Confirm key.Binding
}

// DefaultKeyMap returns the default vim-like key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "q"),
			key.WithHelp("esc/q", "back"),
		),
		Home: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "books"),
		),
		Menu: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "menu"),
		),
		About: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "about"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y", "esc", "q"),
			key.WithHelp("y", "exit"),
		),
	}
}
