package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds all key bindings for the progress view.
type keyMap struct {
	Quit key.Binding
}

// keys is the global key map.
var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "abort"),
	),
}
