// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
// Letters are never bound: every printable key goes to the input.
type KeyMap struct {
	// Quit exits without picking.
	Quit key.Binding

	// Clear empties the input, or quits when it is already empty.
	Clear key.Binding

	// Up moves the highlight up the candidate list.
	Up key.Binding

	// Down moves the highlight down the candidate list.
	Down key.Binding

	// Select picks the highlighted candidate.
	Select key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n", "tab"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "pick"),
		),
	}
}

// ShortHelp returns the hints shown while typing.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Clear, k.Quit}
}

// ResultsHelp returns the hints shown while candidates are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Clear}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Clear, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
