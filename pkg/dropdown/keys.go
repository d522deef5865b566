package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/dropdown/internal/disclosure"
)

// KeyMap defines the key bindings a dropdown responds to.
type KeyMap struct {
	Down     key.Binding // next item, opens from the toggle
	Up       key.Binding // previous item
	Escape   key.Binding // close, focus back to the toggle
	Tab      key.Binding // close, focus moves on
	Activate key.Binding // open/close on the toggle, select on an item
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "leave"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter/space", "open/select"),
		),
	}
}

// Normalize maps a key press onto a controller key token. activate is true
// for the activation binding, which is not a controller key.
func (k KeyMap) Normalize(msg tea.KeyMsg) (token disclosure.Key, activate bool) {
	switch {
	case key.Matches(msg, k.Activate):
		return disclosure.KeyOther, true
	case key.Matches(msg, k.Down):
		return disclosure.KeyDown, false
	case key.Matches(msg, k.Up):
		return disclosure.KeyUp, false
	case key.Matches(msg, k.Escape):
		return disclosure.KeyEscape, false
	case key.Matches(msg, k.Tab):
		return disclosure.KeyTab, false
	}
	return disclosure.KeyOther, false
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Down, k.Up, k.Escape}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Activate, k.Escape, k.Tab},
		{k.Down, k.Up},
	}
}
