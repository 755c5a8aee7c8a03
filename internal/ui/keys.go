package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists the bindings shown in the help line and the help pager.
// Only Help, Events and Quit are matched by the model itself; the others
// reach the typeahead through the text surface.
type keyMap struct {
	Next         key.Binding
	Prev         key.Binding
	Select       key.Binding
	Close        key.Binding
	Open         key.Binding
	Autocomplete key.Binding
	Help         key.Binding
	Events       key.Binding
	Quit         key.Binding
}

func newKeyMap(autocompleteKeys bool) keyMap {
	km := keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select/accept"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close menu"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+@"),
			key.WithHelp("ctrl+space", "open menu"),
		),
		Autocomplete: key.NewBinding(
			key.WithKeys("right", "left"),
			key.WithHelp("→", "complete"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		Events: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "event log"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort"),
		),
	}
	km.Autocomplete.SetEnabled(autocompleteKeys)
	return km
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Select, k.Close, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Select, k.Close, k.Open, k.Autocomplete},
		{k.Help, k.Events, k.Quit},
	}
}
