package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"stationpicker/internal/combobox"
	"stationpicker/internal/form"
)

// KeyMap holds every binding shown in help: the application's own, the
// form's and the combobox's
type KeyMap struct {
	Help key.Binding
	Quit key.Binding

	Form     form.KeyMap
	Combobox combobox.KeyMap
}

// DefaultKeyMap returns the default bindings. Printable keys belong to the
// search input, so application keys avoid them.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "key reference")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Form:     form.DefaultKeyMap(),
		Combobox: combobox.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Combobox.Down,
		k.Combobox.Confirm,
		k.Combobox.Close,
		k.Form.Next,
		k.Help,
		k.Quit,
	}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Combobox.Up, k.Combobox.Down, k.Combobox.Expand},
		{k.Combobox.Confirm, k.Combobox.Close},
		{k.Form.Next, k.Form.Prev},
		{k.Help, k.Quit},
	}
}
