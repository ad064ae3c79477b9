package combobox

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the combobox keybindings
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Expand  key.Binding
	Close   key.Binding
	Confirm key.Binding
}

// DefaultKeyMap returns the ARIA combobox bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "alt+up"), key.WithHelp("↑", "previous")),
		Down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next")),
		Expand:  key.NewBinding(key.WithKeys("alt+down"), key.WithHelp("alt+↓", "expand")),
		Close:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close/clear")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	}
}

// Translate maps a terminal key press onto the state machine's keys
func (k KeyMap) Translate(msg tea.KeyMsg) KeyEvent {
	switch {
	case key.Matches(msg, k.Expand):
		return KeyEvent{Code: KeyArrowDown, Alt: true}
	case key.Matches(msg, k.Down):
		return KeyEvent{Code: KeyArrowDown, Alt: msg.Alt}
	case key.Matches(msg, k.Up):
		return KeyEvent{Code: KeyArrowUp, Alt: msg.Alt}
	case key.Matches(msg, k.Close):
		return KeyEvent{Code: KeyEscape}
	case key.Matches(msg, k.Confirm):
		return KeyEvent{Code: KeyEnter}
	default:
		return KeyEvent{Code: KeyOther, Alt: msg.Alt}
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Confirm, k.Close}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Expand},
		{k.Confirm, k.Close},
	}
}
