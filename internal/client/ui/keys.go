package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap binds terminal keys to loop events
type keyMap struct {
	Send      key.Binding
	Up        key.Binding
	Down      key.Binding
	Backspace key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "scroll down"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// translateKey maps a bubbletea key message to a loop event.
func (k keyMap) translateKey(msg tea.KeyMsg) (Event, bool) {
	switch {
	case key.Matches(msg, k.Send):
		return Event{Key: KeyEnter}, true
	case key.Matches(msg, k.Up):
		return Event{Key: KeyUp}, true
	case key.Matches(msg, k.Down):
		return Event{Key: KeyDown}, true
	case key.Matches(msg, k.Backspace):
		return Event{Key: KeyBackspace}, true
	case key.Matches(msg, k.Quit):
		return Event{Key: KeyEscape}, true
	case msg.Type == tea.KeySpace:
		return Event{Key: KeyRunes, Runes: []rune{' '}}, true
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0:
		return Event{Key: KeyRunes, Runes: append([]rune(nil), msg.Runes...)}, true
	}
	return Event{}, false
}

// translateMouse maps the scroll wheel to Up/Down.
func translateMouse(msg tea.MouseMsg) (Event, bool) {
	if msg.Action != tea.MouseActionPress {
		return Event{}, false
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return Event{Key: KeyUp}, true
	case tea.MouseButtonWheelDown:
		return Event{Key: KeyDown}, true
	}
	return Event{}, false
}
