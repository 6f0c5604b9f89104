package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the complete binding table. It is built once and never mutated.
type keyMap struct {
	Save     key.Binding
	Quit     key.Binding
	Find     key.Binding
	CopyLine key.Binding

	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Confirm   key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Tab       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Find:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find")),
		CopyLine: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy line")),

		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
		Left:     key.NewBinding(key.WithKeys("left")),
		Right:    key.NewBinding(key.WithKeys("right")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Home:     key.NewBinding(key.WithKeys("home")),
		End:      key.NewBinding(key.WithKeys("end")),

		Confirm:   key.NewBinding(key.WithKeys("enter")),
		Cancel:    key.NewBinding(key.WithKeys("esc")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Delete:    key.NewBinding(key.WithKeys("delete")),
		Tab:       key.NewBinding(key.WithKeys("tab")),
	}
}
