package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Remove key.Binding
	Switch key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
	Force  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Remove: key.NewBinding(key.WithKeys("enter", "x", "d"), key.WithHelp("enter/x", "remove")),
		Switch: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch focus")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Force:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.Add, k.Switch, k.Force}
}

func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Remove, k.Switch, k.Quit}
}
