package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Enter     key.Binding
	Add       key.Binding
	Done      key.Binding
	Cancel    key.Binding
	Urgent    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Subtask   key.Binding
	Deadline  key.Binding
	Color     key.Binding
	Separator key.Binding
	DarkMode  key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
	MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "toggle done/fold")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Done:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
	Cancel:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle cancelled")),
	Urgent:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "toggle urgent")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Subtask:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "add subtask")),
	Deadline:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "set deadline")),
	Color:     key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "set color")),
	Separator: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "separator below")),
	DarkMode:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "dark mode")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}
