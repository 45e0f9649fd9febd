package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Toggle    key.Binding
	Add       key.Binding
	AddColumn key.Binding
	Edit      key.Binding
	Remove    key.Binding
	Filter    key.Binding
	NextBoard key.Binding
	Save      key.Binding
	Reload    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "task")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "task")),
		MoveLeft:  key.NewBinding(key.WithKeys("H"), key.WithHelp("H/L", "move across")),
		MoveRight: key.NewBinding(key.WithKeys("L")),
		MoveUp:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K/J", "reorder")),
		MoveDown:  key.NewBinding(key.WithKeys("J")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("x", "check")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		AddColumn: key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add column")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Remove:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		NextBoard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "board")),
		Save:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.MoveLeft, k.MoveUp, k.Toggle, k.Add, k.Edit, k.Remove, k.Filter, k.NextBoard, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.MoveLeft, k.MoveRight, k.MoveUp, k.MoveDown},
		{k.Toggle, k.Add, k.AddColumn, k.Edit, k.Remove},
		{k.Filter, k.NextBoard, k.Save, k.Reload, k.Quit},
	}
}
