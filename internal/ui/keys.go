package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the TUI bindings. Bindings that do not apply to the focused
// pane are disabled so help only lists what works.
type keyMap struct {
	Quit      key.Binding
	Close     key.Binding
	Focus     key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	Insert    key.Binding
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Clear     key.Binding
	All       key.Binding
	Active    key.Binding
	Completed key.Binding
	Help      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Close:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add/update")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Insert:    key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "new todo")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "toggle")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear completed")),
		All:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Active:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		Completed: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// setFocus enables the bindings for the focused pane.
func (k *keyMap) setFocus(f focus) {
	list := f == focusList
	for _, b := range []*key.Binding{
		&k.Close, &k.Insert, &k.Up, &k.Down, &k.Toggle, &k.Edit,
		&k.Delete, &k.Clear, &k.All, &k.Active, &k.Completed, &k.Help,
	} {
		b.SetEnabled(list)
	}
	k.Submit.SetEnabled(!list)
	k.Cancel.SetEnabled(!list)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Toggle, k.Edit, k.Delete, k.Focus, k.Help, k.Close, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Edit, k.Delete},
		{k.All, k.Active, k.Completed, k.Clear},
		{k.Insert, k.Submit, k.Cancel, k.Focus},
		{k.Help, k.Close, k.Quit},
	}
}
