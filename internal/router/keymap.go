package router

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the router reacts to.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Next      key.Binding
	Prev      key.Binding
	Clear     key.Binding
	Enter     key.Binding
	Edit      key.Binding
	Cancel    key.Binding
	Backspace key.Binding
	Copy      key.Binding
	Cut       key.Binding
	Paste     key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next column")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous column")),
		Clear:     key.NewBinding(key.WithKeys("delete"), key.WithHelp("del", "clear")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit/commit")),
		Edit:      key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "edit")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Backspace: key.NewBinding(key.WithKeys("backspace")),
		Copy:      key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		Cut:       key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste:     key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
	}
}

// ShortHelp lists the bindings shown in a compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Next, k.Clear, k.Copy, k.Paste, k.Cancel}
}

// FullHelp groups every binding for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Next, k.Prev},
		{k.Enter, k.Edit, k.Cancel, k.Clear},
		{k.Copy, k.Cut, k.Paste},
	}
}
