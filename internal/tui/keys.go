package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/specialistvlad/sheetgrid/internal/router"
)

// AppKeys are the bindings handled by the terminal front end itself rather
// than the grid.
type AppKeys struct {
	AddRow    key.Binding
	DeleteRow key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultAppKeys returns the standard front end bindings.
func DefaultAppKeys() AppKeys {
	return AppKeys{
		AddRow:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add row")),
		DeleteRow: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete row")),
		Help:      key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Quit:      key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

// helpKeys merges grid and front end bindings for the help view.
type helpKeys struct {
	grid router.KeyMap
	app  AppKeys
}

func (h helpKeys) ShortHelp() []key.Binding {
	return append(h.grid.ShortHelp(), h.app.AddRow, h.app.Help, h.app.Quit)
}

func (h helpKeys) FullHelp() [][]key.Binding {
	return append(h.grid.FullHelp(), []key.Binding{h.app.AddRow, h.app.DeleteRow, h.app.Help, h.app.Quit})
}
