package sheet

import (
	"github.com/specialistvlad/sheetgrid/internal/validation"
)

// Editor is the optional custom-editor capability of a column. When present,
// opening an editor on one of the column's cells calls Edit instead of
// starting a text edit; set writes a new value into the cell.
type Editor interface {
	Edit(row, col int, current string, set func(text string))
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(row, col int, current string, set func(text string))

// Edit calls f.
func (f EditorFunc) Edit(row, col int, current string, set func(text string)) {
	f(row, col, current, set)
}

// Column describes one grid column.
type Column struct {
	Path     []string
	Label    string
	Validate validation.Predicate
	Hint     string
	Editor   Editor
}

// Valid runs the column predicate against text.
func (c Column) Valid(text string) bool {
	return validation.Check(c.Validate, text)
}

// ChoiceEditor is a picker that steps through a fixed list of options each
// time it is opened.
type ChoiceEditor struct {
	Options []string
}

// Edit sets the option following current, wrapping to the first one.
func (e ChoiceEditor) Edit(row, col int, current string, set func(text string)) {
	if len(e.Options) == 0 {
		return
	}
	next := e.Options[0]
	for i, opt := range e.Options {
		if opt == current {
			next = e.Options[(i+1)%len(e.Options)]
			break
		}
	}
	set(next)
}
