package router

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/selection"
)

// Grid is the set of operations the router drives.
type Grid interface {
	Len() int
	NumColumns() int
	Selection() (selection.Cell, bool)
	Range() (selection.Range, bool)
	Select(cell selection.Cell)
	SetRange(anchor, target selection.Cell)
	ClearSelection()
	AnchorColumn() (int, bool)
	SetAnchorColumn(col int)
	ClearCells(cells []selection.Cell)

	EditorFocused() bool
	OpenEditor(overwrite bool)
	EditorInsert(text string)
	EditorBackspace()
	CommitEditor() bool
	CancelEditor() bool

	Copy()
	Cut()
	Paste()
}

// Router routes input events for one grid.
type Router struct {
	grid    Grid
	keys    KeyMap
	logger  *slog.Logger
	pressed bool
}

func New(ctx context.Context, g Grid, keys KeyMap) *Router {
	return &Router{grid: g, keys: keys, logger: ctxlog.FromContext(ctx)}
}

// Keys returns the active bindings.
func (r *Router) Keys() KeyMap {
	return r.keys
}

// HandleKey dispatches a key press and reports whether it was consumed.
func (r *Router) HandleKey(ev KeyEvent) bool {
	if ev.modifierOnly() {
		return false
	}
	switch {
	case key.Matches(ev, r.keys.Copy):
		r.grid.Copy()
		return true
	case key.Matches(ev, r.keys.Cut):
		r.grid.Cut()
		return true
	case key.Matches(ev, r.keys.Paste):
		r.grid.Paste()
		return true
	}
	if r.grid.EditorFocused() {
		return r.editorKey(ev)
	}
	return r.gridKey(ev)
}

func (r *Router) editorKey(ev KeyEvent) bool {
	switch {
	case key.Matches(ev, r.keys.Enter):
		r.commitAndMoveDown()
	case key.Matches(ev, r.keys.Cancel):
		r.grid.CancelEditor()
	case key.Matches(ev, r.keys.Next):
		r.grid.CommitEditor()
		r.step(0, 1, true)
	case key.Matches(ev, r.keys.Prev):
		r.grid.CommitEditor()
		r.step(0, -1, true)
	case key.Matches(ev, r.keys.Backspace):
		r.grid.EditorBackspace()
	case ev.printable():
		r.grid.EditorInsert(string(ev.Runes))
	default:
		return false
	}
	return true
}

func (r *Router) gridKey(ev KeyEvent) bool {
	cell, selected := r.grid.Selection()
	switch {
	case key.Matches(ev, r.keys.Up):
		r.step(-1, 0, false)
	case key.Matches(ev, r.keys.Down):
		r.step(1, 0, false)
	case key.Matches(ev, r.keys.Left):
		r.step(0, -1, false)
	case key.Matches(ev, r.keys.Right):
		r.step(0, 1, false)
	case key.Matches(ev, r.keys.Next):
		r.step(0, 1, true)
	case key.Matches(ev, r.keys.Prev):
		r.step(0, -1, true)
	case key.Matches(ev, r.keys.Clear):
		if rng, ok := r.grid.Range(); ok {
			r.grid.ClearCells(rng.Cells())
		} else if selected {
			r.grid.ClearCells([]selection.Cell{cell})
		}
	case key.Matches(ev, r.keys.Enter), key.Matches(ev, r.keys.Edit):
		if !selected {
			return false
		}
		r.grid.OpenEditor(false)
	case key.Matches(ev, r.keys.Cancel):
		return false
	case ev.printable():
		if !selected {
			return false
		}
		r.grid.OpenEditor(true)
		r.grid.EditorInsert(string(ev.Runes))
	default:
		return false
	}
	return true
}

// step moves the selection by one cell. Vertical moves pin the anchor column
// to the column being left; horizontal moves and tabs move it along.
func (r *Router) step(dRow, dCol int, tab bool) {
	cell, ok := r.grid.Selection()
	if !ok {
		return
	}
	next := selection.Cell{Row: cell.Row + dRow, Col: cell.Col + dCol}
	if next.Row < 0 || next.Row >= r.grid.Len() || next.Col < 0 || next.Col >= r.grid.NumColumns() {
		return
	}
	if dRow != 0 {
		r.grid.SetAnchorColumn(cell.Col)
	} else {
		r.grid.SetAnchorColumn(next.Col)
	}
	r.logger.Debug("Selection moved.", "from", cell, "to", next, "tab", tab)
	r.grid.Select(next)
}

func (r *Router) commitAndMoveDown() {
	r.grid.CommitEditor()
	cell, ok := r.grid.Selection()
	if !ok {
		return
	}
	col, ok := r.grid.AnchorColumn()
	if !ok {
		col = cell.Col
	}
	next := selection.Cell{Row: cell.Row + 1, Col: col}
	if next.Row < r.grid.Len() && col < r.grid.NumColumns() {
		r.grid.Select(next)
	}
}

// HandlePointer dispatches a pointer event and reports whether it was
// consumed.
func (r *Router) HandlePointer(ev PointerEvent) bool {
	switch ev.Action {
	case Release:
		if ev.Button == ButtonPrimary {
			r.pressed = false
		}
		return false
	case Move:
		return r.drag(ev)
	case DoubleClick:
		if ev.Target != TargetCell || !r.inGrid(ev.Row, ev.Col) {
			return false
		}
		r.grid.Select(selection.Cell{Row: ev.Row, Col: ev.Col})
		r.grid.OpenEditor(false)
		return true
	}
	if ev.Button != ButtonPrimary {
		return false
	}
	r.pressed = true

	switch ev.Target {
	case TargetCell:
		if !r.inGrid(ev.Row, ev.Col) {
			return false
		}
		target := selection.Cell{Row: ev.Row, Col: ev.Col}
		r.grid.SetAnchorColumn(ev.Col)
		if cur, ok := r.grid.Selection(); ok && ev.Shift {
			r.grid.SetRange(cur, target)
			return true
		}
		r.grid.Select(target)
	case TargetColumnHeader:
		if ev.Col < 0 || ev.Col >= r.grid.NumColumns() || r.grid.Len() == 0 {
			return false
		}
		r.grid.SetRange(
			selection.Cell{Row: 0, Col: ev.Col},
			selection.Cell{Row: r.grid.Len() - 1, Col: ev.Col},
		)
	case TargetRowHandle:
		if ev.Row < 0 || ev.Row >= r.grid.Len() {
			return false
		}
		r.grid.SetRange(
			selection.Cell{Row: ev.Row, Col: 0},
			selection.Cell{Row: ev.Row, Col: r.grid.NumColumns() - 1},
		)
	default:
		r.grid.ClearSelection()
	}
	return true
}

func (r *Router) drag(ev PointerEvent) bool {
	if !r.pressed || ev.Target != TargetCell || !r.inGrid(ev.Row, ev.Col) {
		return false
	}
	cur, ok := r.grid.Selection()
	if !ok {
		return false
	}
	r.grid.SetRange(cur, selection.Cell{Row: ev.Row, Col: ev.Col})
	return true
}

func (r *Router) inGrid(row, col int) bool {
	return row >= 0 && row < r.grid.Len() && col >= 0 && col < r.grid.NumColumns()
}
