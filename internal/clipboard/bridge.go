package clipboard

import (
	"context"
	"log/slog"

	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/scheduler"
	"github.com/specialistvlad/sheetgrid/internal/selection"
)

// Cells is the grid side of the bridge.
type Cells interface {
	Selection() (selection.Cell, bool)
	EditorFocused() bool
	CellText(cell selection.Cell) string
	SetCellText(cell selection.Cell, text string) bool
	// Bind returns a setter for cell that stays on the cell's row when
	// display positions shift.
	Bind(cell selection.Cell) func(text string) bool
}

// Bridge performs clipboard actions for one grid.
type Bridge struct {
	buf    Buffer
	sched  scheduler.Scheduler
	cells  Cells
	logger *slog.Logger
}

func New(ctx context.Context, buf Buffer, sched scheduler.Scheduler, cells Cells) *Bridge {
	return &Bridge{buf: buf, sched: sched, cells: cells, logger: ctxlog.FromContext(ctx)}
}

// Copy stages the selected cell's text. It reports false when there is
// nothing to copy.
func (b *Bridge) Copy() (bool, error) {
	cell, ok := b.target()
	if !ok {
		return false, nil
	}
	if err := b.buf.Stage(b.cells.CellText(cell)); err != nil {
		return false, err
	}
	b.sched.Post(b.buf.Reset)
	b.logger.Debug("Cell copied.", "cell", cell)
	return true, nil
}

// Cut copies the selected cell and clears it on the next tick.
func (b *Bridge) Cut() (bool, error) {
	cell, ok := b.target()
	if !ok {
		return false, nil
	}
	if err := b.buf.Stage(b.cells.CellText(cell)); err != nil {
		return false, err
	}
	setText := b.cells.Bind(cell)
	b.sched.Post(func() {
		b.buf.Reset()
		setText("")
	})
	b.logger.Debug("Cell cut.", "cell", cell)
	return true, nil
}

// Paste writes the clipboard text into the cell selected one tick later.
// Read errors are passed to onErr, which may be nil.
func (b *Bridge) Paste(onErr func(error)) bool {
	if _, ok := b.target(); !ok {
		return false
	}
	b.buf.Reset()
	b.sched.Post(func() {
		text, err := b.buf.Read()
		if err != nil {
			b.logger.Warn("Clipboard read failed.", "error", err)
			if onErr != nil {
				onErr(err)
			}
			return
		}
		cell, ok := b.cells.Selection()
		if !ok {
			return
		}
		b.cells.SetCellText(cell, text)
		b.logger.Debug("Cell pasted.", "cell", cell)
	})
	return true
}

func (b *Bridge) target() (selection.Cell, bool) {
	if b.cells.EditorFocused() {
		return selection.Cell{}, false
	}
	return b.cells.Selection()
}
