package grid

import (
	"github.com/specialistvlad/sheetgrid/internal/editsession"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/selection"
)

// Observer receives grid notifications. Embed BaseObserver to implement only
// the callbacks you need.
type Observer interface {
	SelectionChanged(prev, next *selection.Cell)
	RangeChanged(next *selection.Range)
	RowCountChanged(rows int)
	// CellErrorChanged fires when a cell's validation flag flips. Cells are
	// identified by row id because display positions shift on delete.
	CellErrorChanged(rowID string, col int, invalid bool)
	EditorChanged(s editsession.Snapshot)
	RowStateChanged(rowID string, state persist.RowState, err error)
	ErrorReported(err error)
}

// BaseObserver implements Observer with no-ops.
type BaseObserver struct{}

func (BaseObserver) SelectionChanged(prev, next *selection.Cell)                     {}
func (BaseObserver) RangeChanged(next *selection.Range)                              {}
func (BaseObserver) RowCountChanged(rows int)                                        {}
func (BaseObserver) CellErrorChanged(rowID string, col int, invalid bool)            {}
func (BaseObserver) EditorChanged(s editsession.Snapshot)                            {}
func (BaseObserver) RowStateChanged(rowID string, state persist.RowState, err error) {}
func (BaseObserver) ErrorReported(err error)                                         {}

var _ Observer = BaseObserver{}

// Subscribe registers o and returns a function that removes it.
func (c *Controller) Subscribe(o Observer) (unsubscribe func()) {
	c.nextSub++
	id := c.nextSub
	c.observers = append(c.observers, subscription{id: id, o: o})
	return func() {
		for i, s := range c.observers {
			if s.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

type subscription struct {
	id int
	o  Observer
}

func (c *Controller) each(fn func(Observer)) {
	for _, s := range c.observers {
		fn(s.o)
	}
}

// selectionListener adapts the controller to selection.Listener.
type selectionListener struct{ c *Controller }

func (l selectionListener) SelectionChanged(prev, next *selection.Cell) {
	c := l.c
	if cell, ok := c.session.Cell(); ok && (next == nil || *next != cell) {
		c.session.Commit()
	}
	c.pinSelection()
	c.each(func(o Observer) { o.SelectionChanged(prev, next) })
}

func (l selectionListener) RangeChanged(next *selection.Range) {
	l.c.each(func(o Observer) { o.RangeChanged(next) })
}

func (c *Controller) rowStateChanged(id string, state persist.RowState, err error) {
	// A failed removal puts the row back and shifts the rows below it.
	c.followSelection()
	c.each(func(o Observer) { o.RowStateChanged(id, state, err) })
	if state == persist.Removed {
		for k := range c.cellErrors {
			if k.id == id {
				delete(c.cellErrors, k)
			}
		}
	}
	if err != nil {
		c.report(err)
	}
	c.checkRowCount()
}

func (c *Controller) editorChanged(s editsession.Snapshot) {
	c.each(func(o Observer) { o.EditorChanged(s) })
}

func (c *Controller) report(err error) {
	c.logger.Debug("Reporting grid error.", "error", err)
	c.each(func(o Observer) { o.ErrorReported(err) })
}

func (c *Controller) checkRowCount() {
	n := c.model.Len()
	if n == c.rowCount {
		return
	}
	c.rowCount = n
	c.each(func(o Observer) { o.RowCountChanged(n) })
}
