package selection

import "fmt"

// Cell addresses one cell by display row and column.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Range is a rectangle of cells with StartRow <= EndRow and StartCol <= EndCol.
type Range struct {
	StartRow int
	StartCol int
	EndRow   int
	EndCol   int
}

// NewRange returns the normalized rectangle covering a and b.
func NewRange(a, b Cell) Range {
	return Range{
		StartRow: min(a.Row, b.Row),
		StartCol: min(a.Col, b.Col),
		EndRow:   max(a.Row, b.Row),
		EndCol:   max(a.Col, b.Col),
	}
}

// Contains reports whether c lies inside the rectangle.
func (r Range) Contains(c Cell) bool {
	return c.Row >= r.StartRow && c.Row <= r.EndRow && c.Col >= r.StartCol && c.Col <= r.EndCol
}

// Cells lists the rectangle row by row.
func (r Range) Cells() []Cell {
	out := make([]Cell, 0, (r.EndRow-r.StartRow+1)*(r.EndCol-r.StartCol+1))
	for row := r.StartRow; row <= r.EndRow; row++ {
		for col := r.StartCol; col <= r.EndCol; col++ {
			out = append(out, Cell{Row: row, Col: col})
		}
	}
	return out
}

func (r Range) String() string {
	return fmt.Sprintf("[%d..%d]x[%d..%d]", r.StartRow, r.EndRow, r.StartCol, r.EndCol)
}

// Listener receives state change notifications. prev and next are nil when
// the respective state is absent.
type Listener interface {
	SelectionChanged(prev, next *Cell)
	RangeChanged(next *Range)
}

// Highlight is the set of column headers and row handles to mark active.
type Highlight struct {
	Columns map[int]bool
	Rows    map[int]bool
}

// Controller owns the selection state of one grid.
type Controller struct {
	sel       *Cell
	rng       *Range
	anchor    int
	anchorSet bool
	listener  Listener
}

// New creates a controller. A nil listener discards notifications.
func New(l Listener) *Controller {
	return &Controller{listener: l}
}

// Selection returns the active cell.
func (c *Controller) Selection() (Cell, bool) {
	if c.sel == nil {
		return Cell{}, false
	}
	return *c.sel, true
}

// Range returns the active range.
func (c *Controller) Range() (Range, bool) {
	if c.rng == nil {
		return Range{}, false
	}
	return *c.rng, true
}

// Select makes cell the active cell and clears any range. Selecting the
// already selected cell does nothing.
func (c *Controller) Select(cell Cell) {
	if c.sel != nil && *c.sel == cell {
		return
	}
	prev := c.sel
	next := cell
	c.sel = &next
	if c.rng != nil {
		c.rng = nil
		c.notifyRange()
	}
	if c.listener != nil {
		c.listener.SelectionChanged(prev, &next)
	}
}

// SetRange replaces the range with the rectangle covering anchor and target.
// The selection is left alone.
func (c *Controller) SetRange(anchor, target Cell) {
	r := NewRange(anchor, target)
	if c.rng != nil && *c.rng == r {
		return
	}
	c.rng = &r
	c.notifyRange()
}

// ClearRange removes the active range.
func (c *Controller) ClearRange() {
	if c.rng == nil {
		return
	}
	c.rng = nil
	c.notifyRange()
}

// ClearSelection removes the active cell.
func (c *Controller) ClearSelection() {
	if c.sel == nil {
		return
	}
	prev := c.sel
	c.sel = nil
	if c.listener != nil {
		c.listener.SelectionChanged(prev, nil)
	}
}

// AnchorColumn is the column Enter-fill returns to after moving down. The
// second result is false until navigation has set one.
func (c *Controller) AnchorColumn() (int, bool) {
	return c.anchor, c.anchorSet
}

// SetAnchorColumn records the column navigation last settled on.
func (c *Controller) SetAnchorColumn(col int) {
	c.anchor = col
	c.anchorSet = true
}

// Highlight computes the active headers and handles: the range's rows and
// columns when one is active, otherwise the selection's row and column.
func (c *Controller) Highlight() Highlight {
	h := Highlight{Columns: map[int]bool{}, Rows: map[int]bool{}}
	switch {
	case c.rng != nil:
		for col := c.rng.StartCol; col <= c.rng.EndCol; col++ {
			h.Columns[col] = true
		}
		for row := c.rng.StartRow; row <= c.rng.EndRow; row++ {
			h.Rows[row] = true
		}
	case c.sel != nil:
		h.Columns[c.sel.Col] = true
		h.Rows[c.sel.Row] = true
	}
	return h
}

func (c *Controller) notifyRange() {
	if c.listener == nil {
		return
	}
	if c.rng == nil {
		c.listener.RangeChanged(nil)
		return
	}
	r := *c.rng
	c.listener.RangeChanged(&r)
}
