package sheet

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/sheetgrid/internal/record"
)

// ErrRowNotFound is returned when a replace or remove targets a record that
// is not in the collection.
var ErrRowNotFound = errors.New("no row found")

// MutationFunc is called after a value is written into a row.
type MutationFunc func(r *record.Record, path []string, value any)

// Model holds the columns and rows of one grid. It is not safe for
// concurrent use; the grid controller confines it to the scheduler goroutine.
type Model struct {
	columns  []Column
	rows     []*record.Record
	detached map[*record.Record]struct{}
	changes  uint64
	onMutate MutationFunc
}

// New creates a model. The rows slice is copied; the records are not.
func New(columns []Column, rows []*record.Record) *Model {
	m := &Model{
		columns:  append([]Column(nil), columns...),
		rows:     append([]*record.Record(nil), rows...),
		detached: make(map[*record.Record]struct{}),
	}
	return m
}

// OnMutate installs the hook called after every value mutation.
func (m *Model) OnMutate(fn MutationFunc) {
	m.onMutate = fn
}

// Changes returns the number of mutations applied so far.
func (m *Model) Changes() uint64 {
	return m.changes
}

// Columns returns the column definitions.
func (m *Model) Columns() []Column {
	return append([]Column(nil), m.columns...)
}

// NumColumns returns the number of columns.
func (m *Model) NumColumns() int {
	return len(m.columns)
}

// Column returns the column at index col.
func (m *Model) Column(col int) (Column, bool) {
	if col < 0 || col >= len(m.columns) {
		return Column{}, false
	}
	return m.columns[col], true
}

// Len returns the number of visible rows.
func (m *Model) Len() int {
	return len(m.rows) - len(m.detached)
}

// Row returns the visible row at display position row.
func (m *Model) Row(row int) (*record.Record, bool) {
	if row < 0 {
		return nil, false
	}
	i := 0
	for _, r := range m.rows {
		if _, gone := m.detached[r]; gone {
			continue
		}
		if i == row {
			return r, true
		}
		i++
	}
	return nil, false
}

// Index returns the display position of a visible record.
func (m *Model) Index(target *record.Record) (int, bool) {
	i := 0
	for _, r := range m.rows {
		if _, gone := m.detached[r]; gone {
			continue
		}
		if r == target {
			return i, true
		}
		i++
	}
	return 0, false
}

// Records returns every row in the collection, detached ones included.
func (m *Model) Records() []*record.Record {
	return append([]*record.Record(nil), m.rows...)
}

// RowByID finds a row by id, detached rows included.
func (m *Model) RowByID(id string) (*record.Record, bool) {
	for _, r := range m.rows {
		if r.ID() == id {
			return r, true
		}
	}
	return nil, false
}

// Value returns the value of a cell.
func (m *Model) Value(row, col int) (any, bool) {
	r, ok := m.Row(row)
	if !ok {
		return nil, false
	}
	c, ok := m.Column(col)
	if !ok {
		return nil, false
	}
	return r.Get(c.Path)
}

// Text returns the display text of a cell.
func (m *Model) Text(row, col int) string {
	return record.Text(m.Value(row, col))
}

// SetValue writes value into a visible cell. It returns false if the cell
// does not exist.
func (m *Model) SetValue(row, col int, value any) bool {
	r, ok := m.Row(row)
	if !ok {
		return false
	}
	c, ok := m.Column(col)
	if !ok {
		return false
	}
	return m.SetRecordValue(r, c.Path, value)
}

// SetRecordValue writes value at path inside r and runs the mutation hook.
func (m *Model) SetRecordValue(r *record.Record, path []string, value any) bool {
	if !r.Set(path, value) {
		return false
	}
	m.changes++
	if m.onMutate != nil {
		m.onMutate(r, path, value)
	}
	return true
}

// AppendRow adds r to the end of the collection.
func (m *Model) AppendRow(r *record.Record) {
	m.rows = append(m.rows, r)
	m.changes++
}

// ReplaceRowByID swaps the row sharing r's id for r.
func (m *Model) ReplaceRowByID(r *record.Record) error {
	id := r.ID()
	for i, old := range m.rows {
		if old.ID() != id {
			continue
		}
		if _, gone := m.detached[old]; gone {
			delete(m.detached, old)
			m.detached[r] = struct{}{}
		}
		m.rows[i] = r
		m.changes++
		return nil
	}
	return fmt.Errorf("replace %q: %w", id, ErrRowNotFound)
}

// RemoveRow deletes the exact record r from the collection.
func (m *Model) RemoveRow(r *record.Record) error {
	for i, old := range m.rows {
		if old != r {
			continue
		}
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
		delete(m.detached, r)
		m.changes++
		return nil
	}
	return fmt.Errorf("remove %q: %w", r.ID(), ErrRowNotFound)
}

// Detach hides r from the visible rows while keeping it in the collection.
func (m *Model) Detach(r *record.Record) bool {
	if _, ok := m.Index(r); !ok {
		return false
	}
	m.detached[r] = struct{}{}
	m.changes++
	return true
}

// Reattach makes a detached row visible again at its original position.
func (m *Model) Reattach(r *record.Record) bool {
	if _, ok := m.detached[r]; !ok {
		return false
	}
	delete(m.detached, r)
	m.changes++
	return true
}

// IsDetached reports whether r is hidden by a pending delete.
func (m *Model) IsDetached(r *record.Record) bool {
	_, ok := m.detached[r]
	return ok
}
