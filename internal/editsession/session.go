package editsession

import (
	"github.com/specialistvlad/sheetgrid/internal/selection"
	"github.com/specialistvlad/sheetgrid/internal/sheet"
)

// State is the session state.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "idle"
}

// Target identifies the edited cell by row id, so an open editor stays on
// its row when display positions shift.
type Target struct {
	RowID string
	Col   int
}

// Sink receives committed text for a target.
type Sink func(t Target, text string)

// Locator resolves a target to its current display cell. It reports false
// when the row is not visible.
type Locator func(t Target) (selection.Cell, bool)

// Snapshot is a copy of the session state handed to observers. Cell is the
// display cell at the time of the snapshot.
type Snapshot struct {
	State  State
	Target Target
	Cell   selection.Cell
	Buffer string
	Valid  bool
	Hint   string
}

// Session is the edit state of one grid.
type Session struct {
	state  State
	target Target
	column sheet.Column
	buffer []rune
	valid  bool

	sink     Sink
	locate   Locator
	onChange func(Snapshot)
}

// New creates an idle session. onChange may be nil.
func New(sink Sink, locate Locator, onChange func(Snapshot)) *Session {
	return &Session{sink: sink, locate: locate, onChange: onChange}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Active reports whether an editor is open.
func (s *Session) Active() bool {
	return s.state == Editing
}

// Target returns the cell being edited.
func (s *Session) Target() (Target, bool) {
	return s.target, s.state == Editing
}

// Cell returns the current display position of the cell being edited. It
// reports false when idle or when the row is not visible.
func (s *Session) Cell() (selection.Cell, bool) {
	if s.state != Editing {
		return selection.Cell{}, false
	}
	return s.locate(s.target)
}

// Buffer returns the candidate text.
func (s *Session) Buffer() string {
	return string(s.buffer)
}

// Valid reports whether the buffer satisfies the column predicate.
func (s *Session) Valid() bool {
	return s.valid
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	if s.state != Editing {
		return Snapshot{State: Idle, Valid: true}
	}
	cell, ok := s.locate(s.target)
	if !ok {
		cell = selection.Cell{Row: -1, Col: s.target.Col}
	}
	return Snapshot{
		State:  Editing,
		Target: s.target,
		Cell:   cell,
		Buffer: string(s.buffer),
		Valid:  s.valid,
		Hint:   s.column.Hint,
	}
}

// Open starts editing t. With overwrite the buffer starts empty, otherwise
// it starts with current. An editor already open on another cell is committed
// first. Columns with a custom editor are delegated to it and Open returns
// false.
func (s *Session) Open(t Target, column sheet.Column, current string, overwrite bool) bool {
	if s.state == Editing {
		if s.target == t {
			return true
		}
		s.Commit()
	}
	if column.Editor != nil {
		cell, ok := s.locate(t)
		if !ok {
			return false
		}
		column.Editor.Edit(cell.Row, cell.Col, current, func(text string) {
			s.sink(t, text)
		})
		return false
	}

	s.state = Editing
	s.target = t
	s.column = column
	s.buffer = s.buffer[:0]
	if !overwrite {
		s.buffer = append(s.buffer, []rune(current)...)
	}
	s.validate()
	return true
}

// Insert appends text to the buffer.
func (s *Session) Insert(text string) {
	if s.state != Editing {
		return
	}
	s.buffer = append(s.buffer, []rune(text)...)
	s.validate()
}

// Backspace removes the last character of the buffer.
func (s *Session) Backspace() {
	if s.state != Editing || len(s.buffer) == 0 {
		return
	}
	s.buffer = s.buffer[:len(s.buffer)-1]
	s.validate()
}

// SetBuffer replaces the buffer.
func (s *Session) SetBuffer(text string) {
	if s.state != Editing {
		return
	}
	s.buffer = append(s.buffer[:0], []rune(text)...)
	s.validate()
}

// Commit writes the buffer into the edited cell, valid or not, and returns to
// Idle. It returns the committed target.
func (s *Session) Commit() (Target, bool) {
	if s.state != Editing {
		return Target{}, false
	}
	t, text := s.target, string(s.buffer)
	s.reset()
	s.sink(t, text)
	s.changed()
	return t, true
}

// Cancel discards the buffer and returns to Idle.
func (s *Session) Cancel() bool {
	if s.state != Editing {
		return false
	}
	s.reset()
	s.changed()
	return true
}

func (s *Session) reset() {
	s.state = Idle
	s.target = Target{}
	s.column = sheet.Column{}
	s.buffer = nil
	s.valid = false
}

func (s *Session) validate() {
	s.valid = s.column.Valid(string(s.buffer))
	s.changed()
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange(s.Snapshot())
	}
}
