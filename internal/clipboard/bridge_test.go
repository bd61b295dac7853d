package clipboard

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/sheetgrid/internal/scheduler"
	"github.com/specialistvlad/sheetgrid/internal/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCells struct {
	sel     *selection.Cell
	focused bool
	text    map[selection.Cell]string
	// moved maps a bound cell to where its row sits now.
	moved map[selection.Cell]selection.Cell
}

func (f *fakeCells) Selection() (selection.Cell, bool) {
	if f.sel == nil {
		return selection.Cell{}, false
	}
	return *f.sel, true
}

func (f *fakeCells) EditorFocused() bool { return f.focused }

func (f *fakeCells) CellText(c selection.Cell) string { return f.text[c] }

func (f *fakeCells) SetCellText(c selection.Cell, s string) bool {
	f.text[c] = s
	return true
}

func (f *fakeCells) Bind(c selection.Cell) func(string) bool {
	return func(s string) bool {
		if to, ok := f.moved[c]; ok {
			c = to
		}
		return f.SetCellText(c, s)
	}
}

type failingBuffer struct{ MemoryBuffer }

func (*failingBuffer) Read() (string, error) { return "", errors.New("no clipboard") }

func setup() (*Bridge, *fakeCells, *MemoryBuffer, *scheduler.Loop) {
	cell := selection.Cell{Row: 1, Col: 1}
	cells := &fakeCells{sel: &cell, text: map[selection.Cell]string{cell: "hello"}}
	buf := NewMemoryBuffer()
	loop := scheduler.New()
	return New(context.Background(), buf, loop, cells), cells, buf, loop
}

func TestCopy_StagesThenResets(t *testing.T) {
	// --- Arrange ---
	b, cells, buf, loop := setup()

	// --- Act ---
	ok, err := b.Copy()

	// --- Assert ---
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", buf.Staged())
	loop.Drain()
	assert.Equal(t, "", buf.Staged())
	text, _ := buf.Read()
	assert.Equal(t, "hello", text, "the captured clipboard survives the reset")
	assert.Equal(t, "hello", cells.text[selection.Cell{Row: 1, Col: 1}])
}

func TestCut_ClearsCellOnNextTick(t *testing.T) {
	b, cells, buf, loop := setup()
	cell := selection.Cell{Row: 1, Col: 1}

	ok, err := b.Cut()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", cells.text[cell])

	loop.Drain()
	assert.Equal(t, "", cells.text[cell])
	text, _ := buf.Read()
	assert.Equal(t, "hello", text)
}

func TestCut_ClearsBoundRowAfterShift(t *testing.T) {
	// --- Arrange ---
	b, cells, _, loop := setup()
	from := selection.Cell{Row: 1, Col: 1}
	to := selection.Cell{Row: 2, Col: 1}
	cells.text[to] = "hello"

	// --- Act ---
	_, err := b.Cut()
	require.NoError(t, err)
	cells.text[from] = "other"
	cells.moved = map[selection.Cell]selection.Cell{from: to}
	loop.Drain()

	// --- Assert ---
	assert.Equal(t, "", cells.text[to])
	assert.Equal(t, "other", cells.text[from], "the row now at the old position is untouched")
}

func TestPaste_WritesOneTickLater(t *testing.T) {
	// --- Arrange ---
	b, cells, buf, loop := setup()
	buf.SetClipboard("pasted")
	cell := selection.Cell{Row: 1, Col: 1}

	// --- Act ---
	require.True(t, b.Paste(nil))
	assert.Equal(t, "hello", cells.text[cell])
	loop.Tick()

	// --- Assert ---
	assert.Equal(t, "pasted", cells.text[cell])
}

func TestPaste_ReadErrorIsReported(t *testing.T) {
	cell := selection.Cell{}
	cells := &fakeCells{sel: &cell, text: map[selection.Cell]string{cell: "keep"}}
	loop := scheduler.New()
	b := New(context.Background(), &failingBuffer{}, loop, cells)
	var got error

	b.Paste(func(err error) { got = err })
	loop.Drain()

	assert.EqualError(t, got, "no clipboard")
	assert.Equal(t, "keep", cells.text[cell])
}

func TestActions_NoopWithoutSelectionOrWithEditorFocus(t *testing.T) {
	b, cells, buf, loop := setup()
	cells.focused = true

	ok, _ := b.Copy()
	assert.False(t, ok)
	ok, _ = b.Cut()
	assert.False(t, ok)
	assert.False(t, b.Paste(nil))

	cells.focused = false
	cells.sel = nil
	ok, _ = b.Copy()
	assert.False(t, ok)
	assert.False(t, b.Paste(nil))

	assert.Equal(t, 0, loop.Pending())
	assert.Equal(t, "", buf.Staged())
}
