package tui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/specialistvlad/sheetgrid/internal/clipboard"
	"github.com/specialistvlad/sheetgrid/internal/grid"
	"github.com/specialistvlad/sheetgrid/internal/memstore"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/record"
	"github.com/specialistvlad/sheetgrid/internal/scheduler"
	"github.com/specialistvlad/sheetgrid/internal/sheet"
	"github.com/specialistvlad/sheetgrid/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	model *Model
	grid  *grid.Controller
	loop  *scheduler.Loop
	store *memstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	notBlank, hint, err := validation.Lookup(validation.NotBlank)
	require.NoError(t, err)
	rows := []*record.Record{
		record.New(map[string]any{record.IDKey: "c1", "name": "Ada"}),
		record.New(map[string]any{record.IDKey: "c2", "name": "Bob"}),
	}
	f := &fixture{loop: scheduler.New(), store: memstore.New()}
	f.store.Seed(rows...)
	f.grid, err = grid.New(context.Background(), grid.Config{
		Columns: []sheet.Column{
			{Label: "Name", Path: []string{"name"}, Validate: notBlank, Hint: hint},
			{Label: "Note", Path: []string{"note"}},
		},
		Rows:      rows,
		Store:     f.store,
		Scheduler: f.loop,
		Clipboard: clipboard.NewMemoryBuffer(),
		Dispatch:  func(fn func()) { fn() },
	})
	require.NoError(t, err)
	f.model = New(context.Background(), f.grid, f.loop, Options{CellWidth: 10})
	t.Cleanup(f.model.Close)
	f.model.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	return f
}

func (f *fixture) click(row, col int) {
	x, y := handleWidth+col*(f.model.layout.cellWidth+1), headerHeight+row
	f.model.Update(press(x, y))
	f.model.Update(release(x, y))
}

func (f *fixture) typ(s string) {
	for _, r := range s {
		f.model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestModel_EditAndSave(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)

	// --- Act ---
	f.click(0, 0)
	f.typ("Cy")
	f.model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	// --- Assert ---
	assert.Equal(t, "Cy", f.grid.Text(0, 0))
	sel, ok := f.grid.Selection()
	require.True(t, ok)
	assert.Equal(t, 1, sel.Row, "enter moves down")
	saved, ok := f.store.Get("c1")
	require.True(t, ok)
	v, _ := saved.Get([]string{"name"})
	assert.Equal(t, "Cy", v)
}

func TestModel_ViewShowsGridAndHint(t *testing.T) {
	f := newFixture(t)

	view := f.model.View()
	assert.Contains(t, view, "Name")
	assert.Contains(t, view, "Ada")
	assert.Contains(t, view, "rows 2")

	f.click(1, 0)
	f.typ(" ")
	view = f.model.View()
	assert.Contains(t, view, "Value required")
	assert.Contains(t, view, cursor)
}

func TestModel_AddAndDeleteRows(t *testing.T) {
	f := newFixture(t)

	f.model.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, 3, f.grid.Len())

	f.click(0, 0)
	f.model.Update(tea.KeyMsg{Type: tea.KeyCtrlD})

	assert.Equal(t, 2, f.grid.Len())
	_, ok := f.store.Get("c1")
	assert.False(t, ok)
	assert.Empty(t, f.model.Status())
}

func TestModel_Quit(t *testing.T) {
	f := newFixture(t)
	f.click(0, 1)
	f.typ("x")

	_, cmd := f.model.Update(tea.KeyMsg{Type: tea.KeyCtrlQ})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Equal(t, "x", f.grid.Text(0, 1), "the open editor is committed")
	saved, _ := f.store.Get("c1")
	v, _ := saved.Get([]string{"note"})
	assert.Equal(t, "x", v)
}

func TestModel_WakeDrainsLoop(t *testing.T) {
	f := newFixture(t)
	ran := false
	f.loop.Post(func() { ran = true })

	_, cmd := f.model.Update(wakeMsg{})

	assert.True(t, ran)
	assert.NotNil(t, cmd)
}

func TestModel_WaitForWakeStopsWithContext(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	m := New(ctx, f.grid, f.loop, Options{})
	t.Cleanup(m.Close)
	got := make(chan tea.Msg, 1)
	go func() { got <- m.Init()() }()

	// --- Act ---
	cancel()

	// --- Assert ---
	select {
	case msg := <-got:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("wait did not stop with its context")
	}
	f.loop.Post(func() {})
	select {
	case <-f.loop.Wake():
	default:
		t.Fatal("the wake signal was consumed")
	}
}

func TestRun_QuitLeavesWakeSignal(t *testing.T) {
	// --- Arrange ---
	f := newFixture(t)
	in := strings.NewReader("\x11") // ctrl+q

	// --- Act ---
	err := Run(context.Background(), f.grid, f.loop, Options{}, tea.WithInput(in), tea.WithOutput(&bytes.Buffer{}))
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)
	go f.loop.Post(func() {})

	// --- Assert ---
	select {
	case <-f.loop.Wake():
	case <-time.After(time.Second):
		t.Fatal("a finished program still consumes the wake signal")
	}
}

func TestModel_ErrorsReachStatusLine(t *testing.T) {
	f := newFixture(t)

	f.model.RowStateChanged("c9", persist.Errored, errors.New("boom"))
	assert.Equal(t, "row c9: boom", f.model.Status())
	assert.Contains(t, f.model.View(), "row c9: boom")

	f.model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Empty(t, f.model.Status(), "the next key clears the message")
}

func TestModel_ScrollFollowsSelection(t *testing.T) {
	f := newFixture(t)
	for range 10 {
		f.model.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	}
	require.Equal(t, 12, f.grid.Len())
	f.click(0, 0)

	// 12 lines leave 9 visible rows.
	for range 11 {
		f.model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	assert.Equal(t, 3, f.model.layout.top)
}
