package grid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/sheetgrid/internal/clipboard"
	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/editsession"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/record"
	"github.com/specialistvlad/sheetgrid/internal/router"
	"github.com/specialistvlad/sheetgrid/internal/scheduler"
	"github.com/specialistvlad/sheetgrid/internal/selection"
	"github.com/specialistvlad/sheetgrid/internal/sheet"
)

var (
	// ErrNoColumns is returned when a grid is configured without columns.
	ErrNoColumns = errors.New("you must define some columns")
	// ErrDuplicateID is returned when two initial rows share an id.
	ErrDuplicateID = errors.New("duplicate row id")
)

// Config configures a grid instance.
type Config struct {
	Columns   []sheet.Column
	Rows      []*record.Record
	Store     persist.Store
	Scheduler scheduler.Scheduler
	// Clipboard defaults to a process-local buffer.
	Clipboard clipboard.Buffer
	// Keys defaults to router.DefaultKeyMap.
	Keys *router.KeyMap
	// Dispatch starts store calls; nil runs each on its own goroutine.
	Dispatch func(func())
}

type cellKey struct {
	id  string
	col int
}

// Stats is a point-in-time summary of a grid.
type Stats struct {
	Rows    int `json:"rows"`
	Saving  int `json:"saving"`
	Errored int `json:"errored"`
}

// Controller is one grid instance.
type Controller struct {
	logger  *slog.Logger
	model   *sheet.Model
	sel     *selection.Controller
	session *editsession.Session
	router  *router.Router
	bridge  *clipboard.Bridge
	queue   *persist.Queue

	observers  []subscription
	nextSub    int
	cellErrors map[cellKey]bool
	rowCount   int

	// selRow is the id of the row holding the selection.
	selRow string
}

var (
	_ router.Grid     = (*Controller)(nil)
	_ clipboard.Cells = (*Controller)(nil)
)

// New validates cfg and builds a controller.
func New(ctx context.Context, cfg Config) (*Controller, error) {
	if len(cfg.Columns) == 0 {
		return nil, ErrNoColumns
	}
	if cfg.Store == nil {
		return nil, errors.New("grid: store is required")
	}
	if cfg.Scheduler == nil {
		return nil, errors.New("grid: scheduler is required")
	}
	seen := make(map[string]bool, len(cfg.Rows))
	for i, r := range cfg.Rows {
		id := r.ID()
		if id == "" {
			return nil, fmt.Errorf("row %d: %w", i, persist.ErrMissingID)
		}
		if seen[id] {
			return nil, fmt.Errorf("row %d: %w: %q", i, ErrDuplicateID, id)
		}
		seen[id] = true
	}

	logger := ctxlog.FromContext(ctx).With("component", "grid")
	ctx = ctxlog.WithLogger(ctx, logger)
	c := &Controller{
		logger:     logger,
		model:      sheet.New(cfg.Columns, cfg.Rows),
		cellErrors: make(map[cellKey]bool),
	}
	c.sel = selection.New(selectionListener{c})
	c.session = editsession.New(c.writeCell, c.locate, c.editorChanged)

	opts := []persist.Option{persist.WithListener(persist.ListenerFunc(c.rowStateChanged))}
	if cfg.Dispatch != nil {
		opts = append(opts, persist.WithDispatcher(cfg.Dispatch))
	}
	c.queue = persist.NewQueue(ctx, cfg.Store, c.model, cfg.Scheduler, opts...)
	for _, r := range cfg.Rows {
		c.queue.Track(r.ID())
	}
	c.model.OnMutate(c.mutated)

	buf := cfg.Clipboard
	if buf == nil {
		buf = clipboard.NewMemoryBuffer()
	}
	c.bridge = clipboard.New(ctx, buf, cfg.Scheduler, c)

	keys := router.DefaultKeyMap()
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}
	c.router = router.New(ctx, c, keys)

	for _, r := range cfg.Rows {
		for col := range cfg.Columns {
			c.evaluateCell(r, col, false)
		}
	}
	c.rowCount = c.model.Len()
	logger.Debug("Grid created.", "columns", len(cfg.Columns), "rows", c.rowCount)
	return c, nil
}

// HandleKey routes a key press.
func (c *Controller) HandleKey(ev router.KeyEvent) bool {
	return c.router.HandleKey(ev)
}

// HandlePointer routes a pointer event.
func (c *Controller) HandlePointer(ev router.PointerEvent) bool {
	return c.router.HandlePointer(ev)
}

// Keys returns the key bindings in use.
func (c *Controller) Keys() router.KeyMap {
	return c.router.Keys()
}

// Columns returns the column definitions.
func (c *Controller) Columns() []sheet.Column {
	return c.model.Columns()
}

// Len returns the number of visible rows.
func (c *Controller) Len() int {
	return c.model.Len()
}

// NumColumns returns the number of columns.
func (c *Controller) NumColumns() int {
	return c.model.NumColumns()
}

// Row returns the visible row at display position row.
func (c *Controller) Row(row int) (*record.Record, bool) {
	return c.model.Row(row)
}

// Text returns a cell's display text.
func (c *Controller) Text(row, col int) string {
	return c.model.Text(row, col)
}

// Snapshot returns copies of the visible rows in display order.
func (c *Controller) Snapshot() []*record.Record {
	out := make([]*record.Record, 0, c.model.Len())
	for i := range c.model.Len() {
		r, _ := c.model.Row(i)
		out = append(out, r.Clone())
	}
	return out
}

// Changes returns the model change counter.
func (c *Controller) Changes() uint64 {
	return c.model.Changes()
}

// CellInvalid reports whether a cell's value fails its column predicate.
func (c *Controller) CellInvalid(row, col int) bool {
	r, ok := c.model.Row(row)
	if !ok {
		return false
	}
	return c.cellErrors[cellKey{r.ID(), col}]
}

// RowState returns the persistence state of the visible row at row.
func (c *Controller) RowState(row int) (persist.RowState, error) {
	r, ok := c.model.Row(row)
	if !ok {
		return persist.Removed, nil
	}
	return c.queue.State(r.ID())
}

// Stats summarizes rows and saves.
func (c *Controller) Stats() Stats {
	qs := c.queue.Stats()
	return Stats{Rows: c.model.Len(), Saving: qs.Saving, Errored: qs.Errored}
}

// Editor returns the edit session state.
func (c *Controller) Editor() editsession.Snapshot {
	return c.session.Snapshot()
}

// Highlight returns the active column headers and row handles.
func (c *Controller) Highlight() selection.Highlight {
	return c.sel.Highlight()
}

func (c *Controller) Selection() (selection.Cell, bool) {
	return c.sel.Selection()
}

func (c *Controller) Range() (selection.Range, bool) {
	return c.sel.Range()
}

// Select makes cell the active cell, committing an editor open elsewhere.
func (c *Controller) Select(cell selection.Cell) {
	c.sel.Select(cell)
}

func (c *Controller) SetRange(anchor, target selection.Cell) {
	c.sel.SetRange(anchor, target)
}

func (c *Controller) ClearRange() {
	c.sel.ClearRange()
}

// ClearSelection removes the selection, committing any open editor.
func (c *Controller) ClearSelection() {
	c.sel.ClearSelection()
}

func (c *Controller) AnchorColumn() (int, bool) {
	return c.sel.AnchorColumn()
}

func (c *Controller) SetAnchorColumn(col int) {
	c.sel.SetAnchorColumn(col)
}

// ClearCells sets every listed cell to the empty value.
func (c *Controller) ClearCells(cells []selection.Cell) {
	for _, cell := range cells {
		c.model.SetValue(cell.Row, cell.Col, "")
	}
}

// EditorFocused reports whether the inline editor is open.
func (c *Controller) EditorFocused() bool {
	return c.session.Active()
}

// OpenEditor opens the editor on the selected cell. With overwrite the
// buffer starts empty.
func (c *Controller) OpenEditor(overwrite bool) {
	cell, ok := c.sel.Selection()
	if !ok {
		return
	}
	r, ok := c.model.Row(cell.Row)
	if !ok {
		return
	}
	col, ok := c.model.Column(cell.Col)
	if !ok {
		return
	}
	t := editsession.Target{RowID: r.ID(), Col: cell.Col}
	c.session.Open(t, col, c.model.Text(cell.Row, cell.Col), overwrite)
}

func (c *Controller) EditorInsert(text string) {
	c.session.Insert(text)
}

func (c *Controller) EditorBackspace() {
	c.session.Backspace()
}

// SetEditorBuffer replaces the editor text.
func (c *Controller) SetEditorBuffer(text string) {
	c.session.SetBuffer(text)
}

func (c *Controller) CommitEditor() bool {
	_, ok := c.session.Commit()
	return ok
}

func (c *Controller) CancelEditor() bool {
	return c.session.Cancel()
}

// Copy stages the selected cell for the clipboard.
func (c *Controller) Copy() {
	if _, err := c.bridge.Copy(); err != nil {
		c.report(err)
	}
}

// Cut copies the selected cell and clears it.
func (c *Controller) Cut() {
	if _, err := c.bridge.Cut(); err != nil {
		c.report(err)
	}
}

// Paste writes the clipboard into the selected cell on the next tick.
func (c *Controller) Paste() {
	c.bridge.Paste(c.report)
}

// CellText returns the display text of cell.
func (c *Controller) CellText(cell selection.Cell) string {
	return c.model.Text(cell.Row, cell.Col)
}

// SetCellText writes text into cell.
func (c *Controller) SetCellText(cell selection.Cell, text string) bool {
	return c.model.SetValue(cell.Row, cell.Col, text)
}

// Bind returns a setter for cell that follows the cell's row when display
// positions shift. The setter does nothing once the row is hidden.
func (c *Controller) Bind(cell selection.Cell) func(text string) bool {
	r, ok := c.model.Row(cell.Row)
	if !ok {
		return func(string) bool { return false }
	}
	t := editsession.Target{RowID: r.ID(), Col: cell.Col}
	return func(text string) bool { return c.setTarget(t, text) }
}

// AddRow asks the store for a new row and appends it once created. Failures
// are reported to observers.
func (c *Controller) AddRow() {
	c.queue.Create(func(r *record.Record, err error) {
		if err != nil {
			c.report(err)
			return
		}
		for col := range c.model.NumColumns() {
			c.evaluateCell(r, col, true)
		}
		c.checkRowCount()
	})
}

// DeleteRow hides the visible row at row and removes it from the store.
func (c *Controller) DeleteRow(row int) bool {
	r, ok := c.model.Row(row)
	if !ok {
		return false
	}
	if t, editing := c.session.Target(); editing {
		if t.RowID == r.ID() {
			c.session.Cancel()
		} else {
			c.session.Commit()
		}
	}
	if !c.queue.Remove(r) {
		return false
	}
	c.sel.ClearRange()
	if cell, ok := c.sel.Selection(); ok {
		switch n := c.model.Len(); {
		case n == 0:
			c.sel.ClearSelection()
		case cell.Row >= n:
			c.sel.Select(selection.Cell{Row: n - 1, Col: cell.Col})
		}
	}
	c.pinSelection()
	c.checkRowCount()
	return true
}

// DeleteSelectedRow deletes the row of the selected cell.
func (c *Controller) DeleteSelectedRow() bool {
	cell, ok := c.sel.Selection()
	if !ok {
		return false
	}
	return c.DeleteRow(cell.Row)
}

func (c *Controller) writeCell(t editsession.Target, text string) {
	if !c.setTarget(t, text) {
		c.logger.Debug("Edit dropped, row is gone.", "id", t.RowID, "col", t.Col)
	}
}

// setTarget writes text into a visible row found by id. Saves swap the
// record, so the row is looked up at write time.
func (c *Controller) setTarget(t editsession.Target, text string) bool {
	r, ok := c.model.RowByID(t.RowID)
	if !ok || c.model.IsDetached(r) {
		return false
	}
	def, ok := c.model.Column(t.Col)
	if !ok {
		return false
	}
	return c.model.SetRecordValue(r, def.Path, text)
}

func (c *Controller) locate(t editsession.Target) (selection.Cell, bool) {
	r, ok := c.model.RowByID(t.RowID)
	if !ok {
		return selection.Cell{}, false
	}
	row, ok := c.model.Index(r)
	if !ok {
		return selection.Cell{}, false
	}
	return selection.Cell{Row: row, Col: t.Col}, true
}

// pinSelection records which row holds the selection.
func (c *Controller) pinSelection() {
	c.selRow = ""
	if cell, ok := c.sel.Selection(); ok {
		if r, ok := c.model.Row(cell.Row); ok {
			c.selRow = r.ID()
		}
	}
}

// followSelection moves the selection to wherever its row is displayed now.
func (c *Controller) followSelection() {
	cell, ok := c.sel.Selection()
	if !ok || c.selRow == "" {
		return
	}
	at, ok := c.locate(editsession.Target{RowID: c.selRow, Col: cell.Col})
	if !ok || at == cell {
		return
	}
	c.logger.Debug("Selection follows its row.", "id", c.selRow, "from", cell, "to", at)
	c.sel.Select(at)
}

func (c *Controller) mutated(r *record.Record, path []string, value any) {
	c.queue.MarkPending(r, path, value)
	for col, def := range c.model.Columns() {
		if slices.Equal(def.Path, path) {
			c.evaluateCell(r, col, true)
		}
	}
}

func (c *Controller) evaluateCell(r *record.Record, col int, notify bool) {
	def, ok := c.model.Column(col)
	if !ok || def.Validate == nil {
		return
	}
	key := cellKey{r.ID(), col}
	invalid := !def.Valid(record.Text(r.Get(def.Path)))
	if c.cellErrors[key] == invalid {
		return
	}
	if invalid {
		c.cellErrors[key] = true
	} else {
		delete(c.cellErrors, key)
	}
	if notify {
		c.each(func(o Observer) { o.CellErrorChanged(r.ID(), col, invalid) })
	}
}
