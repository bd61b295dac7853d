package persist

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/record"
	"github.com/specialistvlad/sheetgrid/internal/scheduler"
	"github.com/specialistvlad/sheetgrid/internal/sheet"
)

var _ Rows = (*sheet.Model)(nil)

type edit struct {
	path  []string
	value any
}

type entry struct {
	pending   bool
	inFlight  bool
	scheduled bool
	errored   bool
	replay    []edit
	lastErr   error
}

// Stats summarizes the entries of a queue.
type Stats struct {
	Tracked int `json:"tracked"`
	Saving  int `json:"saving"`
	Errored int `json:"errored"`
}

// Option configures a Queue.
type Option func(*Queue)

// WithListener sets the row state listener.
func WithListener(l Listener) Option {
	return func(q *Queue) { q.listener = l }
}

// WithDispatcher replaces the function that starts store calls. The default
// runs each call on its own goroutine.
func WithDispatcher(dispatch func(func())) Option {
	return func(q *Queue) { q.dispatch = dispatch }
}

// Queue is the persistence queue of one grid.
type Queue struct {
	ctx      context.Context
	logger   *slog.Logger
	store    Store
	rows     Rows
	sched    scheduler.Scheduler
	listener Listener
	dispatch func(func())
	entries  map[string]*entry
}

// NewQueue creates a queue. ctx is passed to every store call.
func NewQueue(ctx context.Context, store Store, rows Rows, sched scheduler.Scheduler, opts ...Option) *Queue {
	q := &Queue{
		ctx:      ctx,
		logger:   ctxlog.FromContext(ctx),
		store:    store,
		rows:     rows,
		sched:    sched,
		dispatch: func(fn func()) { go fn() },
		entries:  make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Track initializes an idle entry for id.
func (q *Queue) Track(id string) {
	if _, ok := q.entries[id]; !ok {
		q.entries[id] = &entry{}
	}
}

// MarkPending records that r changed and schedules a flush for the next tick.
// Its signature matches sheet.MutationFunc.
func (q *Queue) MarkPending(r *record.Record, path []string, value any) {
	id := r.ID()
	e := q.entry(id)
	if e.inFlight {
		e.replay = append(e.replay, edit{path: append([]string(nil), path...), value: value})
	}
	e.pending = true
	q.schedule(id, e)
}

// Remove detaches r from the visible rows and schedules its removal from the
// store. The row leaves the model once the store confirms.
func (q *Queue) Remove(r *record.Record) bool {
	if !q.rows.Detach(r) {
		return false
	}
	id := r.ID()
	e := q.entry(id)
	e.pending = true
	q.logger.Debug("Row detached for removal.", "id", id)
	q.schedule(id, e)
	return true
}

// Flush starts a store call for the row if it has pending changes and none is
// in flight.
func (q *Queue) Flush(id string) {
	e, ok := q.entries[id]
	if !ok || e.inFlight || !e.pending {
		return
	}
	r, ok := q.rows.RowByID(id)
	if !ok {
		panic(fmt.Errorf("persist: flush %q: %w", id, sheet.ErrRowNotFound))
	}

	e.pending = false
	e.inFlight = true
	e.errored = false
	e.lastErr = nil
	e.replay = nil
	sent := r.Clone()

	if q.rows.IsDetached(r) {
		q.logger.Debug("Removing row.", "id", id)
		q.notify(id, Saving, nil)
		q.dispatch(func() {
			err := q.store.Remove(q.ctx, sent)
			q.sched.Post(func() { q.removed(id, r, err) })
		})
		return
	}

	q.logger.Debug("Saving row.", "id", id)
	q.notify(id, Saving, nil)
	q.dispatch(func() {
		saved, err := q.store.Save(q.ctx, sent)
		q.sched.Post(func() { q.saved(id, saved, err) })
	})
}

// Create asks the store for a new row. On success the record is appended to
// the model and tracked. done runs on the scheduler goroutine.
func (q *Queue) Create(done func(r *record.Record, err error)) {
	q.dispatch(func() {
		r, err := q.store.Create(q.ctx)
		q.sched.Post(func() {
			switch {
			case err != nil:
				err = fmt.Errorf("%w: %w", ErrCreateFailed, err)
			case r == nil || r.ID() == "":
				err = ErrMissingID
			default:
				if _, dup := q.rows.RowByID(r.ID()); dup {
					err = fmt.Errorf("%w: id %q already present", ErrCreateFailed, r.ID())
				}
			}
			if err != nil {
				q.logger.Warn("Row creation failed.", "error", err)
				done(nil, err)
				return
			}
			q.rows.AppendRow(r)
			q.Track(r.ID())
			q.logger.Debug("Row created.", "id", r.ID())
			done(r, nil)
		})
	})
}

// State returns the persistence state of a tracked row.
func (q *Queue) State(id string) (RowState, error) {
	e, ok := q.entries[id]
	switch {
	case !ok:
		return Removed, nil
	case e.inFlight:
		return Saving, nil
	case e.errored:
		return Errored, e.lastErr
	default:
		return Saved, nil
	}
}

// Stats counts in-flight and errored rows.
func (q *Queue) Stats() Stats {
	s := Stats{Tracked: len(q.entries)}
	for _, e := range q.entries {
		if e.inFlight {
			s.Saving++
		}
		if e.errored {
			s.Errored++
		}
	}
	return s
}

func (q *Queue) saved(id string, saved *record.Record, err error) {
	e := q.entry(id)
	e.inFlight = false
	if err == nil && (saved == nil || saved.ID() != id) {
		err = fmt.Errorf("save %q: %w", id, ErrMalformedRecord)
	}
	if err != nil {
		e.errored = true
		e.lastErr = err
		e.replay = nil
		q.logger.Warn("Row save failed.", "id", id, "error", err)
		q.notify(id, Errored, err)
		return
	}

	for _, ed := range e.replay {
		saved.Set(ed.path, ed.value)
	}
	e.replay = nil
	if err := q.rows.ReplaceRowByID(saved); err != nil {
		panic(fmt.Errorf("persist: %w", err))
	}
	q.notify(id, Saved, nil)
	q.Flush(id)
}

func (q *Queue) removed(id string, r *record.Record, err error) {
	e := q.entry(id)
	e.inFlight = false
	if err != nil {
		e.errored = true
		e.lastErr = err
		q.rows.Reattach(r)
		q.logger.Warn("Row removal failed.", "id", id, "error", err)
		q.notify(id, Errored, err)
		return
	}
	if err := q.rows.RemoveRow(r); err != nil {
		panic(fmt.Errorf("persist: %w", err))
	}
	delete(q.entries, id)
	q.notify(id, Removed, nil)
	q.Flush(id)
}

func (q *Queue) entry(id string) *entry {
	e, ok := q.entries[id]
	if !ok {
		e = &entry{}
		q.entries[id] = e
	}
	return e
}

func (q *Queue) schedule(id string, e *entry) {
	if e.scheduled {
		return
	}
	e.scheduled = true
	q.sched.Post(func() {
		e.scheduled = false
		q.Flush(id)
	})
}

func (q *Queue) notify(id string, state RowState, err error) {
	if q.listener != nil {
		q.listener.RowStateChanged(id, state, err)
	}
}
