package scheduler

import (
	"context"
	"sync"

	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
)

// Loop is the default Scheduler implementation.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	ticks   uint64
}

var _ Scheduler = (*Loop)(nil)

// New creates an idle loop.
func New() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn for the next tick.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Wake returns a channel that receives after Post. A receive means at least
// one task may be pending; several posts can share one signal.
func (l *Loop) Wake() <-chan struct{} {
	return l.wake
}

// Pending returns the number of queued tasks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Ticks returns how many non-empty ticks have run.
func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

// Tick runs the tasks queued before it was called and reports how many ran.
func (l *Loop) Tick() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	if len(batch) > 0 {
		l.ticks++
	}
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Drain ticks until no tasks remain and returns the number of tasks run.
func (l *Loop) Drain() int {
	total := 0
	for {
		n := l.Tick()
		if n == 0 {
			return total
		}
		total += n
	}
}

// Run ticks each time the loop is woken until ctx is done. Tasks still queued
// when ctx ends are left for the caller to Drain.
func (l *Loop) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scheduler loop started.")
	defer logger.Debug("Scheduler loop stopped.")

	l.Drain()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
			l.Drain()
		}
	}
}
