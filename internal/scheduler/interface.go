// Package scheduler provides the cooperative task loop every grid component
// defers work onto.
//
// # Why Scheduler Exists
//
// Several grid behaviors must happen "on the next tick" rather than inline:
// coalescing many edits into one save, resetting a clipboard staging buffer
// after the platform copy completed, reading it back after a paste. Store
// calls finish on foreign goroutines and their completions must be applied to
// the grid without locks. A single loop gives all of these one ordering and one
// goroutine.
//
// # How It Works
//
//  1. Post appends a task to the pending queue and signals Wake.
//  2. Tick swaps the queue out and runs exactly the tasks that were pending
//     when it started. Tasks posted while ticking run on the next tick.
//  3. Drain ticks until the queue is empty; Run ticks whenever woken until
//     its context is done.
//
// # Thread-Safety
//
// Post is safe from any goroutine. Tick, Drain and Run must all be called
// from the same goroutine, which becomes the owner of grid state.
package scheduler

// Scheduler is the capability components use to defer work to the next tick.
type Scheduler interface {
	// Post queues fn for the next tick. It never runs fn inline.
	Post(fn func())
}
