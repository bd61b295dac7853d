// Package persist serializes row edits against an external Store.
//
// Every row has a save-state entry keyed by its id. A value mutation marks the
// entry pending and posts one flush to the scheduler for the next tick, so all
// edits made within a tick travel in a single save. At most one store call per
// row is in flight; edits arriving meanwhile are remembered and re-applied on
// top of the canonical record the store returns, after which the row is
// flushed again. Failures mark the row errored and are not retried until the
// row is edited again.
//
// Store calls run off the scheduler goroutine against a deep copy of the row.
// Their completions are posted back, so entry state and the grid model are
// only touched on the scheduler goroutine.
package persist
