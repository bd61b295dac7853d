// Package memstore provides an ephemeral, thread-safe, in-memory
// implementation of the persist.Store interface.
//
// # Purpose
//
// It backs grids that do not need durable storage: local development,
// headless runs, and tests. Records are kept as deep copies so the grid and
// the store never share mutable state.
//
// # Concurrency Model
//
// Records live in a sync.Map keyed by id. The persistence queue guarantees at
// most one call per row at a time, so keys are written independently and
// never contend; sync.Map fits that access pattern without a global lock.
//
// # Revisions
//
// Every successful Save increments the record's "_rev" field, the way a
// document database reports a new revision.
package memstore
