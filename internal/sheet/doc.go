// Package sheet is the grid model: immutable column definitions and the
// ordered collection of row records.
//
// Rows are addressed two ways. Display positions (row, col) index the visible
// rows, which excludes rows detached by a pending delete. Persistence addresses
// rows by identity: ReplaceRowByID matches the record id, RemoveRow matches the
// exact *record.Record pointer. Both report ErrRowNotFound when the target is
// absent, which means the caller's view of the collection is wrong.
//
// Every mutation increments a change counter. Value mutations additionally
// call the mutation hook, which the persistence queue uses to mark rows
// pending.
package sheet
