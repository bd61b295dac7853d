// Package sqlitestore persists grid rows as JSON documents in SQLite using
// the pure-Go modernc.org/sqlite driver.
//
// Rows live in a single table:
//
//	records(id TEXT PRIMARY KEY, rev INTEGER NOT NULL, doc TEXT NOT NULL)
//
// doc holds the full record including "_id" and "_rev". The rev column is the
// source of truth for revisions and is written back into the returned record.
package sqlitestore
