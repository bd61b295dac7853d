package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/record"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when removing a record that is not stored.
var ErrNotFound = errors.New("record not found")

const schema = `CREATE TABLE IF NOT EXISTS records (
	id  TEXT PRIMARY KEY,
	rev INTEGER NOT NULL,
	doc TEXT NOT NULL
)`

// Store is a persist.Store backed by a SQLite database.
type Store struct {
	db *sql.DB
}

var (
	_ persist.Store  = (*Store)(nil)
	_ persist.Lister = (*Store)(nil)
)

// Open connects to the database at dsn and creates the table if needed.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", dsn, err)
	}
	// ":memory:" databases exist per connection.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create records table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts an empty record with a fresh id.
func (s *Store) Create(ctx context.Context) (*record.Record, error) {
	r := record.WithID(uuid.NewString())
	r.Set([]string{record.RevKey}, int64(0))
	doc, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO records (id, rev, doc) VALUES (?, 0, ?)`, r.ID(), string(doc)); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return r, nil
}

// Save upserts r with the next revision and returns the stored record.
func (s *Store) Save(ctx context.Context, r *record.Record) (*record.Record, error) {
	id := r.ID()
	if id == "" {
		return nil, fmt.Errorf("save: %w", persist.ErrMissingID)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	var rev int64
	err = tx.QueryRowContext(ctx, `SELECT rev FROM records WHERE id = ?`, id).Scan(&rev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("read revision of %q: %w", id, err)
	}
	rev++

	out := r.Clone()
	out.Set([]string{record.RevKey}, rev)
	doc, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encode record %q: %w", id, err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO records (id, rev, doc) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET rev = excluded.rev, doc = excluded.doc`, id, rev, string(doc))
	if err != nil {
		return nil, fmt.Errorf("write record %q: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit save of %q: %w", id, err)
	}
	return out, nil
}

// Remove deletes r by id.
func (s *Store) Remove(ctx context.Context, r *record.Record) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, r.ID())
	if err != nil {
		return fmt.Errorf("delete record %q: %w", r.ID(), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete record %q: %w", r.ID(), err)
	}
	if n == 0 {
		return fmt.Errorf("remove %q: %w", r.ID(), ErrNotFound)
	}
	return nil
}

// Get loads one record.
func (s *Store) Get(ctx context.Context, id string) (*record.Record, error) {
	var rev int64
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT rev, doc FROM records WHERE id = ?`, id).Scan(&rev, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get %q: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", id, err)
	}
	return decode(rev, doc)
}

// List returns all records in insertion order.
func (s *Store) List(ctx context.Context) ([]*record.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT rev, doc FROM records ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []*record.Record
	for rows.Next() {
		var rev int64
		var doc string
		if err := rows.Scan(&rev, &doc); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r, err := decode(rev, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

func decode(rev int64, doc string) (*record.Record, error) {
	r := record.New(nil)
	if err := json.Unmarshal([]byte(doc), r); err != nil {
		return nil, err
	}
	r.Set([]string{record.RevKey}, rev)
	return r, nil
}
