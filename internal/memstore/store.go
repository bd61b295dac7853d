package memstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/record"
)

// ErrNotFound is returned when removing a record the store does not hold.
var ErrNotFound = errors.New("record not found")

type item struct {
	seq uint64
	rec *record.Record
}

// Store is an in-memory persist.Store.
type Store struct {
	records sync.Map // Key: record id, Value: item
	seq     atomic.Uint64
}

var (
	_ persist.Store  = (*Store)(nil)
	_ persist.Lister = (*Store)(nil)
)

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Seed stores records that were not created through the store, such as rows
// defined in a sheet file.
func (s *Store) Seed(records ...*record.Record) {
	for _, r := range records {
		s.records.Store(r.ID(), item{seq: s.seq.Add(1), rec: r.Clone()})
	}
}

// Create stores and returns a new record with a random id.
func (s *Store) Create(ctx context.Context) (*record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r := record.New(map[string]any{record.IDKey: uuid.NewString(), record.RevKey: 0})
	s.records.Store(r.ID(), item{seq: s.seq.Add(1), rec: r.Clone()})
	return r, nil
}

// Save upserts r and returns it with the next revision.
func (s *Store) Save(ctx context.Context, r *record.Record) (*record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := r.ID()
	if id == "" {
		return nil, fmt.Errorf("save: %w", persist.ErrMissingID)
	}
	seq := uint64(0)
	rev := 0
	if v, ok := s.records.Load(id); ok {
		prev := v.(item)
		seq = prev.seq
		rev = Revision(prev.rec)
	} else {
		seq = s.seq.Add(1)
	}
	out := r.Clone()
	out.Set([]string{record.RevKey}, rev+1)
	s.records.Store(id, item{seq: seq, rec: out.Clone()})
	return out, nil
}

// Remove deletes r by id.
func (s *Store) Remove(ctx context.Context, r *record.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := s.records.LoadAndDelete(r.ID()); !ok {
		return fmt.Errorf("remove %q: %w", r.ID(), ErrNotFound)
	}
	return nil
}

// Get returns a copy of the stored record.
func (s *Store) Get(id string) (*record.Record, bool) {
	v, ok := s.records.Load(id)
	if !ok {
		return nil, false
	}
	return v.(item).rec.Clone(), true
}

// List returns copies of all records in insertion order.
func (s *Store) List(ctx context.Context) ([]*record.Record, error) {
	var items []item
	s.records.Range(func(_, v any) bool {
		items = append(items, v.(item))
		return true
	})
	sort.Slice(items, func(i, j int) bool { return items[i].seq < items[j].seq })
	out := make([]*record.Record, len(items))
	for i, it := range items {
		out[i] = it.rec.Clone()
	}
	return out, nil
}

// Revision reads the "_rev" field of r as an int.
func Revision(r *record.Record) int {
	v, _ := r.Get([]string{record.RevKey})
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}
