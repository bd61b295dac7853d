package persist

import (
	"context"
	"errors"

	"github.com/specialistvlad/sheetgrid/internal/record"
)

var (
	// ErrCreateFailed wraps errors returned by Store.Create.
	ErrCreateFailed = errors.New("create failed")
	// ErrMissingID is reported when Create succeeds without an identified record.
	ErrMissingID = errors.New("created record has no id")
	// ErrMalformedRecord is reported when Save succeeds without returning the
	// row's canonical record.
	ErrMalformedRecord = errors.New("save returned no usable record")
)

// Store is the external persistence collaborator. A non-nil error means the
// operation failed. Implementations must not retain the records they are given.
type Store interface {
	// Create returns a new record carrying an id.
	Create(ctx context.Context) (*record.Record, error)
	// Save persists r and returns the canonical stored record.
	Save(ctx context.Context, r *record.Record) (*record.Record, error)
	// Remove deletes r.
	Remove(ctx context.Context, r *record.Record) error
}

// Lister is implemented by stores that can enumerate persisted records.
type Lister interface {
	List(ctx context.Context) ([]*record.Record, error)
}

// Rows is the part of the grid model the queue reads and mutates.
type Rows interface {
	RowByID(id string) (*record.Record, bool)
	AppendRow(r *record.Record)
	ReplaceRowByID(r *record.Record) error
	RemoveRow(r *record.Record) error
	Detach(r *record.Record) bool
	Reattach(r *record.Record) bool
	IsDetached(r *record.Record) bool
}

// RowState is the persistence status reported for a row.
type RowState int

const (
	Saved RowState = iota
	Saving
	Errored
	Removed
)

func (s RowState) String() string {
	switch s {
	case Saving:
		return "saving"
	case Errored:
		return "errored"
	case Removed:
		return "removed"
	default:
		return "saved"
	}
}

// Listener receives row state transitions. err is set with Errored.
type Listener interface {
	RowStateChanged(id string, state RowState, err error)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(id string, state RowState, err error)

// RowStateChanged calls f.
func (f ListenerFunc) RowStateChanged(id string, state RowState, err error) {
	f(id, state, err)
}
