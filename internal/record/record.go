package record

import (
	"encoding/json"
	"fmt"
)

const (
	// IDKey is the field holding the record identifier.
	IDKey = "_id"
	// RevKey is the field a store may use to track the persisted revision.
	RevKey = "_rev"
)

// Record is one row of the grid. Records are compared by pointer when they
// are removed from a collection, so callers must keep passing the same
// *Record they inserted.
type Record struct {
	fields map[string]any
}

// New wraps fields in a Record. The map is owned by the record afterwards.
func New(fields map[string]any) *Record {
	if fields == nil {
		fields = make(map[string]any)
	}
	return &Record{fields: fields}
}

// WithID returns a new record holding only the given identifier.
func WithID(id string) *Record {
	return New(map[string]any{IDKey: id})
}

// ID returns the identifier, or "" when the record has none.
func (r *Record) ID() string {
	if r == nil {
		return ""
	}
	id, _ := r.fields[IDKey].(string)
	return id
}

// Get returns the value at path. The second result is false when any key on
// the path is absent or an intermediate value is not a mapping.
func (r *Record) Get(path []string) (any, bool) {
	if r == nil || len(path) == 0 {
		return nil, false
	}
	node := r.fields
	for i, key := range path {
		v, ok := node[key]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, false
		}
		node = next
	}
	return nil, false
}

// Set stores value at path, creating intermediate mappings as needed. An
// intermediate value that is not a mapping is overwritten. It returns false
// only for an empty path.
func (r *Record) Set(path []string, value any) bool {
	if r == nil || len(path) == 0 {
		return false
	}
	node := r.fields
	for _, key := range path[:len(path)-1] {
		next, ok := node[key].(map[string]any)
		if !ok {
			next = make(map[string]any)
			node[key] = next
		}
		node = next
	}
	node[path[len(path)-1]] = value
	return true
}

// Clone returns a deep copy of the record. Mappings and sequences are copied;
// scalars are shared.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return New(cloneMap(r.fields))
}

// Fields returns a deep copy of the underlying mapping.
func (r *Record) Fields() map[string]any {
	if r == nil {
		return nil
	}
	return cloneMap(r.fields)
}

// String implements fmt.Stringer for log output.
func (r *Record) String() string {
	return fmt.Sprintf("record(%s)", r.ID())
}

// MarshalJSON encodes the record as its field mapping.
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.fields)
}

// UnmarshalJSON decodes a JSON object into the record.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	if fields == nil {
		fields = make(map[string]any)
	}
	r.fields = fields
	return nil
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
