package config

// Model is the unified, format-agnostic representation of a sheet.
type Model struct {
	Columns []*Column
	Rows    []*Row
	Store   *Store
}

// Column is the format-agnostic representation of a `column` block.
type Column struct {
	Label      string
	Path       []string
	Validation string
	Hint       string
	Editor     string
	Choices    []string
}

// Row is an initial record. Fields holds native Go values: strings, float64,
// bool, []any and map[string]any.
type Row struct {
	ID     string
	Fields map[string]any
}

// Store kinds.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StoreSocketIO = "socketio"
)

// Store selects and configures the persistence backend.
type Store struct {
	Kind               string
	DSN                string
	URL                string
	Namespace          string
	InsecureSkipVerify bool
}
