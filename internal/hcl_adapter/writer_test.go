package hcl_adapter

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sheetgrid/internal/config"
	"github.com/specialistvlad/sheetgrid/internal/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRows_RoundTrip(t *testing.T) {
	// --- Arrange ---
	rows := []*record.Record{
		record.New(map[string]any{
			record.IDKey:  "c1",
			record.RevKey: int64(4),
			"name":        "Ada",
			"age":         float64(36),
			"contact":     map[string]any{"phone": "+12345678901"},
			"tags":        []any{"x"},
			"note":        nil,
		}),
		record.WithID("c2"),
	}
	var buf bytes.Buffer

	// --- Act ---
	require.NoError(t, WriteRows(&buf, rows))
	dir := t.TempDir()
	writeFile(t, dir, "rows.hcl", buf.String())
	model, err := NewLoader().Load(context.Background(), filepath.Join(dir, "rows.hcl"))

	// --- Assert ---
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), record.RevKey)
	require.Len(t, model.Rows, 2)
	assert.Equal(t, &config.Row{ID: "c1", Fields: map[string]any{
		"name":    "Ada",
		"age":     float64(36),
		"contact": map[string]any{"phone": "+12345678901"},
		"tags":    []any{"x"},
		"note":    nil,
	}}, model.Rows[0])
	assert.Equal(t, &config.Row{ID: "c2", Fields: map[string]any{}}, model.Rows[1])
}

func TestWriteRows_Errors(t *testing.T) {
	var buf bytes.Buffer

	err := WriteRows(&buf, []*record.Record{record.New(map[string]any{"name": "x"})})
	assert.ErrorContains(t, err, "no id")

	err = WriteRows(&buf, []*record.Record{record.New(map[string]any{record.IDKey: "r", "bad key": 1})})
	assert.ErrorContains(t, err, "not a valid attribute name")
}
