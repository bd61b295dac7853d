package hcl_adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sheetgrid/internal/config"
	"github.com/specialistvlad/sheetgrid/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

const contactsHCL = `
column "Name" {
  path       = ["name"]
  validation = "notblank"
}

column "Phone" {
  path       = ["contact", "phone"]
  validation = "phone"
  hint       = "international"
}

column "Kind" {
  path    = ["kind"]
  editor  = "choice"
  choices = ["friend", "work"]
}

store "sqlite" {
  dsn = "file:contacts.db"
}

row "c1" {
  name    = "Ada"
  age     = 36
  active  = true
  tags    = ["a", "b"]
  contact = { phone = "+12345678901" }
}
`

func TestLoader_Load(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	writeFile(t, dir, "contacts.hcl", contactsHCL)
	writeFile(t, dir, "notes.txt", "not hcl")

	// --- Act ---
	model, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, model.Columns, 3)
	assert.Equal(t, &config.Column{Label: "Name", Path: []string{"name"}, Validation: "notblank"}, model.Columns[0])
	assert.Equal(t, "international", model.Columns[1].Hint)
	assert.Equal(t, []string{"friend", "work"}, model.Columns[2].Choices)

	require.NotNil(t, model.Store)
	assert.Equal(t, "sqlite", model.Store.Kind)
	assert.Equal(t, "file:contacts.db", model.Store.DSN)

	require.Len(t, model.Rows, 1)
	assert.Equal(t, "c1", model.Rows[0].ID)
	assert.Equal(t, map[string]any{
		"name":    "Ada",
		"age":     float64(36),
		"active":  true,
		"tags":    []any{"a", "b"},
		"contact": map[string]any{"phone": "+12345678901"},
	}, model.Rows[0].Fields)
}

func TestLoader_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.hcl", `column "A" { path = ["a"] }`)
	b := writeFile(t, dir, "b.hcl", `column "B" { path = ["b"] }`)

	model, err := NewLoader().Load(context.Background(), a, b, a)

	require.NoError(t, err)
	require.Len(t, model.Columns, 2)
	assert.Equal(t, "A", model.Columns[0].Label)
	assert.Equal(t, "B", model.Columns[1].Label)
	assert.Nil(t, model.Store)
}

func TestLoader_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"a.hcl": `column "A" {`},
			wantErr: "failed to parse",
		},
		{
			name:    "missing path",
			files:   map[string]string{"a.hcl": `column "A" {}`},
			wantErr: "failed to decode",
		},
		{
			name: "two stores",
			files: map[string]string{
				"a.hcl": `store "memory" {}`,
				"b.hcl": `store "sqlite" {}`,
			},
			wantErr: "only one store block",
		},
		{
			name: "duplicate row",
			files: map[string]string{
				"a.hcl": `row "r1" { name = "x" }`,
				"b.hcl": `row "r1" { name = "y" }`,
			},
			wantErr: "already defined",
		},
		{
			name:    "variable reference",
			files:   map[string]string{"a.hcl": `row "r1" { name = var.x }`},
			wantErr: `attribute "name"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}

			_, err := NewLoader().Load(context.Background(), dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoader_MissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_UnknownValidationSurfacesInBuild(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.hcl", `column "Mail" {
  path       = ["mail"]
  validation = "email"
}`)
	model, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	_, err = config.BuildColumns(model)

	assert.ErrorIs(t, err, validation.ErrUnknownKind)
}
