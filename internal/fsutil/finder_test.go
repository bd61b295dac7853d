package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, p string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, nil, 0o600))
	return p
}

func TestFindFiles(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	a := touch(t, filepath.Join(dir, "a.hcl"))
	b := touch(t, filepath.Join(dir, "nested", "b.hcl"))
	touch(t, filepath.Join(dir, "notes.txt"))
	other := touch(t, filepath.Join(t.TempDir(), "c.txt"))

	// --- Act ---
	files, err := FindFiles([]string{dir, a, other}, ".hcl")

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestFindFiles_MissingPath(t *testing.T) {
	_, err := FindFiles([]string{filepath.Join(t.TempDir(), "missing")}, ".hcl")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFiles_EmptyExtensionPanics(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFiles(nil, "") })
}
