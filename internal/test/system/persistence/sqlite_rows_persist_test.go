package system

import (
	"path/filepath"
	"testing"

	"github.com/specialistvlad/sheetgrid/internal/grid"
	"github.com/specialistvlad/sheetgrid/internal/selection"
	"github.com/specialistvlad/sheetgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sheetWithDB(t *testing.T) map[string]string {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "rows.db")
	return map[string]string{"sheet.hcl": `
column "Name" {
  path = ["name"]
}

store "sqlite" {
  dsn = "` + dsn + `"
}

row "r1" {
  name = "first"
}
`}
}

// Test for: rows added and edited through the grid are found again by the
// next run against the same database.
func TestPersistence_SQLiteRowsSurviveRestart(t *testing.T) {
	// --- Arrange ---
	files := sheetWithDB(t)
	h := testutil.NewHarness(t, files)
	h.Start(t)

	// --- Act ---
	h.OnLoop(t, func(g *grid.Controller) { g.AddRow() })
	require.Eventually(t, func() bool {
		n := 0
		h.OnLoop(t, func(g *grid.Controller) { n = g.Len() })
		return n == 2
	}, testTimeout, testTick)
	h.OnLoop(t, func(g *grid.Controller) {
		g.SetCellText(selection.Cell{Row: 1, Col: 0}, "second")
	})
	require.NoError(t, h.Stop(t))

	restarted := testutil.NewHarness(t, files)
	restarted.Start(t)

	// --- Assert ---
	restarted.OnLoop(t, func(g *grid.Controller) {
		assert.Equal(t, 2, g.Len())
		assert.Equal(t, "first", g.Text(0, 0))
		assert.Equal(t, "second", g.Text(1, 0))
	})
	require.NoError(t, restarted.Stop(t))
}

// Test for: a deleted row that the store created stays deleted.
func TestPersistence_SQLiteDeleteSurvivesRestart(t *testing.T) {
	files := sheetWithDB(t)
	h := testutil.NewHarness(t, files)
	h.Start(t)
	h.OnLoop(t, func(g *grid.Controller) { g.AddRow() })
	require.Eventually(t, func() bool {
		n := 0
		h.OnLoop(t, func(g *grid.Controller) { n = g.Len() })
		return n == 2
	}, testTimeout, testTick)

	h.OnLoop(t, func(g *grid.Controller) { assert.True(t, g.DeleteRow(1)) })
	require.NoError(t, h.Stop(t))

	restarted := testutil.NewHarness(t, files)
	restarted.Start(t)
	restarted.OnLoop(t, func(g *grid.Controller) {
		assert.Equal(t, 1, g.Len())
	})
	require.NoError(t, restarted.Stop(t))
}
