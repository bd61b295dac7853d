package system

import (
	"testing"

	"github.com/specialistvlad/sheetgrid/internal/grid"
	"github.com/specialistvlad/sheetgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test for: sheet definitions spread over a directory are merged.
func TestSheet_MergesHCL_FromDirectoryPath(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"columns.hcl": `
column "Name" {
  path = ["name"]
}

column "City" {
  path = ["address", "city"]
}
`,
		"rows/people.hcl": `
row "p1" {
  name    = "Ada"
  address = { city = "London" }
}

row "p2" {
  name = "Linus"
}
`,
	}

	// --- Act ---
	h := testutil.NewHarness(t, files)

	// --- Assert ---
	h.Start(t)
	h.OnLoop(t, func(g *grid.Controller) {
		assert.Equal(t, 2, g.NumColumns())
		assert.Equal(t, 2, g.Len())
		assert.Equal(t, "London", g.Text(0, 1))
		assert.Equal(t, "", g.Text(1, 1))
	})
	require.NoError(t, h.Stop(t))
	testutil.AssertLogged(t, h, "Discovered HCL files.", "count=2")
}
