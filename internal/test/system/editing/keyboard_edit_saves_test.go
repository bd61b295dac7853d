package system

import (
	"testing"

	"github.com/specialistvlad/sheetgrid/internal/grid"
	"github.com/specialistvlad/sheetgrid/internal/router"
	"github.com/specialistvlad/sheetgrid/internal/selection"
	"github.com/specialistvlad/sheetgrid/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contacts = `
column "Name" {
  path       = ["name"]
  validation = "notblank"
}

column "Phone" {
  path       = ["phone"]
  validation = "phone"
}

row "c1" {
  name  = "Ada"
  phone = "+12345678901"
}

row "c2" {
  name  = "Bob"
  phone = "+12345678902"
}
`

func typeText(g *grid.Controller, s string) {
	for _, r := range s {
		g.HandleKey(router.KeyEvent{Runes: []rune{r}})
	}
}

// Test for: typing over a cell and pressing enter commits, moves down and
// saves the row.
func TestEditing_TypeEnterSaves(t *testing.T) {
	// --- Arrange ---
	h := testutil.NewHarness(t, map[string]string{"contacts.hcl": contacts})
	h.Start(t)

	// --- Act ---
	h.OnLoop(t, func(g *grid.Controller) {
		g.HandlePointer(router.PointerEvent{Action: router.Press, Button: router.ButtonPrimary, Target: router.TargetCell, Row: 0, Col: 1})
		typeText(g, "+19999999999")
		g.HandleKey(router.KeyEvent{Code: "enter"})
	})

	// --- Assert ---
	h.OnLoop(t, func(g *grid.Controller) {
		cell, ok := g.Selection()
		assert.True(t, ok)
		assert.Equal(t, selection.Cell{Row: 1, Col: 1}, cell)
		assert.False(t, g.CellInvalid(0, 1))
	})
	require.NoError(t, h.Stop(t))
	assert.Contains(t, h.Dump(t), `"+19999999999"`)
	testutil.AssertLogged(t, h, "Saving row.", "id=c1")
}

// Test for: clearing a range flags required cells and keeps the empty value.
func TestEditing_ClearRangeFlagsCells(t *testing.T) {
	h := testutil.NewHarness(t, map[string]string{"contacts.hcl": contacts})
	h.Start(t)

	h.OnLoop(t, func(g *grid.Controller) {
		g.HandlePointer(router.PointerEvent{Action: router.Press, Button: router.ButtonPrimary, Target: router.TargetColumnHeader, Col: 0})
		g.HandleKey(router.KeyEvent{Code: "delete"})
	})

	h.OnLoop(t, func(g *grid.Controller) {
		assert.True(t, g.CellInvalid(0, 0))
		assert.True(t, g.CellInvalid(1, 0))
		assert.Equal(t, "", g.Text(1, 0))
	})
	require.NoError(t, h.Stop(t))
	assert.NotContains(t, h.Dump(t), `"Ada"`)
}
