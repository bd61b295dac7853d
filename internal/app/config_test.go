package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig(Config{SheetPath: "sheet.hcl", HealthcheckPort: 8080})
	require.NoError(t, err)
	assert.Equal(t, "sheet.hcl", cfg.SheetPath)

	_, err = NewConfig(Config{})
	assert.ErrorContains(t, err, "SheetPath")

	_, err = NewConfig(Config{SheetPath: "s", HealthcheckPort: 70000})
	assert.ErrorContains(t, err, "HealthcheckPort")

	_, err = NewConfig(Config{SheetPath: "s", CellWidth: -1})
	assert.ErrorContains(t, err, "CellWidth")
}
