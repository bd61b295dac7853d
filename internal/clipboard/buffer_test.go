package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBuffer_ResetKeepsCaptured(t *testing.T) {
	b := NewMemoryBuffer()

	require.NoError(t, b.Stage("one"))
	b.Reset()

	assert.Equal(t, "", b.Staged())
	text, err := b.Read()
	require.NoError(t, err)
	assert.Equal(t, "one", text)
}

func TestSystemBuffer_ResetKeepsClipboard(t *testing.T) {
	b, err := NewSystemBuffer()
	if err != nil {
		t.Skip(err)
	}
	if err := b.Stage("sheetgrid"); err != nil {
		t.Skipf("no usable system clipboard: %v", err)
	}

	b.Reset()

	text, err := b.Read()
	require.NoError(t, err)
	assert.Equal(t, "sheetgrid", text)
}
