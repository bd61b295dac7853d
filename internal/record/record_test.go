package record

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_TraversesNestedKeys(t *testing.T) {
	r := New(map[string]any{
		IDKey: "c1",
		"contact": map[string]any{
			"phone": "+12345678901",
		},
	})

	v, ok := r.Get([]string{"contact", "phone"})
	require.True(t, ok)
	assert.Equal(t, "+12345678901", v)
	assert.Equal(t, "c1", r.ID())
}

func TestGet_MissingIntermediateDoesNotCreate(t *testing.T) {
	r := New(map[string]any{"a": "scalar"})

	_, ok := r.Get([]string{"missing", "b"})
	assert.False(t, ok)
	_, ok = r.Get([]string{"a", "b"})
	assert.False(t, ok, "scalar intermediate must read as unset")

	// --- Assert --- the read left the record untouched.
	assert.Empty(t, cmp.Diff(map[string]any{"a": "scalar"}, r.Fields()))
}

func TestSet_CreatesIntermediateMappings(t *testing.T) {
	r := New(nil)

	require.True(t, r.Set([]string{"a", "b", "c"}, "v"))

	want := map[string]any{"a": map[string]any{"b": map[string]any{"c": "v"}}}
	if diff := cmp.Diff(want, r.Fields()); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_OverwritesScalarIntermediate(t *testing.T) {
	// --- Arrange ---
	r := New(map[string]any{"a": 5, "keep": true})

	// --- Act ---
	r.Set([]string{"a", "b"}, "value")

	// --- Assert ---
	want := map[string]any{"a": map[string]any{"b": "value"}, "keep": true}
	assert.Empty(t, cmp.Diff(want, r.Fields()))
}

func TestSet_OverwritesSequenceIntermediate(t *testing.T) {
	r := New(map[string]any{"a": []any{"x", "y"}})

	r.Set([]string{"a", "b"}, "value")

	v, ok := r.Get([]string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestSet_EmptyPathRejected(t *testing.T) {
	r := New(nil)
	assert.False(t, r.Set(nil, "x"))
	assert.Empty(t, r.Fields())
}

func TestClone_IsDeep(t *testing.T) {
	r := New(map[string]any{
		IDKey:  "c1",
		"tags": []any{"a"},
		"nested": map[string]any{
			"k": "v",
		},
	})

	c := r.Clone()
	c.Set([]string{"nested", "k"}, "changed")

	v, _ := r.Get([]string{"nested", "k"})
	assert.Equal(t, "v", v)
	assert.NotSame(t, r, c)
	assert.Equal(t, "c1", c.ID())
}

func TestJSON_RoundTripKeepsFields(t *testing.T) {
	r := New(map[string]any{IDKey: "c1", "name": "Ada"})

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "c1", decoded.ID())
	v, ok := decoded.Get([]string{"name"})
	require.True(t, ok)
	assert.Equal(t, "Ada", v)
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		v    any
		ok   bool
		want string
	}{
		{"missing", nil, false, ""},
		{"nil", nil, true, ""},
		{"string", "old", true, "old"},
		{"whole float", float64(42), true, "42"},
		{"fraction", 1.5, true, "1.5"},
		{"bool", true, true, "true"},
		{"int", 7, true, "7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Text(tc.v, tc.ok))
		})
	}
}
