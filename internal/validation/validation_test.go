package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_BuiltinKinds(t *testing.T) {
	tests := []struct {
		kind  Kind
		text  string
		valid bool
	}{
		{Phone, "+12345678901", true},
		{Phone, "  +12345678901 ", true},
		{Phone, "12345678901", false},
		{Phone, "+1234", false},
		{NotBlank, "x", true},
		{NotBlank, "   ", false},
		{NotBlank, "", false},
		{Integer, " 42 ", true},
		{Integer, "4.2", false},
		{Integer, "-1", false},
	}
	for _, tc := range tests {
		t.Run(string(tc.kind)+"/"+tc.text, func(t *testing.T) {
			p, hint, err := Lookup(tc.kind)
			require.NoError(t, err)
			assert.NotEmpty(t, hint)
			assert.Equal(t, tc.valid, p(tc.text))
		})
	}
}

func TestLookup_EmptyKindMeansNoValidation(t *testing.T) {
	p, hint, err := Lookup("")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, hint)
	assert.True(t, Check(p, "anything"))
}

func TestLookup_UnknownKind(t *testing.T) {
	_, _, err := Lookup("email")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownKind))
	assert.Contains(t, err.Error(), `"email"`)
}

func TestCheck_CustomPredicate(t *testing.T) {
	short := Predicate(func(s string) bool { return len(s) <= 3 })
	assert.True(t, Check(short, "abc"))
	assert.False(t, Check(short, "abcd"))
}
