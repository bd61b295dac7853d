package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that the app logged a line containing every given
// fragment.
func AssertLogged(t *testing.T, h *Harness, fragments ...string) {
	t.Helper()

	for _, line := range strings.Split(h.Logs.String(), "\n") {
		found := true
		for _, f := range fragments {
			if !strings.Contains(line, f) {
				found = false
				break
			}
		}
		if found {
			return
		}
	}
	require.Failf(t, "log line not found", "no log line contains all of %q", fragments)
}
