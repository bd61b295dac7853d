package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/sheetgrid/internal/hcl_adapter"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new headless app instance for system testing.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	appConfig.Headless = true
	testApp := NewApp(logBuffer, appConfig, hcl_adapter.NewLoader())

	t.Cleanup(func() {
		if os.Getenv("SHEETGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
