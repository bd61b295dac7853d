// Package testutil provides a harness for system tests that run a complete
// headless application against sheet files written to a temporary directory.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/specialistvlad/sheetgrid/internal/app"
	"github.com/specialistvlad/sheetgrid/internal/grid"
	"github.com/stretchr/testify/require"
)

// Harness is one headless application under test.
type Harness struct {
	App  *app.App
	Logs *app.SafeBuffer
	Dir  string
	// DumpPath receives the rows when the app stops.
	DumpPath string

	cancel context.CancelFunc
	done   chan error
}

// NewHarness writes files into a fresh temporary directory and builds a
// headless app over it. Keys of files are paths relative to that directory.
func NewHarness(t *testing.T, files map[string]string) *Harness {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	}

	h := &Harness{Dir: dir, DumpPath: filepath.Join(t.TempDir(), "dump.hcl")}
	h.App, h.Logs = app.SetupAppTest(t, &app.Config{SheetPath: dir, DumpPath: h.DumpPath})
	return h
}

// Start runs the app until Stop is called.
func (h *Harness) Start(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	h.done = make(chan error, 1)
	go func() { h.done <- h.App.Run(ctx) }()
	t.Cleanup(func() {
		if h.cancel != nil {
			_ = h.Stop(t)
		}
	})
}

// Stop cancels the run and returns its error once saves have settled.
func (h *Harness) Stop(t *testing.T) error {
	t.Helper()
	h.cancel()
	h.cancel = nil
	select {
	case err := <-h.done:
		return err
	case <-time.After(10 * time.Second):
		t.Fatal("app did not stop in time")
		return nil
	}
}

// OnLoop runs fn on the grid loop and waits for it to return.
func (h *Harness) OnLoop(t *testing.T, fn func(g *grid.Controller)) {
	t.Helper()
	done := make(chan struct{})
	h.App.Loop().Post(func() {
		defer close(done)
		fn(h.App.Grid())
	})
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("grid loop did not run the task")
	}
}

// Dump returns the rows written when the app stopped.
func (h *Harness) Dump(t *testing.T) string {
	t.Helper()
	out, err := os.ReadFile(h.DumpPath)
	require.NoError(t, err)
	return string(out)
}
