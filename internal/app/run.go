package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/hcl_adapter"
	"github.com/specialistvlad/sheetgrid/internal/tui"
)

// settleTimeout bounds how long shutdown waits for saves in flight.
const settleTimeout = 5 * time.Second

// settlePoll is how often settle drains without a wake signal. Another
// goroutine may consume the loop's signal.
const settlePoll = 50 * time.Millisecond

// Run drives the grid until ctx is done or the user quits, then waits for
// outstanding saves, writes the dump and releases resources.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	a.healthCheckServer()

	var runErr error
	if a.config.Headless {
		a.logger.Info("🚀 Grid loop running headless.", "rows", a.grid.Len())
		runErr = a.loop.Run(ctx)
	} else {
		runErr = tui.Run(ctx, a.grid, a.loop, tui.Options{CellWidth: a.config.CellWidth})
	}
	if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
		runErr = nil
	}

	a.settle(settleTimeout)

	if a.config.DumpPath != "" {
		if err := a.dump(a.config.DumpPath); err != nil {
			runErr = errors.Join(runErr, err)
		}
	}
	if err := a.closeHealthCheckServer(); err != nil {
		runErr = errors.Join(runErr, err)
	}
	a.close()

	a.logger.Info("🏁 Grid stopped.")
	return runErr
}

// settle drains the loop until no save is in flight or timeout passes.
func (a *App) settle(timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	poll := time.NewTicker(settlePoll)
	defer poll.Stop()
	for {
		a.loop.Drain()
		st := a.grid.Stats()
		if st.Saving == 0 {
			return
		}
		select {
		case <-a.loop.Wake():
		case <-poll.C:
		case <-timer.C:
			a.loop.Drain()
			if st = a.grid.Stats(); st.Saving > 0 {
				a.logger.Warn("Stopping with saves still in flight.", "saving", st.Saving)
			}
			return
		}
	}
}

func (a *App) dump(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dump file: %w", err)
	}
	defer f.Close()
	if err := hcl_adapter.WriteRows(f, a.grid.Snapshot()); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	a.logger.Info("Rows written.", "path", path, "rows", a.grid.Len())
	return f.Close()
}
