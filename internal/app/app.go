package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/specialistvlad/sheetgrid/internal/clipboard"
	"github.com/specialistvlad/sheetgrid/internal/config"
	"github.com/specialistvlad/sheetgrid/internal/ctxlog"
	"github.com/specialistvlad/sheetgrid/internal/grid"
	"github.com/specialistvlad/sheetgrid/internal/scheduler"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	ctx        context.Context
	config     *Config
	sheet      *config.Model
	loop       *scheduler.Loop
	grid       *grid.Controller
	closers    []io.Closer
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It loads the sheet,
// opens its store and builds the grid. Configuration and store failures are
// fatal startup errors and panic.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	sheet, err := loader.Load(ctx, appConfig.SheetPath)
	if err != nil {
		panic(fmt.Errorf("failed to load sheet: %w", err))
	}
	logger.Debug("Sheet loaded and translated into unified model.")

	columns, err := config.BuildColumns(sheet)
	if err != nil {
		panic(fmt.Errorf("invalid sheet: %w", err))
	}

	a := &App{
		outW:   outW,
		logger: logger,
		ctx:    ctx,
		config: appConfig,
		sheet:  sheet,
		loop:   scheduler.New(),
	}

	store, closer, err := openStore(ctx, sheet)
	if err != nil {
		panic(fmt.Errorf("failed to open store: %w", err))
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	rows, err := initialRows(ctx, store, config.BuildRows(sheet))
	if err != nil {
		a.close()
		panic(fmt.Errorf("failed to load rows: %w", err))
	}

	a.grid, err = grid.New(ctx, grid.Config{
		Columns:   columns,
		Rows:      rows,
		Store:     store,
		Scheduler: a.loop,
		Clipboard: a.clipboardBuffer(),
	})
	if err != nil {
		a.close()
		panic(err)
	}
	logger.Debug("Grid built.", "columns", len(columns), "rows", len(rows))
	return a
}

// Grid returns the application's grid. It must only be used from the loop.
func (a *App) Grid() *grid.Controller {
	return a.grid
}

// Loop returns the scheduler the grid runs on.
func (a *App) Loop() *scheduler.Loop {
	return a.loop
}

// clipboardBuffer prefers the system clipboard in interactive mode.
func (a *App) clipboardBuffer() clipboard.Buffer {
	if a.config.Headless {
		return clipboard.NewMemoryBuffer()
	}
	buf, err := clipboard.NewSystemBuffer()
	if err != nil {
		a.logger.Warn("System clipboard unavailable, using a private buffer.", "error", err)
		return clipboard.NewMemoryBuffer()
	}
	return buf
}

func (a *App) close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Error("Failed to close resource.", "error", err)
		}
	}
	a.closers = nil
}
