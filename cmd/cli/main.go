package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/sheetgrid/internal/app"
	"github.com/specialistvlad/sheetgrid/internal/cli"
	"github.com/specialistvlad/sheetgrid/internal/hcl_adapter"
)

// main is the entrypoint for the sheetgrid application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		stop()
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(ctx context.Context, outW io.Writer, args []string) (err error) {
	appConfig, opts, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	logW, closeLog, err := logWriter(outW, appConfig, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	// The app panics on critical config errors, so we recover here to provide
	// a clean exit message to the user.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	sheetApp := app.NewApp(logW, appConfig, hcl_adapter.NewLoader())
	return sheetApp.Run(ctx)
}

// logWriter picks the log destination. The terminal interface owns the
// screen, so interactive runs only log when a file is given.
func logWriter(outW io.Writer, cfg *app.Config, opts *cli.Options) (io.Writer, func(), error) {
	if opts.LogFile != "" {
		f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, func() { f.Close() }, nil
	}
	if cfg.Headless {
		return outW, func() {}, nil
	}
	return io.Discard, func() {}, nil
}
