package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/sheetgrid/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options are process-level settings that never reach the App.
type Options struct {
	// LogFile receives log output; empty means the default for the mode.
	LogFile string
}

// Parse processes command-line arguments. It returns a populated Config,
// process options, a boolean indicating if the program should exit cleanly,
// or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, *Options, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("sheetgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
SheetGrid - An interactive, spreadsheet-style editor for record collections.

Usage:
  sheetgrid [options] [SHEET_PATH]

Arguments:
  SHEET_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	sheetFlag := flagSet.String("sheet", "", "Path to the sheet file or directory.")
	sFlag := flagSet.String("s", "", "Path to the sheet file or directory (shorthand).")
	dumpFlag := flagSet.String("dump", "", "Write the rows as HCL to this file on exit.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFileFlag := flagSet.String("log-file", "", "Write logs to this file. Without it, logs are discarded in interactive mode.")
	headlessFlag := flagSet.Bool("headless", false, "Run the grid without the terminal interface until interrupted.")
	cellWidthFlag := flagSet.Int("cell-width", 16, "Rendered width of every column.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, nil, true, nil
		}
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *sheetFlag != "" {
		path = *sheetFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Sheet path determined.", "path", path)

	if path == "" {
		slog.Debug("No sheet path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		SheetPath:       path,
		DumpPath:        *dumpFlag,
		HealthcheckPort: *healthPortFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		Headless:        *headlessFlag,
		CellWidth:       *cellWidthFlag,
	})
	if err != nil {
		return nil, nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, &Options{LogFile: *logFileFlag}, false, nil
}
