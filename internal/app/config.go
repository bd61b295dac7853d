package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SheetPath string // hcl files
	// DumpPath, when set, receives the rows as HCL when the app stops.
	DumpPath string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	// Headless runs the grid loop without the terminal front end.
	Headless  bool
	CellWidth int
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.SheetPath == "" {
		return nil, errors.New("SheetPath is a required configuration field and cannot be empty")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, errors.New("HealthcheckPort must be between 0 and 65535")
	}
	if cfg.CellWidth < 0 {
		return nil, errors.New("CellWidth cannot be negative")
	}
	return &cfg, nil
}
