package config

import "context"

// Loader is the interface for a format-specific sheet definition loader.
type Loader interface {
	// Load reads definitions from the given files or directories, merges
	// them and returns the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
