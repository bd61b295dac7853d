// Package config defines the format-agnostic sheet definition model and the
// Loader interface that format-specific packages implement.
//
// A sheet definition names the columns of a grid, its initial rows and the
// store rows are persisted to. Build turns a Model into the column and row
// values the grid package consumes; it is where validation kinds and editor
// names are resolved, so every configuration error surfaces before a grid is
// constructed.
package config
