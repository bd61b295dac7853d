// Package tui renders a grid in the terminal with Bubble Tea and feeds
// terminal key and mouse input to the grid's router.
//
// The Bubble Tea update goroutine is the grid's loop thread: every
// controller call happens inside Update, and tasks posted by store
// completions are drained there after a wake message arrives.
package tui
