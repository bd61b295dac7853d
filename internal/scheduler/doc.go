// Package scheduler provides the single-threaded task loop that owns all grid
// state. Work posted from any goroutine runs on the loop, one task at a time,
// in the order it was posted.
package scheduler
