// Package clipboard bridges single-cell cut, copy and paste between a grid
// and a transfer buffer.
//
// A Buffer has two sides: a staging copy the bridge fills before the platform
// captures it, and the clipboard the platform exposes for reading. Copy and
// cut stage the selected cell and reset the staging copy one tick later; paste
// waits one tick before reading so the platform can fill the buffer.
package clipboard
