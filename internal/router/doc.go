// Package router maps keyboard and pointer events to grid operations.
//
// Dispatch depends on focus. While the inline editor has focus, printable
// keys edit its buffer, Enter commits and moves down, Tab commits and moves
// sideways, Escape cancels. Otherwise keys navigate the selection, clear
// cells, or start an edit. Key names are matched with bubbles key bindings so
// a KeyMap can be rebound or rendered as help.
package router
