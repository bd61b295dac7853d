// Package editsession implements the inline editor state machine of a grid.
//
// A session is either Idle or Editing a single cell with a text buffer and a
// validity flag. Validation runs after every buffer change and only flips the
// flag; it never rejects input and never blocks a commit. Columns with a
// custom editor bypass the buffer: Open hands the cell to the editor together
// with a setter and the session stays Idle.
package editsession
