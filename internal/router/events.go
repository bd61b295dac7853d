package router

import "strings"

// KeyEvent is one key press. Code names a special key ("up", "tab", "f2",
// "c" with Ctrl); it is empty for plain character input carried in Runes.
type KeyEvent struct {
	Code  string
	Runes []rune
	Shift bool
	Ctrl  bool
	Alt   bool
}

// String renders the event the way key bindings name keys, e.g. "shift+tab"
// or "ctrl+c".
func (e KeyEvent) String() string {
	var b strings.Builder
	if e.Ctrl {
		b.WriteString("ctrl+")
	}
	if e.Alt {
		b.WriteString("alt+")
	}
	if e.Code == "" {
		b.WriteString(string(e.Runes))
		return b.String()
	}
	if e.Shift {
		b.WriteString("shift+")
	}
	b.WriteString(e.Code)
	return b.String()
}

func (e KeyEvent) printable() bool {
	return e.Code == "" && len(e.Runes) > 0 && !e.Ctrl && !e.Alt
}

func (e KeyEvent) modifierOnly() bool {
	switch e.Code {
	case "shift", "ctrl", "alt", "meta":
		return true
	}
	return false
}

// PointerAction is what the pointer did.
type PointerAction int

const (
	Press PointerAction = iota
	Release
	Move
	DoubleClick
)

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
)

// Target is the grid element under the pointer.
type Target int

const (
	TargetOutside Target = iota
	TargetCell
	TargetColumnHeader
	TargetRowHandle
)

// PointerEvent is one pointer action. Row is meaningful for cells and row
// handles, Col for cells and column headers.
type PointerEvent struct {
	Action PointerAction
	Button Button
	Target Target
	Row    int
	Col    int
	Shift  bool
}
