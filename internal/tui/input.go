package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/specialistvlad/sheetgrid/internal/router"
)

// doubleClickWindow is the longest gap between two presses on one cell that
// still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// keyEvent converts a terminal key message into the router's event type.
func keyEvent(msg tea.KeyMsg) router.KeyEvent {
	switch msg.Type {
	case tea.KeyRunes:
		return router.KeyEvent{Runes: msg.Runes, Alt: msg.Alt}
	case tea.KeySpace:
		return router.KeyEvent{Runes: []rune{' '}, Alt: msg.Alt}
	}
	ev := router.KeyEvent{}
	s := msg.String()
	for {
		switch {
		case strings.HasPrefix(s, "alt+"):
			ev.Alt, s = true, s[len("alt+"):]
		case strings.HasPrefix(s, "ctrl+"):
			ev.Ctrl, s = true, s[len("ctrl+"):]
		case strings.HasPrefix(s, "shift+"):
			ev.Shift, s = true, s[len("shift+"):]
		default:
			ev.Code = s
			return ev
		}
	}
}

func button(b tea.MouseButton) router.Button {
	switch b {
	case tea.MouseButtonLeft:
		return router.ButtonPrimary
	case tea.MouseButtonRight:
		return router.ButtonSecondary
	}
	return router.ButtonNone
}

// clicks turns terminal mouse messages into pointer events, synthesizing a
// double click on the release that completes a second press of one cell.
type clicks struct {
	now       func() time.Time
	lastPress time.Time
	lastRow   int
	lastCol   int
	double    bool
}

func (c *clicks) events(msg tea.MouseMsg, hit hit) []router.PointerEvent {
	ev := router.PointerEvent{
		Button: button(msg.Button),
		Target: hit.target,
		Row:    hit.row,
		Col:    hit.col,
		Shift:  msg.Shift,
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if ev.Button == router.ButtonNone {
			// wheel
			return nil
		}
		ev.Action = router.Press
		if ev.Button == router.ButtonPrimary && hit.target == router.TargetCell {
			t := c.now()
			c.double = !c.lastPress.IsZero() && t.Sub(c.lastPress) <= doubleClickWindow &&
				hit.row == c.lastRow && hit.col == c.lastCol
			c.lastPress, c.lastRow, c.lastCol = t, hit.row, hit.col
			if c.double {
				c.lastPress = time.Time{}
			}
		}
		return []router.PointerEvent{ev}
	case tea.MouseActionRelease:
		ev.Action = router.Release
		if ev.Button == router.ButtonNone {
			// Most terminals do not report which button was released.
			ev.Button = router.ButtonPrimary
		}
		out := []router.PointerEvent{ev}
		if c.double {
			c.double = false
			dbl := ev
			dbl.Action = router.DoubleClick
			out = append(out, dbl)
		}
		return out
	case tea.MouseActionMotion:
		ev.Action = router.Move
		return []router.PointerEvent{ev}
	}
	return nil
}
