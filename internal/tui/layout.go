package tui

import "github.com/specialistvlad/sheetgrid/internal/router"

const (
	defaultCellWidth = 16
	handleWidth      = 5
	headerHeight     = 1
	// footerHeight covers the status line and the help line.
	footerHeight = 2
)

// layout is the fixed geometry of the rendered grid. Every column is
// cellWidth wide and followed by a one character separator.
type layout struct {
	cellWidth int
	columns   int
	rows      int
	top       int
	height    int
}

type hit struct {
	target router.Target
	row    int
	col    int
}

// visibleRows is how many data rows fit on screen.
func (l layout) visibleRows() int {
	return max(l.height-headerHeight-footerHeight, 1)
}

// hitTest maps a terminal coordinate to the grid element drawn there.
func (l layout) hitTest(x, y int) hit {
	if x < 0 || y < 0 {
		return hit{target: router.TargetOutside}
	}
	col := -1
	if x >= handleWidth {
		col = (x - handleWidth) / (l.cellWidth + 1)
		if col >= l.columns {
			return hit{target: router.TargetOutside}
		}
	}
	if y < headerHeight {
		if col < 0 {
			return hit{target: router.TargetOutside}
		}
		return hit{target: router.TargetColumnHeader, col: col}
	}
	offset := y - headerHeight
	if offset >= l.visibleRows() {
		return hit{target: router.TargetOutside}
	}
	row := l.top + offset
	if row >= l.rows {
		return hit{target: router.TargetOutside}
	}
	if col < 0 {
		return hit{target: router.TargetRowHandle, row: row}
	}
	return hit{target: router.TargetCell, row: row, col: col}
}

// scrollTo returns the top row that keeps row on screen.
func (l layout) scrollTo(row int) int {
	top := l.top
	n := l.visibleRows()
	if row < top {
		top = row
	} else if row >= top+n {
		top = row - n + 1
	}
	return max(min(top, l.rows-n), 0)
}
