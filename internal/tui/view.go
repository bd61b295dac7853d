package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/sheetgrid/internal/editsession"
	"github.com/specialistvlad/sheetgrid/internal/persist"
	"github.com/specialistvlad/sheetgrid/internal/selection"
)

var (
	headerStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
	headerActiveStyle = headerStyle.Background(lipgloss.Color("62"))
	handleStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	handleActiveStyle = handleStyle.Foreground(lipgloss.Color("62")).Bold(true)
	cellStyle         = lipgloss.NewStyle()
	invalidStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	rangeStyle        = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	selectedStyle     = lipgloss.NewStyle().Reverse(true)
	editingStyle      = lipgloss.NewStyle().Underline(true).Foreground(lipgloss.Color("229"))
	warnStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statsStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

const cursor = "▏"

func (m *Model) View() string {
	var b strings.Builder
	hl := m.grid.Highlight()
	ed := m.grid.Editor()
	w := m.layout.cellWidth

	b.WriteString(strings.Repeat(" ", handleWidth))
	for col, c := range m.grid.Columns() {
		style := headerStyle
		if hl.Columns[col] {
			style = headerActiveStyle
		}
		b.WriteString(fit(style, w).Render(c.Label))
		b.WriteByte(' ')
	}
	b.WriteByte('\n')

	sel, selected := m.grid.Selection()
	rng, ranged := m.grid.Range()
	last := min(m.layout.top+m.layout.visibleRows(), m.grid.Len())
	for row := m.layout.top; row < last; row++ {
		style := handleStyle
		if hl.Rows[row] {
			style = handleActiveStyle
		}
		b.WriteString(fit(style, handleWidth).Render(fmt.Sprintf("%3d%s", row+1, m.marker(row))))
		for col := range m.grid.NumColumns() {
			cell := selection.Cell{Row: row, Col: col}
			text := m.grid.Text(row, col)
			style := cellStyle
			if m.grid.CellInvalid(row, col) {
				style = invalidStyle
			}
			if ranged && rng.Contains(cell) {
				style = style.Inherit(rangeStyle)
			}
			if selected && sel == cell {
				style = style.Inherit(selectedStyle)
			}
			if ed.State == editsession.Editing && ed.Cell == cell {
				text = ed.Buffer + cursor
				style = editingStyle
				if !ed.Valid {
					style = style.Foreground(invalidStyle.GetForeground())
				}
			}
			b.WriteString(fit(style, w).Render(text))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	for range m.layout.visibleRows() - (last - m.layout.top) {
		b.WriteByte('\n')
	}

	b.WriteString(m.statusLine(ed))
	b.WriteByte('\n')
	b.WriteString(m.help.View(helpKeys{grid: m.grid.Keys(), app: m.keys}))
	return b.String()
}

// marker flags rows that are saving or failed to save.
func (m *Model) marker(row int) string {
	state, err := m.grid.RowState(row)
	switch {
	case err != nil:
		return "?"
	case state == persist.Saving:
		return "~"
	case state == persist.Errored:
		return "!"
	}
	return " "
}

func (m *Model) statusLine(ed editsession.Snapshot) string {
	st := m.grid.Stats()
	stats := statsStyle.Render(fmt.Sprintf("rows %d  saving %d  errors %d", st.Rows, st.Saving, st.Errored))
	msg := m.status
	if ed.State == editsession.Editing && !ed.Valid && ed.Hint != "" {
		msg = ed.Hint
	}
	if msg == "" {
		return stats
	}
	return warnStyle.Render(msg) + "  " + stats
}

func fit(s lipgloss.Style, w int) lipgloss.Style {
	return s.Width(w).MaxWidth(w).Inline(true)
}
