package report

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column describes one table column.
type Column struct {
	Title string
	Right bool
}

// FormatTable lays rows out under cols, one space between columns, sized to
// the widest cell by display width. Missing cells are blank and trailing
// spaces are trimmed.
func FormatTable(cols []Column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.Title)
	}
	for _, row := range rows {
		for i := range min(len(row), len(cols)) {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	titles := make([]string, len(cols))
	for i, c := range cols {
		titles[i] = c.Title
	}
	lines := []string{layoutRow(cols, widths, titles)}
	for _, row := range rows {
		lines = append(lines, layoutRow(cols, widths, row))
	}
	return lines
}

func layoutRow(cols []Column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		if c.Right {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
