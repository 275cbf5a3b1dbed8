package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column is one table column. Right-aligned columns hold numbers.
type column struct {
	title string
	right bool
}

// table lays out rows in columns measured in terminal cells, so kanji and
// kana count as two cells each.
type table struct {
	cols []column
	rows [][]string
}

func newTable(cols ...column) *table {
	return &table{cols: cols}
}

// add appends a row. Missing cells render blank and extra cells are dropped.
func (t *table) add(cells ...string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.cols))
	for i, c := range t.cols {
		widths[i] = runewidth.StringWidth(c.title)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

// lines renders the header followed by every row.
func (t *table) lines() []string {
	if len(t.cols) == 0 {
		return nil
	}
	widths := t.widths()
	header := make([]string, len(t.cols))
	for i, c := range t.cols {
		header[i] = c.title
	}
	out := make([]string, 0, len(t.rows)+1)
	out = append(out, t.line(header, widths))
	for _, row := range t.rows {
		out = append(out, t.line(row, widths))
	}
	return out
}

func (t *table) line(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		if t.cols[i].right {
			padded[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			padded[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(padded, " ")
}
