package stats

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
	"github.com/verte-zerg/kanjiquiz/internal/kanken"
)

const (
	terminalWidthBackup = 80
	ellipsis            = "…"
)

// TerminalWidth returns the stdout width, or a fallback when stdout is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

// RenderCategories writes one row per category: radical, reading and member count.
// Rows are clipped to width display cells; width <= 0 disables clipping.
func RenderCategories(w io.Writer, entries []catalog.Entry, width int) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No categories match.")
		return err
	}
	t := newTable(column{title: "部首"}, column{title: "読み"}, column{title: "漢字数", right: true})
	for _, e := range entries {
		t.add(e.Key, e.Label, strconv.Itoa(e.Count))
	}
	return writeLines(w, t.lines(), width)
}

// RenderLevels writes the idiom count per level with both label styles.
func RenderLevels(w io.Writer, counts []catalog.LevelCount) error {
	t := newTable(
		column{title: "Level", right: true},
		column{title: "漢検"},
		column{title: "目安"},
		column{title: "四字熟語", right: true},
	)
	total := 0
	for _, c := range counts {
		t.add(
			strconv.FormatFloat(c.Level, 'f', -1, 64),
			kanken.LevelLabels{}.LabelFor(c.Level),
			kanken.SchoolLabels{}.LabelFor(c.Level),
			strconv.Itoa(c.Count),
		)
		total += c.Count
	}
	if err := writeLines(w, t.lines(), 0); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total: %d\n", total)
	return err
}

func writeLines(w io.Writer, lines []string, width int) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, clip(line, width)); err != nil {
			return err
		}
	}
	return nil
}

func clip(line string, width int) string {
	if width <= 0 || runewidth.StringWidth(line) <= width {
		return line
	}
	return runewidth.Truncate(line, width, ellipsis)
}
