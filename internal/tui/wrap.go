package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanjiquiz/internal/catalog"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

var spaceRune = styledRune{s: " ", width: 1, isSpace: true}

// buildMemberRunes lays members out as space separated cells. Found members use
// correctStyle, the rest pendingStyle; a nil found map styles everything as found.
func buildMemberRunes(members []catalog.Member, found map[string]bool) []styledRune {
	out := make([]styledRune, 0, len(members)*2)
	for i, m := range members {
		if i > 0 {
			out = append(out, spaceRune)
		}
		style := correctStyle
		if found != nil && !found[m.Key] {
			style = pendingStyle
		}
		out = append(out, styledRune{
			s:     style.Render(m.Key),
			width: runewidth.StringWidth(m.Key),
		})
	}
	return out
}

func styledText(text string, style lipgloss.Style) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		if r == ' ' {
			out = append(out, spaceRune)
			continue
		}
		out = append(out, styledRune{s: style.Render(string(r)), width: runewidth.RuneWidth(r)})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
