// Package tui provides the Bubble Tea quiz interfaces.
package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	titleStyle     = accentStyle.Copy().Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Italic(true)
	errorStyle     = incorrectStyle.Copy().Bold(true)
	cardStyle      = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	celebrateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
)

func pickerTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#C89A3A")).
		Bold(true)
	return styles
}

// layout centers content the way every screen is framed: 70% width, footer
// pinned to the last line when there is room.
func layout(width, height int, content, footer string) string {
	if width == 0 || height == 0 {
		if footer == "" {
			return content
		}
		return content + "\n\n" + footer
	}
	contentWidth := contentWidthFor(width)
	body := lipgloss.NewStyle().Width(contentWidth).Render(content)
	if footer == "" || height < 3 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := height - 1
	placed := lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(width, 1, lipgloss.Center, lipgloss.Center, footerStyle.Render(footer))
	return placed + "\n" + footerLine
}

func contentWidthFor(width int) int {
	w := int(float64(width) * 0.70)
	if w < 1 {
		w = 1
	}
	return w
}
