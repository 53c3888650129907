package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
)

// NewTable creates a new bubbles/table with standard initial settings
func NewTable(columns []table.Column, theme tint.Tint) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
	)
	t.SetStyles(TableStyles(theme))
	return t
}

// TableStyles returns the header, cell and selection styles for a theme
func TableStyles(theme tint.Tint) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.BrightBlack()).
		BorderBottom(true).
		Foreground(Accent(theme)).
		Bold(true)
	s.Cell = s.Cell.
		Foreground(theme.Fg())
	s.Selected = s.Selected.
		Foreground(theme.BrightWhite()).
		Background(theme.SelectionBg()).
		Bold(false)
	return s
}

// GetTableHeight returns the appropriate table height based on available screen space
func GetTableHeight(totalHeight int) int {
	return max(totalHeight-5, 1)
}

// ColumnWidths splits the available width across n columns, giving the
// remainder to the widest weight
func ColumnWidths(total int, weights []int) []int {
	widths := make([]int, len(weights))
	if len(weights) == 0 {
		return widths
	}
	sum, widest := 0, 0
	for i, w := range weights {
		sum += w
		if w > weights[widest] {
			widest = i
		}
	}
	// each column carries one cell of padding on both sides
	usable := max(total-2*len(weights), len(weights))
	used := 0
	for i, w := range weights {
		widths[i] = max(usable*w/max(sum, 1), 1)
		used += widths[i]
	}
	widths[widest] += max(usable-used, 0)
	return widths
}
