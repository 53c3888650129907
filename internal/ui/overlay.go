package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Overlay composites the 'overlay' string on top of the 'base' string,
// centered both horizontally and vertically.
// Rows covered by the overlay are replaced entirely so ANSI sequences of
// the base are never split.
func Overlay(base, overlay string, width, height int) string {
	if base == "" {
		return overlay
	}

	overlayHeight := lipgloss.Height(overlay)
	startY := (height - overlayHeight) / 2

	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlay, "\n")

	for len(baseLines) < height {
		baseLines = append(baseLines, strings.Repeat(" ", width))
	}

	result := make([]string, len(baseLines))
	copy(result, baseLines)

	for y, oLine := range overlayLines {
		baseY := startY + y
		if baseY < 0 || baseY >= len(baseLines) {
			continue
		}
		result[baseY] = lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render(oLine)
	}

	return strings.Join(result, "\n")
}

// Ellipsis truncates a string to a max width and adds ... if needed.
func Ellipsis(s string, maxWidth int) string {
	w := runewidth.StringWidth(s)
	if w <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", max(maxWidth, 0))
	}
	return runewidth.Truncate(s, maxWidth, "...")
}
