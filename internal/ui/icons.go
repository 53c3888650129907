package ui

import (
	"strings"

	"github.com/kyokomi/emoji/v2"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/grid"
)

// SortIcon returns the header indicator for a sort direction
func SortIcon(iconType config.IconType, dir grid.Direction) string {
	switch iconType {
	case config.IconTypeEmoji:
		code := ":arrow_up_small:"
		if dir == grid.Descending {
			code = ":arrow_down_small:"
		}
		return strings.TrimSpace(emoji.Sprint(code))
	default:
		if dir == grid.Descending {
			return "▼"
		}
		return "▲"
	}
}

// ThemeIcon returns the indicator for the active theme mode
func ThemeIcon(iconType config.IconType, mode config.ThemeMode) string {
	switch iconType {
	case config.IconTypeEmoji:
		code := ":sunny:"
		if mode == config.ThemeModeDark {
			code = ":crescent_moon:"
		}
		return strings.TrimSpace(emoji.Sprint(code))
	default:
		if mode == config.ThemeModeDark {
			return "dark"
		}
		return "light"
	}
}

// HeaderTitle renders a column title with the sort indicator when active
func HeaderTitle(col grid.Column, sort grid.SortState, iconType config.IconType) string {
	if sort.Field != col.Source {
		return col.Title
	}
	dir := sort.Direction
	if dir == "" {
		dir = grid.Ascending
	}
	return col.Title + " " + SortIcon(iconType, dir)
}
