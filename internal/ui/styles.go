package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/config"
)

var AccentBlue = lipgloss.Color("#1976d2")

type DarkTint struct{}

func (t *DarkTint) DisplayName() string { return "Studentctl Dark" }
func (t *DarkTint) ID() string          { return "studentctl-dark" }
func (t *DarkTint) About() string       { return "Studentctl dark theme" }

func (t *DarkTint) Fg() lipgloss.TerminalColor          { return lipgloss.Color("#e0e0e0") }
func (t *DarkTint) Bg() lipgloss.TerminalColor          { return lipgloss.Color("#121212") }
func (t *DarkTint) SelectionBg() lipgloss.TerminalColor { return lipgloss.Color("#2c2c2c") }
func (t *DarkTint) Cursor() lipgloss.TerminalColor      { return lipgloss.Color("#90caf9") }

func (t *DarkTint) BrightBlack() lipgloss.TerminalColor  { return lipgloss.Color("#5f5f5f") }
func (t *DarkTint) BrightBlue() lipgloss.TerminalColor   { return lipgloss.Color("#90caf9") }
func (t *DarkTint) BrightCyan() lipgloss.TerminalColor   { return lipgloss.Color("#80deea") }
func (t *DarkTint) BrightGreen() lipgloss.TerminalColor  { return lipgloss.Color("#a5d6a7") }
func (t *DarkTint) BrightPurple() lipgloss.TerminalColor { return lipgloss.Color("#ce93d8") }
func (t *DarkTint) BrightRed() lipgloss.TerminalColor    { return lipgloss.Color("#ef9a9a") }
func (t *DarkTint) BrightWhite() lipgloss.TerminalColor  { return lipgloss.Color("#ffffff") }
func (t *DarkTint) BrightYellow() lipgloss.TerminalColor { return lipgloss.Color("#fff59d") }

func (t *DarkTint) Black() lipgloss.TerminalColor  { return lipgloss.Color("#000000") }
func (t *DarkTint) Blue() lipgloss.TerminalColor   { return lipgloss.Color("#42a5f5") }
func (t *DarkTint) Cyan() lipgloss.TerminalColor   { return lipgloss.Color("#26c6da") }
func (t *DarkTint) Green() lipgloss.TerminalColor  { return lipgloss.Color("#66bb6a") }
func (t *DarkTint) Purple() lipgloss.TerminalColor { return lipgloss.Color("#ab47bc") }
func (t *DarkTint) Red() lipgloss.TerminalColor    { return lipgloss.Color("#ef5350") }
func (t *DarkTint) White() lipgloss.TerminalColor  { return lipgloss.Color("#e0e0e0") }
func (t *DarkTint) Yellow() lipgloss.TerminalColor { return lipgloss.Color("#ffee58") }

type LightTint struct{}

func (t *LightTint) DisplayName() string { return "Studentctl Light" }
func (t *LightTint) ID() string          { return "studentctl-light" }
func (t *LightTint) About() string       { return "Studentctl light theme" }

func (t *LightTint) Fg() lipgloss.TerminalColor          { return lipgloss.Color("#212121") }
func (t *LightTint) Bg() lipgloss.TerminalColor          { return lipgloss.Color("#fafafa") }
func (t *LightTint) SelectionBg() lipgloss.TerminalColor { return lipgloss.Color("#e3f2fd") }
func (t *LightTint) Cursor() lipgloss.TerminalColor      { return AccentBlue }

func (t *LightTint) BrightBlack() lipgloss.TerminalColor  { return lipgloss.Color("#9e9e9e") }
func (t *LightTint) BrightBlue() lipgloss.TerminalColor   { return lipgloss.Color("#1e88e5") }
func (t *LightTint) BrightCyan() lipgloss.TerminalColor   { return lipgloss.Color("#00838f") }
func (t *LightTint) BrightGreen() lipgloss.TerminalColor  { return lipgloss.Color("#2e7d32") }
func (t *LightTint) BrightPurple() lipgloss.TerminalColor { return lipgloss.Color("#6a1b9a") }
func (t *LightTint) BrightRed() lipgloss.TerminalColor    { return lipgloss.Color("#c62828") }
func (t *LightTint) BrightWhite() lipgloss.TerminalColor  { return lipgloss.Color("#000000") }
func (t *LightTint) BrightYellow() lipgloss.TerminalColor { return lipgloss.Color("#f9a825") }

func (t *LightTint) Black() lipgloss.TerminalColor  { return lipgloss.Color("#000000") }
func (t *LightTint) Blue() lipgloss.TerminalColor   { return lipgloss.Color("#1565c0") }
func (t *LightTint) Cyan() lipgloss.TerminalColor   { return lipgloss.Color("#00838f") }
func (t *LightTint) Green() lipgloss.TerminalColor  { return lipgloss.Color("#2e7d32") }
func (t *LightTint) Purple() lipgloss.TerminalColor { return lipgloss.Color("#6a1b9a") }
func (t *LightTint) Red() lipgloss.TerminalColor    { return lipgloss.Color("#c62828") }
func (t *LightTint) White() lipgloss.TerminalColor  { return lipgloss.Color("#424242") }
func (t *LightTint) Yellow() lipgloss.TerminalColor { return lipgloss.Color("#f57f17") }

var (
	DarkTheme  = &DarkTint{}
	LightTheme = &LightTint{}
)

// ResolveMode turns auto into light or dark from the terminal background
func ResolveMode(mode config.ThemeMode) config.ThemeMode {
	switch mode {
	case config.ThemeModeLight, config.ThemeModeDark:
		return mode
	}
	if lipgloss.HasDarkBackground() {
		return config.ThemeModeDark
	}
	return config.ThemeModeLight
}

// ThemeFor returns the palette of a theme mode
func ThemeFor(mode config.ThemeMode) tint.Tint {
	if ResolveMode(mode) == config.ThemeModeLight {
		return LightTheme
	}
	return DarkTheme
}

// ToggleMode flips between light and dark
func ToggleMode(mode config.ThemeMode) config.ThemeMode {
	if ResolveMode(mode) == config.ThemeModeDark {
		return config.ThemeModeLight
	}
	return config.ThemeModeDark
}

// Accent returns the primary accent color for the theme
func Accent(t tint.Tint) lipgloss.TerminalColor {
	return t.BrightBlue()
}

func AccentStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(Accent(t))
}

func TitleStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(Accent(t)).
		MarginBottom(1)
}

func LabelStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightWhite()).
		Width(20)
}

func ValueStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.White())
}

func MutedStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightBlack())
}

func ErrorStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightRed()).
		Bold(true)
}

func SuccessStyle(t tint.Tint) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.BrightGreen()).
		Bold(true)
}

// RenderError prints a styled error message
func RenderError(theme tint.Tint, err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", ErrorStyle(theme).Render("Error:"), err)
}

// RenderSuccess prints a styled success message
func RenderSuccess(theme tint.Tint, msg string) {
	fmt.Println(SuccessStyle(theme).Render(msg))
}

// RenderSummary renders a list of key-value pairs
func RenderSummary(w io.Writer, theme tint.Tint, title string, items []struct{ Label, Value string }) {
	if title != "" {
		fmt.Fprintln(w, TitleStyle(theme).Render(title))
	}
	for _, item := range items {
		fmt.Fprintf(w, "%s %s\n", LabelStyle(theme).Render(item.Label+":"), ValueStyle(theme).Render(item.Value))
	}
	fmt.Fprintln(w)
}
