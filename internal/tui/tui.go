package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/roster"
	"github.com/ygelfand/studentctl/internal/search"
	"github.com/ygelfand/studentctl/internal/tui/view"
	"github.com/ygelfand/studentctl/internal/tui/widget/filter"
	"github.com/ygelfand/studentctl/internal/tui/widget/help"
	"github.com/ygelfand/studentctl/internal/tui/widget/marks"
	tuisearch "github.com/ygelfand/studentctl/internal/tui/widget/search"
	"github.com/ygelfand/studentctl/internal/tui/widget/settings"
	"github.com/ygelfand/studentctl/internal/ui"
	"go.dalton.dog/bubbleup"
)

const infoAlert = "info"

type Controller struct {
	cfg   *config.Config
	mode  config.ThemeMode
	theme tint.Tint

	students  *view.StudentsView
	index     *search.RosterIndex
	navigator *Navigator
	alert     bubbleup.AlertModel

	width  int
	height int
}

// NewController builds the root model. index may be nil when no local index exists.
func NewController(cfg *config.Config, data *roster.Controller, columns []grid.Column, index *search.RosterIndex) *Controller {
	mode := ui.ResolveMode(cfg.Theme)
	theme := ui.ThemeFor(mode)

	alert := bubbleup.NewAlertModel(40, true, 4*time.Second).
		WithPosition(bubbleup.TopRightPosition)
	alert.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       infoAlert,
		ForeColor: "#1976d2",
		Prefix:    "i ",
	})

	return &Controller{
		cfg:       cfg,
		mode:      mode,
		theme:     theme,
		students:  view.NewStudentsView(data, columns, theme, cfg.IconType, cfg.RowsPerPage),
		index:     index,
		navigator: NewNavigator(theme),
		alert:     alert,
	}
}

func (c *Controller) Init() tea.Cmd {
	return tea.Batch(c.students.Init(), c.alert.Init())
}

func (c *Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Request failures stay in the log; the view keeps its previous records
	if err, ok := msg.(error); ok {
		slog.Error("TUI: request failed", "error", err)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		c.width = msg.Width
		c.height = msg.Height
		c.navigator.Update(msg)
		_, cmd := c.students.Update(c.contentSize())
		return c, cmd

	case ui.ThemeChangedMsg:
		c.applyTheme(msg)
		return c, nil

	case settings.SettingsFinishedMsg:
		c.students.SetIconType(msg.Config.IconType)
		c.students.SetRowsPerPage(msg.Config.RowsPerPage)
		mode := ui.ResolveMode(msg.Config.Theme)
		c.applyTheme(ui.ThemeChangedMsg{Mode: mode, Theme: ui.ThemeFor(mode)})
		return c, c.alert.NewAlertCmd(infoAlert, "Settings saved")
	}

	if navCmd, captured := c.navigator.Update(msg); captured {
		return c, navCmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		slog.Log(context.Background(), config.LevelTrace, "TUI: key press", "key", msg.String())
		if cmd, handled := c.handleKey(msg); handled {
			return c, cmd
		}
	}

	var alertModel tea.Model
	var alertCmd tea.Cmd
	alertModel, alertCmd = c.alert.Update(msg)
	c.alert = alertModel.(bubbleup.AlertModel)
	cmds = append(cmds, alertCmd)

	_, cmd := c.students.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

func (c *Controller) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}
	if c.students.InputFocused() {
		return nil, false
	}

	switch msg.String() {
	case "q":
		return tea.Quit, true
	case "?":
		return c.showHelp(), true
	case "m":
		return c.navigator.Push(marks.NewMarksOverlayModel(c.theme)), true
	case "f":
		return c.navigator.Push(filter.NewFilterOverlayModel(c.students.Columns(), c.students.Criteria(), c.theme)), true
	case "F", "ctrl+f":
		return c.navigator.Push(tuisearch.NewFindOverlayModel(c.index, c.theme)), true
	case "s":
		return c.navigator.Push(settings.NewSettingsOverlayModel(c.cfg, c.theme)), true
	case "t":
		mode := ui.ToggleMode(c.mode)
		c.applyTheme(ui.ThemeChangedMsg{Mode: mode, Theme: ui.ThemeFor(mode)})
		return c.alert.NewAlertCmd(infoAlert, fmt.Sprintf("Theme: %s", ui.ThemeIcon(c.cfg.IconType, mode))), true
	}
	return nil, false
}

func (c *Controller) applyTheme(msg ui.ThemeChangedMsg) {
	if msg.Mode != "" {
		c.mode = ui.ResolveMode(msg.Mode)
	}
	c.theme = msg.Theme
	c.navigator.SetTheme(msg)
	c.students.Update(msg)
}

// contentSize is the space left inside the window border and above the footer
func (c *Controller) contentSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{
		Width:  max(c.width-4, 0),
		Height: max(c.height-3, 0),
	}
}

func (c *Controller) showHelp() tea.Cmd {
	keys := []ui.HelpKey{
		{Key: "m", Desc: "Filter by marks"},
		{Key: "f", Desc: "Filter columns"},
		{Key: "F", Desc: "Find in local index"},
		{Key: "t", Desc: "Toggle light/dark"},
		{Key: "s", Desc: "Settings"},
		{Key: "q", Desc: "Quit"},
		{Key: "?", Desc: "Help"},
	}
	keys = append(keys, c.students.HelpKeys()...)
	return c.navigator.Push(help.NewHelpOverlayModel(keys, c.theme))
}

// Mode returns the resolved light or dark mode
func (c *Controller) Mode() config.ThemeMode {
	return c.mode
}

func (c *Controller) Theme() tint.Tint {
	return c.theme
}

func (c *Controller) Students() *view.StudentsView {
	return c.students
}

func (c *Controller) Navigator() *Navigator {
	return c.navigator
}

func (c *Controller) View() string {
	base := c.renderBaseView()
	base = c.navigator.Render(base)
	return c.alert.Render(base)
}

func (c *Controller) renderBaseView() string {
	if c.width == 0 {
		return "Initializing..."
	}

	size := c.contentSize()
	windowStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(c.theme.BrightBlack()).
		Padding(0, 1).
		Width(size.Width + 2).
		Height(size.Height)

	body := windowStyle.Render(c.students.View())

	footer := lipgloss.NewStyle().
		Width(c.width).
		Background(c.theme.BrightBlack()).
		Foreground(c.theme.BrightWhite()).
		Padding(0, 1).
		Render(fmt.Sprintf(" q: quit | /: search | 1-4: sort | m: marks | f: filter | n/p: page | t: %s | ?: help ",
			ui.ThemeIcon(c.cfg.IconType, c.mode)))

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}
