package settings

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/ui"
)

type SettingsFinishedMsg struct {
	Config *config.Config
}

type settingItem struct {
	id          string
	title       string
	description string
	current     string
}

func (i settingItem) Title() string       { return i.title }
func (i settingItem) Description() string { return i.description + " (Current: " + i.current + ")" }
func (i settingItem) FilterValue() string { return i.title }

type selectionItem struct {
	id    string
	value string
}

func (i selectionItem) Title() string       { return i.value }
func (i selectionItem) Description() string { return "" }
func (i selectionItem) FilterValue() string { return i.value }

var rowsPerPageChoices = []int{5, 10, 20, 50}

type SettingsOverlayModel struct {
	cfg           *config.Config
	save          func(*config.Config) error
	list          list.Model
	selectionList list.Model
	width, height int
	theme         tint.Tint
	isSelecting   bool
	activeSetting string
}

func NewSettingsOverlayModel(cfg *config.Config, theme tint.Tint) *SettingsOverlayModel {
	l := list.New(nil, list.NewDefaultDelegate(), 68, 20)
	l.Title = "Settings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("q")

	s := list.New(nil, list.NewDefaultDelegate(), 68, 20)
	s.SetShowStatusBar(false)
	s.SetFilteringEnabled(false)

	m := &SettingsOverlayModel{
		cfg:           cfg,
		save:          (*config.Config).Save,
		list:          l,
		selectionList: s,
		theme:         theme,
	}
	m.updateItems()
	return m
}

// WithSaver replaces how changed settings are persisted
func (m *SettingsOverlayModel) WithSaver(save func(*config.Config) error) *SettingsOverlayModel {
	m.save = save
	return m
}

func (m *SettingsOverlayModel) updateItems() {
	items := []list.Item{
		settingItem{id: "theme", title: "Theme", description: "Light or dark colors", current: string(m.cfg.Theme)},
		settingItem{id: "icon_type", title: "Icon Mode", description: "Sort indicator icons", current: string(m.cfg.IconType)},
		settingItem{id: "rows_per_page", title: "Rows Per Page", description: "Rows on one display page", current: strconv.Itoa(m.cfg.RowsPerPage)},
		settingItem{id: "default_to_tui", title: "Default to TUI", description: "Start TUI if no command given", current: fmt.Sprintf("%v", m.cfg.DefaultToTui)},
		settingItem{id: "cache", title: "Enable Cache", description: "Cache page loads locally", current: fmt.Sprintf("%v", !m.cfg.NoCache)},
	}
	m.list.SetItems(items)
}

func (m *SettingsOverlayModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := min(m.width-2, 88)
		listH := min(m.height-10, 30)
		m.list.SetSize(listW, listH)
		m.selectionList.SetSize(listW, listH)
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
		return m, nil
	}

	if m.isSelecting {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
			m.isSelecting = false
			return m, nil
		}

		oldIndex := m.selectionList.Index()
		m.selectionList, cmd = m.selectionList.Update(msg)
		newIndex := m.selectionList.Index()

		// Preview the highlighted theme
		if m.activeSetting == "theme" && oldIndex != newIndex {
			if item, ok := m.selectionList.SelectedItem().(selectionItem); ok {
				mode := config.ThemeMode(item.id)
				return m, tea.Batch(cmd, func() tea.Msg {
					return ui.ThemeChangedMsg{Mode: mode, Theme: ui.ThemeFor(mode)}
				})
			}
		}

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.selectionList.SelectedItem().(selectionItem); ok {
				m.applySetting(m.activeSetting, selected.id)
			}
			m.isSelecting = false
			m.updateItems()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "s":
			cfg := m.cfg
			return nil, func() tea.Msg { return SettingsFinishedMsg{Config: cfg} }
		case "enter":
			if item, ok := m.list.SelectedItem().(settingItem); ok {
				if m.handleToggle(item.id) {
					return m, nil
				}
				m.prepareSelection(item.id)
				m.isSelecting = true
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *SettingsOverlayModel) handleToggle(id string) bool {
	switch id {
	case "cache":
		m.cfg.NoCache = !m.cfg.NoCache
	case "default_to_tui":
		m.cfg.DefaultToTui = !m.cfg.DefaultToTui
	default:
		return false
	}
	m.persist()
	m.updateItems()
	return true
}

func (m *SettingsOverlayModel) prepareSelection(id string) {
	m.activeSetting = id
	var items []list.Item
	current := ""

	switch id {
	case "theme":
		m.selectionList.Title = "Choose Theme"
		items = []list.Item{
			selectionItem{id: string(config.ThemeModeAuto), value: "Auto (terminal background)"},
			selectionItem{id: string(config.ThemeModeLight), value: "Light"},
			selectionItem{id: string(config.ThemeModeDark), value: "Dark"},
		}
		current = string(m.cfg.Theme)
	case "icon_type":
		m.selectionList.Title = "Choose Icon Mode"
		items = []list.Item{
			selectionItem{id: string(config.IconTypeASCII), value: "ASCII"},
			selectionItem{id: string(config.IconTypeEmoji), value: "Emoji"},
		}
		current = string(m.cfg.IconType)
	case "rows_per_page":
		m.selectionList.Title = "Choose Rows Per Page"
		for _, n := range rowsPerPageChoices {
			items = append(items, selectionItem{id: strconv.Itoa(n), value: strconv.Itoa(n)})
		}
		current = strconv.Itoa(m.cfg.RowsPerPage)
	}

	m.selectionList.SetItems(items)
	for i, it := range items {
		if it.(selectionItem).id == current {
			m.selectionList.Select(i)
			break
		}
	}
}

func (m *SettingsOverlayModel) applySetting(setting, value string) {
	switch setting {
	case "theme":
		m.cfg.Theme = config.ThemeMode(value)
	case "icon_type":
		m.cfg.IconType = config.IconType(value)
	case "rows_per_page":
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			m.cfg.RowsPerPage = n
		}
	}
	m.persist()
}

func (m *SettingsOverlayModel) persist() {
	if m.save == nil {
		return
	}
	// A failed save still applies the setting to this session
	if err := m.save(m.cfg); err != nil {
		slog.Warn("Settings: failed to save config", "error", err)
	}
}

func (m *SettingsOverlayModel) View() string {
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(ui.Accent(m.theme)).
		Padding(1, 2).
		Background(m.theme.Bg())

	content := m.list.View()
	if m.isSelecting {
		content = m.selectionList.View()
	}

	return overlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		content,
		"\n [enter] change | [esc/q/s] back/close",
	))
}
