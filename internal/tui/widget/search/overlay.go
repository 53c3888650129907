package search

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/search"
	"github.com/ygelfand/studentctl/internal/ui"
)

const maxResults = 20

type studentItem struct {
	record grid.Record
}

func (i studentItem) Title() string { return i.record.Cell("name") }
func (i studentItem) Description() string {
	return fmt.Sprintf("roll no %s | marks %s", i.record.Cell("roll_no"), i.record.Cell("total_marks"))
}
func (i studentItem) FilterValue() string { return i.record.Cell("name") }

// FindOverlayModel fuzzy finds students in the local roster index
type FindOverlayModel struct {
	textInput textinput.Model
	list      list.Model
	width     int
	height    int
	theme     tint.Tint
	index     *search.RosterIndex
}

func NewFindOverlayModel(index *search.RosterIndex, theme tint.Tint) *FindOverlayModel {
	ti := textinput.New()
	ti.Placeholder = "Find by name or roll number..."
	ti.Focus()
	ti.Prompt = " "

	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("esc")

	return &FindOverlayModel{
		textInput: ti,
		list:      l,
		theme:     theme,
		index:     index,
	}
}

func (m *FindOverlayModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FindOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(max(m.width/2, 60), max(m.height/2, 20))
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return nil, nil
		case "enter":
			if item, ok := m.list.SelectedItem().(studentItem); ok {
				return nil, func() tea.Msg {
					return ui.FindStudentMsg{Record: item.record}
				}
			}
		}
	}

	var tiCmd tea.Cmd
	m.textInput, tiCmd = m.textInput.Update(msg)
	cmds = append(cmds, tiCmd)

	if m.textInput.Value() != "" {
		m.runSearch()
	} else {
		m.list.SetItems(nil)
	}

	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)

	return m, tea.Batch(cmds...)
}

func (m *FindOverlayModel) runSearch() {
	if m.index == nil {
		return
	}
	var items []list.Item
	for _, r := range m.index.Find(m.textInput.Value(), maxResults) {
		items = append(items, studentItem{record: r})
	}
	m.list.SetItems(items)
	m.list.ResetSelected()
}

// Items returns the current matches
func (m *FindOverlayModel) Items() []list.Item {
	return m.list.Items()
}

func (m *FindOverlayModel) View() string {
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ui.Accent(m.theme)).
		Padding(1, 2).
		Background(m.theme.Bg())

	body := m.list.View()
	if m.index == nil || m.index.Len() == 0 {
		body = ui.MutedStyle(m.theme).Render("The local index is empty. Run 'studentctl index rebuild' first.")
	}

	return overlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.textInput.View(),
		"",
		body,
	))
}
