package filter

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/ui"
)

// FilterOverlayModel edits one substring filter per column
type FilterOverlayModel struct {
	columns []grid.Column
	inputs  []textinput.Model
	focus   int
	theme   tint.Tint
}

func NewFilterOverlayModel(columns []grid.Column, current grid.FilterCriteria, theme tint.Tint) *FilterOverlayModel {
	m := &FilterOverlayModel{
		columns: columns,
		inputs:  make([]textinput.Model, len(columns)),
		theme:   theme,
	}
	for i, c := range columns {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "any"
		ti.CharLimit = 64
		ti.Width = 24
		ti.SetValue(current[c.Source])
		m.inputs[i] = ti
	}
	m.setFocus(0)
	return m
}

func (m *FilterOverlayModel) setFocus(i int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

func (m *FilterOverlayModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FilterOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return nil, nil
		case "tab", "down":
			return m, m.setFocus(m.focus + 1)
		case "shift+tab", "up":
			return m, m.setFocus(m.focus - 1)
		case "ctrl+r":
			for i := range m.inputs {
				m.inputs[i].SetValue("")
			}
			return m, nil
		case "enter":
			criteria := m.Criteria()
			return nil, func() tea.Msg {
				return ui.FieldFilterMsg{Criteria: criteria}
			}
		}
	}

	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// Criteria returns the non-empty field filters keyed by column source
func (m *FilterOverlayModel) Criteria() grid.FilterCriteria {
	criteria := grid.FilterCriteria{}
	for i, c := range m.columns {
		if v := m.inputs[i].Value(); v != "" {
			criteria[c.Source] = v
		}
	}
	return criteria
}

func (m *FilterOverlayModel) View() string {
	label := ui.LabelStyle(m.theme).Width(14)
	active := label.Foreground(ui.Accent(m.theme)).Bold(true)

	rows := []string{ui.TitleStyle(m.theme).Render("FILTER COLUMNS")}
	for i, c := range m.columns {
		l := label
		if i == m.focus {
			l = active
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, l.Render(c.Title), m.inputs[i].View()))
	}
	rows = append(rows, "", ui.MutedStyle(m.theme).Render(" [tab] next | [enter] apply | [ctrl+r] clear | [esc] cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(ui.Accent(m.theme)).
		Background(m.theme.Bg()).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
