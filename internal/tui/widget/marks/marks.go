package marks

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/roster"
	"github.com/ygelfand/studentctl/internal/ui"
)

type comparisonItem struct {
	cmp api.Comparison
}

func (i comparisonItem) Title() string       { return i.cmp.Label() }
func (i comparisonItem) Description() string { return i.cmp.Symbol() }
func (i comparisonItem) FilterValue() string { return string(i.cmp) }

type comparisonDelegate struct {
	theme *tint.Tint
}

func (d comparisonDelegate) Height() int                               { return 1 }
func (d comparisonDelegate) Spacing() int                              { return 0 }
func (d comparisonDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d comparisonDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(comparisonItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%-3s %s", i.cmp.Symbol(), i.cmp.Label())
	if index == m.Index() {
		fmt.Fprint(w, lipgloss.NewStyle().Foreground(ui.Accent(*d.theme)).Render("> "+line))
		return
	}
	fmt.Fprint(w, lipgloss.NewStyle().Foreground((*d.theme).Fg()).Render("  "+line))
}

// MarksOverlayModel asks for a total marks value and a comparison operator
type MarksOverlayModel struct {
	input textinput.Model
	list  list.Model
	theme tint.Tint
	err   error
}

func NewMarksOverlayModel(theme tint.Tint) *MarksOverlayModel {
	ti := textinput.New()
	ti.Placeholder = "Total marks"
	ti.Prompt = "marks: "
	ti.CharLimit = 6
	ti.Focus()

	items := make([]list.Item, 0, len(api.Comparisons))
	for _, c := range api.Comparisons {
		items = append(items, comparisonItem{cmp: c})
	}

	m := &MarksOverlayModel{
		input: ti,
		theme: theme,
	}
	l := list.New(items, comparisonDelegate{theme: &m.theme}, 30, len(items))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	m.list = l
	return m
}

func (m *MarksOverlayModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *MarksOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return nil, nil
		case "enter":
			return m.submit()
		case "up", "down":
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *MarksOverlayModel) submit() (tea.Model, tea.Cmd) {
	marks := m.input.Value()
	if _, err := roster.ParseMarks(marks); err != nil {
		m.err = err
		return m, nil
	}
	item, ok := m.list.SelectedItem().(comparisonItem)
	if !ok {
		m.err = roster.ErrInvalidComparison
		return m, nil
	}
	return nil, func() tea.Msg {
		return ui.MarksFilterMsg{Marks: marks, Comparison: item.cmp}
	}
}

// Selected returns the highlighted comparison
func (m *MarksOverlayModel) Selected() api.Comparison {
	if item, ok := m.list.SelectedItem().(comparisonItem); ok {
		return item.cmp
	}
	return ""
}

func (m *MarksOverlayModel) Err() error {
	return m.err
}

func (m *MarksOverlayModel) View() string {
	accent := ui.Accent(m.theme)
	rows := []string{
		ui.TitleStyle(m.theme).Render("FILTER BY TOTAL MARKS"),
		m.input.View(),
		"",
		m.list.View(),
	}
	if m.err != nil {
		rows = append(rows, "", ui.ErrorStyle(m.theme).Render(m.err.Error()))
	}
	rows = append(rows, "", ui.MutedStyle(m.theme).Render(" [up/down] operator | [enter] apply | [esc] cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(accent).
		Background(m.theme.Bg()).
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
