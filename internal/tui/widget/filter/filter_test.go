package filter

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/ui"
)

var columns = []grid.Column{
	{ID: 1, Title: "ID", Source: "id"},
	{ID: 2, Title: "Name", Source: "name"},
	{ID: 3, Title: "Roll No", Source: "roll_no"},
}

func typeText(m *FilterOverlayModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFilterOverlay_PrefillsAndEdits(t *testing.T) {
	m := NewFilterOverlayModel(columns, grid.FilterCriteria{"roll_no": "R1"}, ui.DarkTheme)
	assert.Equal(t, grid.FilterCriteria{"roll_no": "R1"}, m.Criteria())

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	typeText(m, "al")

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, model)
	require.NotNil(t, cmd)
	assert.Equal(t, ui.FieldFilterMsg{Criteria: grid.FilterCriteria{"name": "al", "roll_no": "R1"}}, cmd())
}

func TestFilterOverlay_FocusWraps(t *testing.T) {
	m := NewFilterOverlayModel(columns, nil, ui.DarkTheme)

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	typeText(m, "R7")
	assert.Equal(t, grid.FilterCriteria{"roll_no": "R7"}, m.Criteria())
}

func TestFilterOverlay_ClearAll(t *testing.T) {
	m := NewFilterOverlayModel(columns, grid.FilterCriteria{"id": "1", "name": "x"}, ui.DarkTheme)
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Empty(t, m.Criteria())
}
