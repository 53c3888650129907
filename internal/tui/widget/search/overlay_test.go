package search

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/grid"
	"github.com/ygelfand/studentctl/internal/search"
	"github.com/ygelfand/studentctl/internal/ui"
)

func newIndex() *search.RosterIndex {
	idx := search.NewIndex(nil, "http://test")
	idx.Records = []grid.Record{
		{"id": 1, "name": "Alice Smith", "roll_no": "R-100", "total_marks": 82},
		{"id": 2, "name": "Bob Jones", "roll_no": "R-200", "total_marks": 45},
	}
	return idx
}

func typeText(m *FindOverlayModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestFindOverlay_SelectsMatch(t *testing.T) {
	m := NewFindOverlayModel(newIndex(), ui.DarkTheme)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	typeText(m, "bob")
	require.Len(t, m.Items(), 1)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, model, "overlay closes")
	require.NotNil(t, cmd)

	msg, ok := cmd().(ui.FindStudentMsg)
	require.True(t, ok)
	assert.Equal(t, "Bob Jones", msg.Record.Cell("name"))
}

func TestFindOverlay_MatchesRollNumber(t *testing.T) {
	m := NewFindOverlayModel(newIndex(), ui.DarkTheme)
	typeText(m, "R-100")

	require.NotEmpty(t, m.Items())
	assert.Equal(t, "Alice Smith", m.Items()[0].(studentItem).record.Cell("name"))
}

func TestFindOverlay_EmptyIndexHint(t *testing.T) {
	m := NewFindOverlayModel(nil, ui.DarkTheme)
	typeText(m, "x")

	assert.Empty(t, m.Items())
	assert.Contains(t, m.View(), "index rebuild")

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, model, "nothing to select")
}

func TestFindOverlay_EscCloses(t *testing.T) {
	m := NewFindOverlayModel(newIndex(), ui.DarkTheme)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, model)
	assert.Nil(t, cmd)
}
