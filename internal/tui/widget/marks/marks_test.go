package marks

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/api"
	"github.com/ygelfand/studentctl/internal/roster"
	"github.com/ygelfand/studentctl/internal/ui"
)

func typeText(m *MarksOverlayModel, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestMarksOverlay_RejectsMissingMarks(t *testing.T) {
	m := NewMarksOverlayModel(ui.DarkTheme)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.NotNil(t, model, "stays open")
	assert.Nil(t, cmd)
	assert.True(t, errors.Is(m.Err(), roster.ErrMissingMarks))
	assert.Contains(t, m.View(), roster.ErrMissingMarks.Error())
}

func TestMarksOverlay_RejectsNonNumericMarks(t *testing.T) {
	m := NewMarksOverlayModel(ui.DarkTheme)
	typeText(m, "abc")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	require.Error(t, m.Err())
}

func TestMarksOverlay_ChoosesComparison(t *testing.T) {
	m := NewMarksOverlayModel(ui.DarkTheme)
	assert.Equal(t, api.LessThan, m.Selected())

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, api.NotEqual, m.Selected())

	typeText(m, "55")
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, model, "closes on submit")
	require.NotNil(t, cmd)
	assert.Equal(t, ui.MarksFilterMsg{Marks: "55", Comparison: api.NotEqual}, cmd())
}

func TestMarksOverlay_Escape(t *testing.T) {
	m := NewMarksOverlayModel(ui.DarkTheme)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, model)
	assert.Nil(t, cmd)
}
