package settings

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygelfand/studentctl/internal/config"
	"github.com/ygelfand/studentctl/internal/ui"
)

func newModel(t *testing.T) (*SettingsOverlayModel, *config.Config, *int) {
	t.Helper()
	cfg := config.Default()
	saves := 0
	m := NewSettingsOverlayModel(cfg, ui.DarkTheme).WithSaver(func(*config.Config) error {
		saves++
		return nil
	})
	return m, cfg, &saves
}

func press(m *SettingsOverlayModel, keys ...tea.KeyType) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(tea.KeyMsg{Type: k})
	}
	return cmd
}

func TestSettings_ToggleCache(t *testing.T) {
	m, cfg, saves := newModel(t)
	require.False(t, cfg.NoCache)

	press(m, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyEnter)

	assert.True(t, cfg.NoCache)
	assert.Equal(t, 1, *saves)
}

func TestSettings_ChooseRowsPerPage(t *testing.T) {
	m, cfg, saves := newModel(t)

	press(m, tea.KeyDown, tea.KeyDown, tea.KeyEnter)
	require.True(t, m.isSelecting)

	// starts on the current value and moves to the next choice
	press(m, tea.KeyDown, tea.KeyEnter)

	assert.False(t, m.isSelecting)
	assert.Equal(t, 20, cfg.RowsPerPage)
	assert.Equal(t, 1, *saves)
}

func TestSettings_ThemePreview(t *testing.T) {
	m, _, _ := newModel(t)

	press(m, tea.KeyEnter)
	require.True(t, m.isSelecting)

	cmd := press(m, tea.KeyDown)
	require.NotNil(t, cmd)

	var found bool
	collect(cmd, func(msg tea.Msg) {
		if _, ok := msg.(ui.ThemeChangedMsg); ok {
			found = true
		}
	})
	assert.True(t, found)
}

func TestSettings_CloseEmitsFinished(t *testing.T) {
	m, cfg, _ := newModel(t)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, model)
	require.NotNil(t, cmd)

	msg, ok := cmd().(SettingsFinishedMsg)
	require.True(t, ok)
	assert.Same(t, cfg, msg.Config)
}

func collect(cmd tea.Cmd, fn func(tea.Msg)) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			collect(c, fn)
		}
		return
	}
	fn(msg)
}
