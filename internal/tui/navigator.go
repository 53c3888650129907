package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/studentctl/internal/ui"
)

// Overlay represents a model that is rendered on top of the students view.
// Returning a nil model from Update dismisses it.
type Overlay interface {
	tea.Model
}

type Navigator struct {
	overlays []Overlay
	theme    tint.Tint
	width    int
	height   int
}

func NewNavigator(theme tint.Tint) *Navigator {
	return &Navigator{
		theme: theme,
	}
}

func (n *Navigator) Push(o Overlay) tea.Cmd {
	n.overlays = append(n.overlays, o)
	cmds := []tea.Cmd{o.Init()}
	if n.width > 0 && n.height > 0 {
		_, cmd := o.Update(tea.WindowSizeMsg{Width: n.width, Height: n.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (n *Navigator) Pop() {
	if len(n.overlays) > 0 {
		n.overlays = n.overlays[:len(n.overlays)-1]
	}
}

func (n *Navigator) Len() int {
	return len(n.overlays)
}

func (n *Navigator) ActiveOverlay() Overlay {
	if len(n.overlays) == 0 {
		return nil
	}
	return n.overlays[len(n.overlays)-1]
}

// Update forwards msg to the top overlay. The second result reports whether
// the overlay consumed it; key and mouse events always are.
func (n *Navigator) Update(msg tea.Msg) (tea.Cmd, bool) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		n.width = msg.Width
		n.height = msg.Height
	}

	overlay := n.ActiveOverlay()
	if overlay == nil {
		return nil, false
	}

	newModel, cmd := overlay.Update(msg)
	if newModel == nil {
		n.Pop()
		return cmd, true
	}
	n.overlays[len(n.overlays)-1] = newModel.(Overlay)

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return cmd, true
	}
	return cmd, false
}

func (n *Navigator) Render(base string) string {
	for _, o := range n.overlays {
		base = ui.Overlay(base, o.View(), n.width, n.height)
	}
	return base
}

// SetTheme restyles every open overlay, not only the top one
func (n *Navigator) SetTheme(msg ui.ThemeChangedMsg) {
	n.theme = msg.Theme
	for i, o := range n.overlays {
		if m, _ := o.Update(msg); m != nil {
			n.overlays[i] = m.(Overlay)
		}
	}
}
