package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderStatusBar produces a full-width inverted status line showing the
// adventure, the character and the number of commands entered. It only
// reads what the model has been told through messages.
func (m Model) renderStatusBar() string {
	title := m.title
	if title == "" {
		title = "Dark Harvest"
	}

	left := " " + title
	if m.character != "" {
		left += " | " + m.character
	}

	var right string
	switch {
	case m.finished:
		right = "Press any key to exit "
	case m.playing:
		right = fmt.Sprintf("T:%d ", m.turns)
	default:
		right = "Setup "
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
