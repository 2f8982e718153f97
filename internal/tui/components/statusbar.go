package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

// Status is the message shown on the right of the status bar.
type Status struct {
	Text  string
	Error bool
}

// RenderStatusBar renders the bottom bar: key hints on the left, the
// latest status on the right.
func RenderStatusBar(width int, hints string, st Status, busy string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	msgStyle := lipgloss.NewStyle().Foreground(t.Safe).Background(t.Surface)
	if st.Error {
		msgStyle = msgStyle.Foreground(t.Over).Bold(true)
	}

	left := base.Render(" " + hints)
	right := ""
	switch {
	case busy != "":
		right = base.Render(busy + " ")
	case st.Text != "":
		right = msgStyle.Render(st.Text + " ")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + base.Render(strings.Repeat(" ", gap)) + right
}
