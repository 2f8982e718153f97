package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

// BudgetBar renders a labeled usage bar. pct is the whole-percent usage
// and may exceed 100; the bar fills at 100 and the number keeps counting.
func BudgetBar(label string, pct int64, warnAt float64, labelW, barWidth int) string {
	t := theme.Active
	color := t.UsageColor(pct, warnAt)

	fill := float64(pct) / 100
	if fill > 1 {
		fill = 1
	}
	if fill < 0 {
		fill = 0
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	pad := labelW - lipgloss.Width(label)
	if pad < 0 {
		pad = 0
	}
	return labelStyle.Render(label+fmt.Sprintf("%*s", pad, "")) +
		space +
		bar.ViewAs(fill) +
		space +
		pctStyle.Render(fmt.Sprintf("%4d%%", pct))
}
