package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as one line of block characters.
func Sparkline(values []int64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	peak := int64(1)
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v * int64(len(sparkBlocks)-1) / peak)
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart renders a vertical bar chart of amounts with a won-scaled y
// axis. labels, when given, must match values one to one.
func BarChart(values []int64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	var peak int64
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	step := chartTickStep(float64(peak))
	intervals := int(math.Max(1, math.Ceil(float64(peak)/step)))
	for intervals > height/2 && intervals > 1 {
		step *= 2
		intervals = int(math.Ceil(float64(peak) / step))
	}
	ceiling := step * float64(intervals)
	rowsPerTick := max(1, height/intervals)
	chartH := rowsPerTick * intervals

	labelW := max(4, lipgloss.Width(formatChartLabel(ceiling))+1)
	n := len(values)
	barW := max(1, min(4, (width-labelW-1-(n-1))/n))
	axisLen := n*barW + n - 1

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		top := ceiling * float64(row) / float64(chartH)
		bottom := ceiling * float64(row-1) / float64(chartH)

		label := ""
		if row%rowsPerTick == 0 {
			label = formatChartLabel(step * float64(row/rowsPerTick))
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", labelW, label)))

		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(" "))
			}
			fv := float64(v)
			switch {
			case fv >= top:
				b.WriteString(bar.Render(strings.Repeat("█", barW)))
			case fv > bottom:
				idx := int((fv - bottom) / (top - bottom) * float64(len(sparkBlocks)))
				idx = max(0, min(len(sparkBlocks)-1, idx))
				b.WriteString(bar.Render(strings.Repeat(string(sparkBlocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}
	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", labelW, "0", strings.Repeat("─", axisLen))))

	if len(labels) == n {
		line := []rune(strings.Repeat(" ", axisLen))
		next := 0
		for i, l := range labels {
			pos := i * (barW + 1)
			if l == "" || pos < next || pos+len(l) > axisLen {
				continue
			}
			copy(line[pos:], []rune(l))
			next = pos + len(l) + 1
		}
		b.WriteString("\n")
		b.WriteString(axis.Render(strings.Repeat(" ", labelW+1) + strings.TrimRight(string(line), " ")))
	}
	return b.String()
}

// ShareBars renders one horizontal bar per share, scaled to the largest.
func ShareBars(shares []model.Share, color lipgloss.Color, width int) string {
	if len(shares) == 0 {
		return ""
	}
	t := theme.Active

	labelW := 0
	var peak int64
	for _, s := range shares {
		labelW = max(labelW, lipgloss.Width(s.Label))
		peak = max(peak, s.Amount)
	}
	const amountW, pctW = 12, 7
	barMax := max(1, width-labelW-amountW-pctW-3)

	labelStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	numStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, s := range shares {
		n := 0
		if peak > 0 {
			n = int(s.Amount * int64(barMax) / peak)
		}
		pad := labelW - lipgloss.Width(s.Label)
		b.WriteString(labelStyle.Render(s.Label + strings.Repeat(" ", pad) + " "))
		b.WriteString(barStyle.Render(strings.Repeat("█", n)))
		b.WriteString(blank.Render(strings.Repeat(" ", barMax-n+1)))
		b.WriteString(numStyle.Render(fmt.Sprintf("%*s %*s", amountW, cli.FormatWon(s.Amount), pctW-1, fmt.Sprintf("%.1f%%", s.Percent))))
		if i < len(shares)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// chartTickStep picks a round tick interval giving about five ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 5
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel abbreviates an amount in 만 and 억 units.
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e8:
		return trimZero(v/1e8) + "억"
	case v >= 1e4:
		return trimZero(v/1e4) + "만"
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func trimZero(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
