package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

var weekdayHeader = []string{"일", "월", "화", "수", "목", "금", "토"}

// Calendar renders a Sunday-first month grid. Each day cell shows the day
// number and that day's expense and income in 만원 shorthand. days holds
// one row per day of the month, in order; today is 0 when the month is
// not the current one.
func Calendar(weeks [][7]int, days []model.DailySummaryRow, today, width int) string {
	t := theme.Active
	cellW := max(6, (width-6)/7)

	base := lipgloss.NewStyle().Background(t.Surface).Width(cellW).MaxHeight(1)
	head := base.Foreground(t.TextMuted).Bold(true)
	dayStyle := base.Foreground(t.Text)
	todayStyle := base.Foreground(t.Today).Bold(true)
	sunStyle := base.Foreground(t.Expense)
	expStyle := base.Foreground(t.Expense)
	incStyle := base.Foreground(t.Income)
	gap := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	var b strings.Builder
	for i, h := range weekdayHeader {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(head.Render(h))
	}

	for _, week := range weeks {
		var nums, exps, incs []string
		for col, d := range week {
			if d == 0 {
				nums = append(nums, base.Render(""))
				exps = append(exps, base.Render(""))
				incs = append(incs, base.Render(""))
				continue
			}
			style := dayStyle
			switch {
			case d == today:
				style = todayStyle
			case col == 0:
				style = sunStyle
			}
			nums = append(nums, style.Render(strconv.Itoa(d)))

			row := days[d-1]
			exps = append(exps, expStyle.Render(shortAmount(row.Expense, "-", cellW)))
			incs = append(incs, incStyle.Render(shortAmount(row.Income, "+", cellW)))
		}
		for _, line := range [][]string{nums, exps, incs} {
			b.WriteString("\n")
			b.WriteString(strings.Join(line, gap))
		}
	}
	return b.String()
}

func shortAmount(n int64, sign string, width int) string {
	if n == 0 {
		return ""
	}
	s := sign + cli.FormatManWon(n)
	if lipgloss.Width(s) > width {
		s = strings.TrimSuffix(strings.TrimSuffix(s, "원"), " ")
	}
	return s
}
