package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

func (a App) renderHomeTab(cw int) string {
	t := theme.Active
	h := a.data.home
	current := pipeline.PositionOf(a.month, a.ledger.Now()) == pipeline.CurrentMonth

	var b strings.Builder
	b.WriteString(components.MetricCardRow(homeMetrics(h, current), cw))
	b.WriteString("\n")

	today := 0
	if current {
		today = a.ledger.Now().Day()
	}

	calW := cw
	recentW := cw
	if !a.isCompactLayout() {
		widths := components.LayoutRow(cw, 3)
		calW = widths[0] + widths[1]
		recentW = widths[2]
	}

	calendar := components.ContentCard(
		a.month.Label(),
		components.Calendar(pipeline.CalendarWeeks(a.month), pipeline.FillCalendar(a.month, h.Daily), today, components.CardInnerWidth(calW)),
		calW,
	)
	recent := components.ContentCard("최근 지출", recentList(h.Recent, components.CardInnerWidth(recentW)), recentW)

	if a.isCompactLayout() {
		b.WriteString(calendar)
		b.WriteString("\n")
		b.WriteString(recent)
	} else {
		b.WriteString(components.CardRow([]string{calendar, recent}))
	}

	if over := h.Summary.TotalExpense - h.TotalBudget; h.HasBudget && over > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Over).Background(t.Background).Bold(true)
		b.WriteString("\n")
		b.WriteString(warn.Render(fmt.Sprintf(" ⚠ 이번 달 예산을 %s 넘었어요", cli.FormatWon(over))))
	}
	return b.String()
}

func homeMetrics(h pipeline.HomeView, current bool) []components.Metric {
	t := theme.Active
	net := h.Summary.Net()
	netColor := t.Income
	if net < 0 {
		netColor = t.Expense
	}

	metrics := []components.Metric{
		{Label: "수입", Value: cli.FormatWon(h.Summary.TotalIncome), Color: t.Income},
		{Label: "지출", Value: cli.FormatWon(h.Summary.TotalExpense), Color: t.Expense,
			Note: "일 평균 " + cli.FormatWon(h.DailyAverage)},
		{Label: "잔액", Value: cli.FormatSignedWon(net), Color: netColor},
	}

	if h.HasBudget {
		m := components.Metric{Label: "남은 예산", Value: cli.FormatWon(h.BudgetRemaining), Color: t.Safe}
		if h.BudgetRemaining <= 0 {
			m.Color = t.Over
		}
		if current && h.DaysRemaining > 0 {
			m.Note = fmt.Sprintf("%d일 남음 · 하루 %s", h.DaysRemaining, cli.FormatWon(h.BudgetRemaining/int64(h.DaysRemaining)))
		}
		metrics = append(metrics, m)
	}
	if current {
		metrics = append(metrics, components.Metric{Label: "오늘 지출", Value: cli.FormatWon(h.TodayExpense), Color: t.Today})
	}
	return metrics
}

// recentList renders the latest expenses one per line: date, category and
// amount.
func recentList(txs []model.Transaction, width int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	if len(txs) == 0 {
		return dim.Render("아직 지출이 없어요. [a]로 추가하세요.")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	catStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	amtStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, 0, len(txs))
	for _, tx := range txs {
		date := dateStyle.Render(tx.Date[5:] + " ")
		amt := amtStyle.Render(cli.FormatWon(tx.Amount))
		label := tx.MainCategory
		if tx.Memo != "" {
			label += " · " + tx.Memo
		}
		avail := width - lipgloss.Width(date) - lipgloss.Width(amt) - 1
		label = truncStr(label, avail)
		gap := max(1, width-lipgloss.Width(date)-lipgloss.Width(label)-lipgloss.Width(amt))
		lines = append(lines, date+catStyle.Render(label)+blank.Render(strings.Repeat(" ", gap))+amt)
	}
	return strings.Join(lines, "\n")
}
