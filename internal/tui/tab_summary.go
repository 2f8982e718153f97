package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/compare"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active
	s := a.data.summary
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder

	cmp := s.Comparison
	deltaColor := t.Text
	switch cmp.Trend {
	case compare.TrendUp, compare.TrendNew:
		deltaColor = t.Expense
	case compare.TrendDown:
		deltaColor = t.Income
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "총 지출", Value: cli.FormatWon(s.Current.TotalExpense), Color: t.Expense,
			Note: fmt.Sprintf("%d일 기준", s.ElapsedDays)},
		{Label: "일 평균", Value: cli.FormatWon(s.DailyAverage)},
		{Label: "지난 달 대비", Value: cli.FormatSignedWon(cmp.Delta), Color: deltaColor, Note: cmp.PercentLabel()},
		{Label: "수입", Value: cli.FormatWon(s.Income), Color: t.Income},
	}, cw))
	b.WriteString("\n")

	// Daily expense chart
	days := pipeline.FillCalendar(a.month, a.data.home.Daily)
	values := make([]int64, len(days))
	labels := make([]string, len(days))
	for i, d := range days {
		values[i] = d.Expense
		if day := i + 1; day == 1 || day%5 == 0 {
			labels[i] = strconv.Itoa(day)
		}
	}
	chartH := 8
	if a.isCompactLayout() {
		chartH = 6
	}
	b.WriteString(components.ContentCard("일별 지출",
		components.BarChart(values, labels, t.Chart, components.CardInnerWidth(cw), chartH), cw))
	b.WriteString("\n")

	// Breakdown cards
	var catBody, payBody string
	if len(s.Current.ByCategory) == 0 {
		catBody = muted.Render("지출이 없어요")
		payBody = catBody
	}

	halves := []int{cw, cw}
	if !a.isCompactLayout() {
		halves = components.LayoutRow(cw, 2)
	}
	if catBody == "" {
		catBody = components.ShareBars(pipeline.CategoryShares(s.Current.ByCategory), t.Expense, components.CardInnerWidth(halves[0]))
		payBody = components.ShareBars(pipeline.PaymentShares(s.CurrentPayments), t.Accent, components.CardInnerWidth(halves[1]))
	}
	catCard := components.ContentCard("카테고리별", catBody, halves[0])
	payCard := components.ContentCard("결제수단별", payBody, halves[1])
	if a.isCompactLayout() {
		b.WriteString(catCard + "\n" + payCard)
	} else {
		b.WriteString(components.CardRow([]string{catCard, payCard}))
	}
	b.WriteString("\n")

	b.WriteString(components.ContentCard("지난 달과 비교", comparisonBody(cmp), cw))
	return b.String()
}

// comparisonBody renders the sentence and the top category and payment
// method of both months.
func comparisonBody(c compare.Comparison) string {
	t := theme.Active
	text := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(text.Render(c.Describe()))
	b.WriteString("\n")
	b.WriteString(muted.Render(padCell("", 14) + padCell("지난 달", 24) + "이번 달"))

	prevCat, curCat := c.TopCategoryLabels()
	prevPay, curPay := c.TopPaymentLabels()
	rows := []struct {
		label     string
		prev, cur string
	}{
		{"총 지출", cli.FormatWon(c.Previous), cli.FormatWon(c.Current)},
		{"최다 카테고리", prevCat, curCat},
		{"최다 결제수단", prevPay, curPay},
	}
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(muted.Render(padCell(r.label, 14)))
		b.WriteString(text.Render(padCell(r.prev, 24) + r.cur))
	}
	return b.String()
}
