package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/budget"
	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

func (a App) renderBudgetTab(cw int) string {
	t := theme.Active
	s := a.data.summary
	ms := s.Budget
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	title := a.month.Label() + " 예산"
	if ms.Empty() {
		return components.ContentCard(title, muted.Render("예산이 없어요. [B]로 예산을 정해 보세요."), cw)
	}

	warnAt := a.cfg.Budget.WarnPercent
	var b strings.Builder

	totalNote := ""
	if ms.TotalIsDerived {
		totalNote = "카테고리 합계"
	}
	remainColor := t.Safe
	if ms.Remaining <= 0 {
		remainColor = t.Over
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "예산", Value: cli.FormatWon(ms.Total), Note: totalNote},
		{Label: "사용", Value: cli.FormatWon(ms.Spent), Color: t.Expense,
			Note: cli.FormatWholePercent(ms.Percent())},
		{Label: "남은 예산", Value: cli.FormatWon(ms.Remaining), Color: remainColor},
	}, cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("카테고리별 사용률", budgetBars(ms, warnAt, components.CardInnerWidth(cw)), cw))

	if over := s.OverBudget(); over > 0 {
		warn := lipgloss.NewStyle().Foreground(t.Over).Background(t.Background).Bold(true)
		b.WriteString("\n")
		b.WriteString(warn.Render(fmt.Sprintf(" ⚠ 전체 예산을 %s 초과했어요", cli.FormatWon(over))))
	}
	if warned := ms.Warn(warnAt); len(warned) > 0 {
		names := make([]string, len(warned))
		for i, st := range warned {
			names[i] = st.Category
		}
		note := lipgloss.NewStyle().Foreground(t.Warn).Background(t.Background)
		b.WriteString("\n")
		b.WriteString(note.Render(fmt.Sprintf(" %s%% 이상 사용: %s", strconv.FormatFloat(warnAt, 'f', -1, 64), strings.Join(names, ", "))))
	}
	return b.String()
}

// budgetBars renders the total bar and one bar per budgeted category with
// its spent and budget amounts.
func budgetBars(ms budget.MonthStatus, warnAt float64, w int) string {
	t := theme.Active
	amt := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	over := lipgloss.NewStyle().Foreground(t.Over).Background(t.Surface).Bold(true)

	labelW := lipgloss.Width("전체")
	for _, st := range ms.Categories {
		labelW = max(labelW, lipgloss.Width(st.Category))
	}
	const amountW = 26
	barW := max(10, w-labelW-amountW-8)

	line := func(label string, pct, spent, total int64, overage string) string {
		s := components.BudgetBar(label, pct, warnAt, labelW, barW) +
			amt.Render(fmt.Sprintf(" %*s", amountW, cli.FormatWon(spent)+" / "+cli.FormatWon(total)))
		if overage != "" {
			s += over.Render(" " + overage)
		}
		return s
	}

	var b strings.Builder
	b.WriteString(line("전체", ms.Percent(), ms.Spent, ms.Total, ""))
	for _, st := range ms.Categories {
		b.WriteString("\n")
		overage := ""
		if st.Over {
			overage = "+" + cli.FormatPercent(st.Overage)
		}
		b.WriteString(line(st.Category, st.Percent(), st.Spent, st.Budget, overage))
	}
	return b.String()
}
