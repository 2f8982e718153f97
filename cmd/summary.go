package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly totals, category breakdown and budget status",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	v, err := appLedger.Summary(cmd.Context(), ym)
	if err != nil {
		return err
	}

	printTitle(fmt.Sprintf("가계부  %s", ym.Label()))

	cur := v.Current
	rows := [][]string{
		{"수입", cli.FormatWon(cur.TotalIncome)},
		{"지출", cli.FormatWon(cur.TotalExpense)},
		{"잔액", cli.FormatSignedWon(cur.Net())},
		{"---"},
		{"일평균 지출", cli.FormatWon(v.DailyAverage)},
	}
	if v.HasTotalBudget {
		rows = append(rows,
			[]string{"---"},
			[]string{"예산", cli.FormatWon(v.TotalBudget)},
			[]string{"남은 예산", cli.FormatSignedWon(v.TotalBudget - cur.TotalExpense)},
		)
	}
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	if cur.TotalExpense == 0 {
		printNote("이번 달 지출이 아직 없어요.")
		return nil
	}

	fmt.Println()
	shares := pipeline.CategoryShares(cur.ByCategory)
	catRows := make([][]string, 0, len(shares))
	for _, s := range shares {
		catRows = append(catRows, []string{s.Label, cli.FormatWon(s.Amount), fmt.Sprintf("%.1f%%", s.Percent)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "카테고리별 지출",
		Headers: []string{"카테고리", "금액", "비율"},
		Rows:    catRows,
	}))

	printPayments(v)

	if !v.Budget.Empty() {
		fmt.Println()
		printBudgetStatus(v)
	}
	if over := v.OverBudget(); over > 0 {
		fmt.Print(cli.RenderWarning(fmt.Sprintf("예산을 %s 초과했어요.", cli.FormatWon(over))))
	}
	for _, s := range v.Budget.Warn(appCfg.Budget.WarnPercent) {
		if !s.Over {
			printNote(fmt.Sprintf("%s 예산의 %s를 썼어요.", s.Category, cli.FormatWholePercent(s.Percent())))
		}
	}
	return nil
}

// printBudgetStatus renders the per-category budget table with usage bars.
func printBudgetStatus(v pipeline.SummaryView) {
	st := v.Budget
	rows := make([][]string, 0, len(st.Categories)+2)
	for _, s := range st.Categories {
		rows = append(rows, []string{
			s.Category,
			cli.FormatWon(s.Budget),
			cli.FormatWon(s.Spent),
			cli.FormatSignedWon(s.Remaining),
			cli.RenderUsageBar(s.Percent(), appCfg.Budget.WarnPercent, 12) + " " + cli.FormatWholePercent(s.Percent()),
		})
	}
	label := "전체"
	if st.TotalIsDerived {
		label = "전체 (합계)"
	}
	rows = append(rows, []string{"---"}, []string{
		label,
		cli.FormatWon(st.Total),
		cli.FormatWon(st.Spent),
		cli.FormatSignedWon(st.Remaining),
		cli.RenderUsageBar(st.Percent(), appCfg.Budget.WarnPercent, 12) + " " + cli.FormatWholePercent(st.Percent()),
	})
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "예산",
		Headers: []string{"카테고리", "예산", "지출", "남음", "사용률"},
		Rows:    rows,
	}))
}

// printPayments renders the payment method breakdown as bars.
func printPayments(v pipeline.SummaryView) {
	if len(v.CurrentPayments) == 0 {
		return
	}
	labelW := 0
	for _, p := range v.CurrentPayments {
		labelW = max(labelW, lipgloss.Width(p.PaymentMethod))
	}
	peak := v.CurrentPayments[0].Amount

	fmt.Println()
	fmt.Print(cli.RenderNote("결제수단별 지출"))
	for _, p := range v.CurrentPayments {
		fmt.Println(cli.RenderHorizontalBar(p.PaymentMethod, p.Amount, peak, 30, labelW))
	}
}
