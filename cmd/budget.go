package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
)

var (
	flagBudgetTotal    int64
	flagBudgetCats     map[string]int64
	flagBudgetFromPrev bool
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or change a month's budgets",
	Args:  cobra.NoArgs,
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the total and category budgets of a month",
	Long: `Set the total and category budgets of a month.

Flags change only what they name; an amount of 0 removes that budget.
Category budgets may not add up to more than a non-zero total.`,
	Example: `  gagyebu budget set --total 2000000 --cat 식비=600000 --cat 교통/차량=150000
  gagyebu budget set -m 2026-03 --from-previous`,
	Args: cobra.NoArgs,
	RunE: runBudgetSet,
}

var budgetResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every budget of a month",
	Args:  cobra.NoArgs,
	RunE:  runBudgetReset,
}

func init() {
	budgetSetCmd.Flags().Int64Var(&flagBudgetTotal, "total", 0, "Total monthly budget in won")
	budgetSetCmd.Flags().StringToInt64Var(&flagBudgetCats, "cat", nil, "Category budget, name=amount (repeatable)")
	budgetSetCmd.Flags().BoolVar(&flagBudgetFromPrev, "from-previous", false, "Start from the previous month's budgets when this month has none")
	budgetCmd.AddCommand(budgetSetCmd, budgetResetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetShow(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	v, err := appLedger.Summary(cmd.Context(), ym)
	if err != nil {
		return err
	}
	if v.Budget.Empty() {
		fmt.Printf("\n  %s 예산이 없어요. `gagyebu budget set`으로 정해 보세요.\n", ym.Label())
		return nil
	}

	printTitle(fmt.Sprintf("예산  %s", ym.Label()))
	printBudgetStatus(v)
	if over := v.OverBudget(); over > 0 {
		fmt.Print(cli.RenderWarning(fmt.Sprintf("예산을 %s 초과했어요.", cli.FormatWon(over))))
	}
	return nil
}

func runBudgetSet(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	draft, err := appLedger.BudgetDraft(cmd.Context(), ym)
	if err != nil {
		return err
	}
	if draft.FromPrevious && !flagBudgetFromPrev {
		draft.Total = 0
		draft.Categories = map[string]int64{}
	}

	if cmd.Flags().Changed("total") {
		draft.Total = flagBudgetTotal
	}
	names, err := appLedger.CategoryNames(cmd.Context())
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}
	for name, amount := range flagBudgetCats {
		if !known[name] {
			return fmt.Errorf("unknown category %q", name)
		}
		if amount <= 0 {
			delete(draft.Categories, name)
			continue
		}
		draft.Categories[name] = amount
	}

	if err := appLedger.SaveBudgets(cmd.Context(), ym, draft.Total, draft.Categories); err != nil {
		return err
	}
	fmt.Printf("  %s 예산을 저장했어요. 전체 %s, 카테고리 합계 %s\n",
		ym.Label(), cli.FormatWon(draft.Total), cli.FormatWon(draft.Allocated()))
	return nil
}

func runBudgetReset(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	if err := appLedger.ResetBudgets(cmd.Context(), ym); err != nil {
		return err
	}
	fmt.Printf("  %s 예산을 모두 지웠어요.\n", ym.Label())
	return nil
}
