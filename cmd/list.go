package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
)

var (
	flagListDate string
	flagListType string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List a month's or a day's transactions",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().StringVarP(&flagListDate, "date", "d", "", "Only this date, YYYY-MM-DD")
	listCmd.Flags().StringVarP(&flagListType, "type", "t", "", "Only expense or income")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	var (
		txs   []model.Transaction
		title string
		err   error
	)
	if flagListDate != "" {
		txs, err = appLedger.Day(cmd.Context(), flagListDate)
		title = cli.FormatDate(flagListDate)
	} else {
		var ym model.YearMonth
		ym, err = selectedMonth()
		if err != nil {
			return err
		}
		txs, err = appLedger.Month(cmd.Context(), ym)
		title = ym.Label()
	}
	if err != nil {
		return err
	}

	if flagListType != "" {
		typ := model.TxType(flagListType)
		if !typ.Valid() {
			return fmt.Errorf("unknown type %q: want expense or income", flagListType)
		}
		txs = pipeline.FilterByType(txs, typ)
	}
	if len(txs) == 0 {
		fmt.Printf("\n  %s: 거래가 없어요.\n", title)
		return nil
	}

	printTitle(fmt.Sprintf("거래 내역  %s", title))
	fmt.Print(renderTransactions(txs, true))
	return nil
}

// renderTransactions renders a transaction table, optionally followed by
// income and expense totals.
func renderTransactions(txs []model.Transaction, totals bool) string {
	rows := make([][]string, 0, len(txs)+3)
	for _, t := range txs {
		amount := cli.FormatWon(t.Amount)
		if t.Type == model.Income {
			amount = "+" + amount
		}
		category := t.MainCategory
		if t.SubCategory != "" {
			category += " / " + t.SubCategory
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID), t.Date, category, t.PaymentMethod, amount, t.Memo,
		})
	}
	if totals {
		income, expense := pipeline.Totals(txs)
		rows = append(rows, []string{"---"},
			[]string{"", "수입", "", "", cli.FormatWon(income), ""},
			[]string{"", "지출", "", "", cli.FormatWon(expense), ""},
		)
	}
	return cli.RenderTable(cli.Table{
		Headers: []string{"ID", "날짜", "카테고리", "결제수단", "금액", "메모"},
		Rows:    rows,
	})
}
