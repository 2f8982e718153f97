package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a month's spending with the previous month",
	Args:  cobra.NoArgs,
	RunE:  runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	v, err := appLedger.Summary(cmd.Context(), ym)
	if err != nil {
		return err
	}
	c := v.Comparison
	prev := ym.Prev()

	printTitle(fmt.Sprintf("지난 달 비교  %s → %s", prev.Label(), ym.Label()))

	delta := cli.FormatSignedWon(c.Delta)
	if label := c.PercentLabel(); label != "" {
		delta += "  (" + label + ")"
	}
	prevCat, curCat := c.TopCategoryLabels()
	prevPay, curPay := c.TopPaymentLabels()
	rows := [][]string{
		{"총 지출", cli.FormatWon(c.Previous), cli.FormatWon(c.Current)},
		{"증감", "", delta},
		{"---"},
		{"최다 카테고리", prevCat, curCat},
		{"최다 결제수단", prevPay, curPay},
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"", prev.Label(), ym.Label()},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println("  " + c.Describe())
	return nil
}
