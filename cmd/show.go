package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one transaction",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	t, ok, err := appLedger.GetTransaction(cmd.Context(), id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("transaction %d: %w", id, model.ErrNotFound)
	}

	rows := [][]string{
		{"ID", fmt.Sprintf("%d", t.ID)},
		{"날짜", cli.FormatDate(t.Date)},
		{"구분", t.Type.Label()},
		{"금액", cli.FormatWon(t.Amount)},
		{"카테고리", t.MainCategory},
		{"세부 카테고리", t.SubCategory},
		{"결제수단", t.PaymentMethod},
		{"메모", t.Memo},
		{"---"},
		{"등록", t.CreatedAt.Local().Format("2006-01-02 15:04")},
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))
	return nil
}
