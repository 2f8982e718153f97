package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/model"
)

var (
	editFlags txFlags
	editType  string
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of a recorded transaction",
	Long:  "Only the flags given are changed; the rest keep their stored values.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editFlags.register(editCmd.Flags())
	editCmd.Flags().StringVar(&editType, "type", "", "Transaction type: expense or income")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
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

	fs := cmd.Flags()
	if fs.Changed("date") {
		t.Date = editFlags.date
	}
	if fs.Changed("amount") {
		t.Amount = editFlags.amount
	}
	if fs.Changed("type") {
		t.Type = model.TxType(editType)
	}
	if fs.Changed("category") {
		t.MainCategory = editFlags.category
	}
	if fs.Changed("sub") {
		t.SubCategory = editFlags.sub
	}
	if fs.Changed("pay") {
		t.PaymentMethod = editFlags.pay
	}
	if fs.Changed("memo") {
		t.Memo = editFlags.memo
	}

	if err := appLedger.UpdateTransaction(cmd.Context(), t); err != nil {
		return err
	}
	fmt.Printf("  #%d updated\n", id)
	return nil
}
