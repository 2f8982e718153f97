package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
)

// txFlags are the fields shared by add, income and edit.
type txFlags struct {
	date     string
	amount   int64
	category string
	sub      string
	pay      string
	memo     string
}

func (f *txFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.date, "date", "d", "", "Date, YYYY-MM-DD (default: today)")
	fs.Int64VarP(&f.amount, "amount", "a", 0, "Amount in won")
	fs.StringVarP(&f.category, "category", "c", "", "Main category")
	fs.StringVar(&f.sub, "sub", "", "Sub category")
	fs.StringVarP(&f.pay, "pay", "p", "", "Payment method")
	fs.StringVar(&f.memo, "memo", "", "Memo")
}

var (
	addFlags    txFlags
	incomeFlags txFlags
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Example: `  gagyebu add -a 12000 -c 식비 --memo 점심
  gagyebu add -a 45000 -c 교통/차량 -p 신용카드 -d 2026-02-03`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAdd(cmd, model.Expense, addFlags)
	},
}

var incomeCmd = &cobra.Command{
	Use:     "income",
	Short:   "Record an income",
	Example: `  gagyebu income -a 3200000 -c 급여`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runAdd(cmd, model.Income, incomeFlags)
	},
}

func init() {
	addFlags.register(addCmd.Flags())
	incomeFlags.register(incomeCmd.Flags())
	for _, c := range []*cobra.Command{addCmd, incomeCmd} {
		_ = c.MarkFlagRequired("amount")
		_ = c.MarkFlagRequired("category")
		rootCmd.AddCommand(c)
	}
}

func runAdd(cmd *cobra.Command, typ model.TxType, f txFlags) error {
	t := model.Transaction{
		Date:          f.date,
		Amount:        f.amount,
		Type:          typ,
		MainCategory:  f.category,
		SubCategory:   f.sub,
		PaymentMethod: f.pay,
		Memo:          f.memo,
	}
	if t.Date == "" {
		t.Date = appLedger.Now().Format(model.DateLayout)
	}
	if t.PaymentMethod == "" {
		t.PaymentMethod = appCfg.PaymentFor(typ)
	}

	saved, err := appLedger.AddTransaction(cmd.Context(), t)
	if err != nil {
		return err
	}
	fmt.Printf("  #%d  %s  %s %s  %s\n",
		saved.ID, cli.FormatDate(saved.Date), saved.Type.Label(),
		cli.FormatWon(saved.Amount), saved.MainCategory)
	return nil
}
