package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/export"
)

var flagExportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a month's transactions and breakdowns to an Excel file",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "Output file (default: gagyebu-YYYY-MM.xlsx)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	txs, err := appLedger.Month(cmd.Context(), ym)
	if err != nil {
		return err
	}
	v, err := appLedger.Summary(cmd.Context(), ym)
	if err != nil {
		return err
	}

	out := flagExportOut
	if out == "" {
		out = fmt.Sprintf("gagyebu-%s.xlsx", ym)
	}
	err = export.WriteMonth(out, export.Month{
		Month:        ym,
		Transactions: txs,
		Summary:      v.Current,
		Payments:     v.CurrentPayments,
	})
	if err != nil {
		return err
	}
	fmt.Printf("  %d transactions written to %s\n", len(txs), out)
	return nil
}
