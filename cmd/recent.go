package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagRecentLimit int

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Latest expenses of the month",
	Args:  cobra.NoArgs,
	RunE:  runRecent,
}

func init() {
	recentCmd.Flags().IntVarP(&flagRecentLimit, "limit", "n", 0, "Number of expenses (default: config recent_limit)")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	limit := flagRecentLimit
	if limit <= 0 {
		limit = appCfg.General.RecentLimit
	}
	txs, err := appLedger.Recent(cmd.Context(), ym, limit)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Printf("\n  %s에는 지출이 없어요.\n", ym.Label())
		return nil
	}

	printTitle(fmt.Sprintf("최근 지출  %s", ym.Label()))
	fmt.Print(renderTransactions(txs, false))
	return nil
}
