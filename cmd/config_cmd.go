package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/config"
	"github.com/theirongolddev/gagyebu/internal/store"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Show current configuration",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{noLedger: "true"},
	RunE:        runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Database:        %s\n", cfg.DBPath(store.DefaultFileName))
	fmt.Printf("    Default payment: %s\n", cfg.General.DefaultPayment)
	fmt.Printf("    Recent limit:    %d\n", cfg.General.RecentLimit)
	fmt.Println()

	fmt.Println("  [Budget]")
	fmt.Printf("    Atomic save:     %v\n", cfg.Budget.AtomicSave)
	fmt.Printf("    Warn at:         %.0f%%\n", cfg.Budget.WarnPercent)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	fmt.Printf("    File:  %s\n", cfg.LogPath())
	fmt.Println()

	fmt.Println("  Run `gagyebu setup` to reconfigure.")
	return nil
}
