// Package cmd implements the gagyebu CLI commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/config"
	"github.com/theirongolddev/gagyebu/internal/ledger"
	"github.com/theirongolddev/gagyebu/internal/logging"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/store"
)

var (
	flagDB    string
	flagMonth string
	flagQuiet bool
)

// Shared state built once per invocation by openLedger.
var (
	appCfg    config.Config
	appLog    *logrus.Logger
	appLedger *ledger.Ledger
	logCloser io.Closer
)

// noLedger marks commands that run without opening the database.
const noLedger = "no-ledger"

var rootCmd = &cobra.Command{
	Use:   "gagyebu",
	Short: "가계부: household budget tracker",
	Long:  "Record income and expenses, browse them by month, and keep monthly budgets.",
	// Errors are printed by cobra; usage is noise for runtime failures.
	SilenceUsage:       true,
	PersistentPreRunE:  openLedger,
	PersistentPostRunE: closeLedger,
	RunE:               runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database file (default: $XDG_DATA_HOME/gagyebu/"+store.DefaultFileName+")")
	rootCmd.PersistentFlags().StringVarP(&flagMonth, "month", "m", "", "Month to show, YYYY-MM (default: current month)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Print tables only")
}

// openLedger loads .env, the config and the logger, then opens the store.
func openLedger(cmd *cobra.Command, _ []string) error {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}
	appCfg = cfg

	if cmd.Annotations[noLedger] == "true" {
		return nil
	}

	logger, closer, err := logging.New(logging.Options{Level: cfg.Log.Level, File: cfg.LogPath()})
	if err != nil {
		return err
	}
	appLog, logCloser = logger, closer

	db, err := store.Open(cmd.Context(), cfg.DBPath(store.DefaultFileName))
	if err != nil {
		logging.Error(logrus.NewEntry(logger), "cmd.openLedger", err, nil)
		return err
	}
	appLedger = ledger.New(db, ledger.Options{
		Logger:      logger,
		AtomicSave:  cfg.Budget.AtomicSave,
		RecentLimit: cfg.General.RecentLimit,
	})
	return nil
}

func closeLedger(_ *cobra.Command, _ []string) error {
	if appLedger != nil {
		if err := appLedger.Close(); err != nil {
			return err
		}
		appLedger = nil
	}
	if logCloser != nil {
		_ = logCloser.Close()
		logCloser = nil
	}
	return nil
}

// selectedMonth returns --month, or the current month.
func selectedMonth() (model.YearMonth, error) {
	if flagMonth == "" {
		return model.YearMonthOf(appLedger.Now()), nil
	}
	return model.ParseYearMonth(flagMonth)
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func printTitle(title string) {
	if flagQuiet {
		return
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println()
}

func printNote(s string) {
	if flagQuiet {
		return
	}
	fmt.Print(cli.RenderNote(s))
}
