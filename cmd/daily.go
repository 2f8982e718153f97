package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
)

var flagDailyAll bool

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day income and expense for a month",
	RunE:  runDaily,
}

func init() {
	dailyCmd.Flags().BoolVar(&flagDailyAll, "all", false, "Include days without transactions")
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	ym, err := selectedMonth()
	if err != nil {
		return err
	}
	home, err := appLedger.Home(cmd.Context(), ym)
	if err != nil {
		return err
	}
	if len(home.Daily) == 0 {
		fmt.Printf("\n  %s에는 거래가 없어요.\n", ym.Label())
		return nil
	}

	printTitle(fmt.Sprintf("일별 내역  %s", ym.Label()))

	days := home.Daily
	calendar := pipeline.FillCalendar(ym, home.Daily)
	if flagDailyAll {
		days = calendar
	}

	rows := make([][]string, 0, len(days)+2)
	for _, d := range days {
		rows = append(rows, dailyRow(d))
	}
	rows = append(rows, []string{"---"}, []string{
		"합계", "",
		cli.FormatWon(home.Summary.TotalIncome),
		cli.FormatWon(home.Summary.TotalExpense),
	})
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"날짜", "요일", "수입", "지출"},
		Rows:    rows,
	}))

	spend := make([]float64, len(calendar))
	for i, d := range calendar {
		spend[i] = float64(d.Expense)
	}
	if !flagQuiet {
		fmt.Printf("\n  %s\n", cli.RenderSparkline(spend))
	}
	printNote(fmt.Sprintf("일평균 지출 %s", cli.FormatWon(home.DailyAverage)))
	return nil
}

func dailyRow(d model.DailySummaryRow) []string {
	weekday := ""
	if t, err := time.Parse(model.DateLayout, d.Date); err == nil {
		weekday = cli.FormatWeekday(t.Weekday())
	}
	return []string{d.Date, weekday, cli.FormatWon(d.Income), cli.FormatWon(d.Expense)}
}
