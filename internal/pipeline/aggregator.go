// Package pipeline composes the store's aggregation queries into the views
// the front ends render, and derives the figures the queries do not.
package pipeline

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// Position is where a month lies relative to today.
type Position int

const (
	PastMonth Position = iota
	CurrentMonth
	FutureMonth
)

// PositionOf places ym relative to today's month.
func PositionOf(ym model.YearMonth, today time.Time) Position {
	now := model.YearMonthOf(today)
	switch {
	case ym == now:
		return CurrentMonth
	case ym.Before(now):
		return PastMonth
	default:
		return FutureMonth
	}
}

// ElapsedDays is the divisor for the daily average: today's day of month
// for the current month, every day for a past month, none for a future one.
func ElapsedDays(ym model.YearMonth, today time.Time) int {
	switch PositionOf(ym, today) {
	case CurrentMonth:
		return today.Day()
	case PastMonth:
		return ym.Days()
	default:
		return 0
	}
}

// DailyAverage returns the month's expense per elapsed day, rounded to the
// nearest won.
func DailyAverage(ym model.YearMonth, totalExpense int64, today time.Time) int64 {
	days := ElapsedDays(ym, today)
	if days == 0 {
		return 0
	}
	return int64(math.Round(float64(totalExpense) / float64(days)))
}

// DaysRemaining counts the days left in the month including today.
func DaysRemaining(ym model.YearMonth, today time.Time) int {
	switch PositionOf(ym, today) {
	case CurrentMonth:
		return ym.Days() - today.Day() + 1
	case PastMonth:
		return 0
	default:
		return ym.Days()
	}
}

// FillCalendar expands the sparse daily rows into one row per day of the
// month, in order. Days without transactions get zero sums.
func FillCalendar(ym model.YearMonth, rows []model.DailySummaryRow) []model.DailySummaryRow {
	byDate := make(map[string]model.DailySummaryRow, len(rows))
	for _, r := range rows {
		byDate[r.Date] = r
	}

	days := make([]model.DailySummaryRow, ym.Days())
	for i := range days {
		date := ym.Date(i + 1)
		if r, ok := byDate[date]; ok {
			days[i] = r
			continue
		}
		days[i] = model.DailySummaryRow{Date: date}
	}
	return days
}

// CalendarWeeks lays the month out in Sunday-first weeks. Cells outside
// the month hold 0.
func CalendarWeeks(ym model.YearMonth) [][7]int {
	offset := int(ym.First().Weekday())
	n := ym.Days()

	var weeks [][7]int
	var week [7]int
	for i := 0; i < offset+n; i++ {
		if i >= offset {
			week[i%7] = i - offset + 1
		}
		if i%7 == 6 {
			weeks = append(weeks, week)
			week = [7]int{}
		}
	}
	if (offset+n)%7 != 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// CategoryShares converts a category breakdown into labeled shares of the
// breakdown's total.
func CategoryShares(rows []model.CategorySummaryRow) []model.Share {
	shares := make([]model.Share, len(rows))
	var total int64
	for _, r := range rows {
		total += r.Amount
	}
	for i, r := range rows {
		shares[i] = model.Share{Label: r.Category, Amount: r.Amount, Percent: percent(r.Amount, total)}
	}
	return shares
}

// PaymentShares converts a payment breakdown into labeled shares.
func PaymentShares(rows []model.PaymentSummaryRow) []model.Share {
	shares := make([]model.Share, len(rows))
	var total int64
	for _, r := range rows {
		total += r.Amount
	}
	for i, r := range rows {
		shares[i] = model.Share{Label: r.PaymentMethod, Amount: r.Amount, Percent: percent(r.Amount, total)}
	}
	return shares
}

// FilterByType returns the transactions of one type, keeping order.
func FilterByType(txs []model.Transaction, t model.TxType) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if tx.Type == t {
			result = append(result, tx)
		}
	}
	return result
}

// Totals sums income and expense over a transaction list.
func Totals(txs []model.Transaction) (income, expense int64) {
	for _, tx := range txs {
		switch tx.Type {
		case model.Income:
			income += tx.Amount
		case model.Expense:
			expense += tx.Amount
		}
	}
	return income, expense
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(whole)).
		Round(1).
		InexactFloat64()
}
