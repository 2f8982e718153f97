package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// Month membership is always the integer (year, month) pair written from
// the parsed date, never a text prefix of the date column.

// MonthlySummary returns the month's income and expense totals and the
// expense breakdown by main category, read in one transaction so the
// totals and the breakdown agree.
func (d *DB) MonthlySummary(ctx context.Context, ym model.YearMonth) (model.MonthlySummary, error) {
	s := model.MonthlySummary{Year: ym.Year, Month: ym.Month}

	err := d.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT
			COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0),
			COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0)
			FROM transactions WHERE year = ? AND month = ?`, ym.Year, ym.Month,
		).Scan(&s.TotalIncome, &s.TotalExpense)
		if err != nil {
			return err
		}
		s.ByCategory, err = categoryBreakdown(ctx, tx, ym)
		return err
	})
	if err != nil {
		return model.MonthlySummary{}, fmt.Errorf("monthly summary of %s: %w", ym, err)
	}
	return s, nil
}

// CategoryBreakdown returns expense totals per main category, largest
// first, ties by name.
func (d *DB) CategoryBreakdown(ctx context.Context, ym model.YearMonth) ([]model.CategorySummaryRow, error) {
	rows, err := categoryBreakdown(ctx, d.db, ym)
	if err != nil {
		return nil, fmt.Errorf("category breakdown of %s: %w", ym, err)
	}
	return rows, nil
}

func categoryBreakdown(ctx context.Context, q querier, ym model.YearMonth) ([]model.CategorySummaryRow, error) {
	rows, err := q.QueryContext(ctx, `SELECT mainCategory, SUM(amount) AS total
		FROM transactions
		WHERE year = ? AND month = ? AND type = 'expense'
		GROUP BY mainCategory
		ORDER BY total DESC, mainCategory ASC`, ym.Year, ym.Month)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := []model.CategorySummaryRow{}
	for rows.Next() {
		var r model.CategorySummaryRow
		if err := rows.Scan(&r.Category, &r.Amount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PaymentBreakdown returns expense totals per payment method, largest
// first, ties by name.
func (d *DB) PaymentBreakdown(ctx context.Context, ym model.YearMonth) ([]model.PaymentSummaryRow, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT paymentMethod, SUM(amount) AS total
		FROM transactions
		WHERE year = ? AND month = ? AND type = 'expense'
		GROUP BY paymentMethod
		ORDER BY total DESC, paymentMethod ASC`, ym.Year, ym.Month)
	if err != nil {
		return nil, fmt.Errorf("payment breakdown of %s: %w", ym, err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.PaymentSummaryRow{}
	for rows.Next() {
		var r model.PaymentSummaryRow
		if err := rows.Scan(&r.PaymentMethod, &r.Amount); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DailySummary returns one row per date that has transactions in the
// month, ascending. Dates without transactions are absent.
func (d *DB) DailySummary(ctx context.Context, ym model.YearMonth) ([]model.DailySummaryRow, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT date,
		COALESCE(SUM(CASE WHEN type = 'income' THEN amount END), 0),
		COALESCE(SUM(CASE WHEN type = 'expense' THEN amount END), 0)
		FROM transactions
		WHERE year = ? AND month = ?
		GROUP BY date
		ORDER BY date ASC`, ym.Year, ym.Month)
	if err != nil {
		return nil, fmt.Errorf("daily summary of %s: %w", ym, err)
	}
	defer func() { _ = rows.Close() }()

	out := []model.DailySummaryRow{}
	for rows.Next() {
		var r model.DailySummaryRow
		if err := rows.Scan(&r.Date, &r.Income, &r.Expense); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RecentExpenses returns up to limit of the month's latest expenses.
func (d *DB) RecentExpenses(ctx context.Context, ym model.YearMonth, limit int) ([]model.Transaction, error) {
	if limit <= 0 {
		return []model.Transaction{}, nil
	}
	rows, err := d.db.QueryContext(ctx, "SELECT "+transactionColumns+` FROM transactions
		WHERE year = ? AND month = ? AND type = 'expense'
		ORDER BY date DESC, createdAt DESC, id DESC
		LIMIT ?`, ym.Year, ym.Month, limit)
	if err != nil {
		return nil, fmt.Errorf("recent expenses of %s: %w", ym, err)
	}
	return scanTransactions(rows)
}

// ExpenseTotalOn returns the expense total for one exact date.
func (d *DB) ExpenseTotalOn(ctx context.Context, date string) (int64, error) {
	var total int64
	err := d.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0)
		FROM transactions WHERE date = ? AND type = 'expense'`, date).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("expense total on %s: %w", date, err)
	}
	return total, nil
}

// IncomeTotal returns the month's income total.
func (d *DB) IncomeTotal(ctx context.Context, ym model.YearMonth) (int64, error) {
	var total int64
	err := d.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0)
		FROM transactions WHERE year = ? AND month = ? AND type = 'income'`,
		ym.Year, ym.Month).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("income total of %s: %w", ym, err)
	}
	return total, nil
}
