package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// ListBudgets returns a month's budget rows: the total (nil category) row
// first, then category rows by name.
func (d *DB) ListBudgets(ctx context.Context, ym model.YearMonth) ([]model.Budget, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+budgetColumns+` FROM budgets
		WHERE year = ? AND month = ?
		ORDER BY mainCategory IS NOT NULL, mainCategory ASC`, ym.Year, ym.Month)
	if err != nil {
		return nil, fmt.Errorf("listing budgets of %s: %w", ym, err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// TotalBudget returns the month's total budget, with ok == false when none
// is set.
func (d *DB) TotalBudget(ctx context.Context, ym model.YearMonth) (int64, bool, error) {
	var amount int64
	err := d.db.QueryRowContext(ctx, `SELECT amount FROM budgets
		WHERE year = ? AND month = ? AND mainCategory IS NULL`, ym.Year, ym.Month).Scan(&amount)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading total budget of %s: %w", ym, err)
	}
	return amount, true, nil
}

// UpsertBudget sets the budget for (ym, category). A nil category is the
// month's total budget.
func (d *DB) UpsertBudget(ctx context.Context, ym model.YearMonth, category *string, amount int64) error {
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		return d.upsertBudget(ctx, tx, ym, category, amount)
	})
	if err != nil {
		return fmt.Errorf("saving budget %s/%s: %w", ym, budgetLabel(category), err)
	}
	return nil
}

// DeleteBudget removes the budget for (ym, category).
func (d *DB) DeleteBudget(ctx context.Context, ym model.YearMonth, category *string) error {
	if err := deleteBudget(ctx, d.db, ym, category); err != nil {
		return fmt.Errorf("deleting budget %s/%s: %w", ym, budgetLabel(category), err)
	}
	return nil
}

// ApplyBudgets applies a batch of upserts and deletes in one transaction.
// Either every change lands or none does.
func (d *DB) ApplyBudgets(ctx context.Context, ym model.YearMonth, changes []model.BudgetChange) error {
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		for _, c := range changes {
			var err error
			if c.Delete() {
				err = deleteBudget(ctx, tx, ym, c.MainCategory)
			} else {
				err = d.upsertBudget(ctx, tx, ym, c.MainCategory, c.Amount)
			}
			if err != nil {
				return fmt.Errorf("%s: %w", budgetLabel(c.MainCategory), err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("applying budgets of %s: %w", ym, err)
	}
	return nil
}

// ResetBudgets deletes every budget row of the month.
func (d *DB) ResetBudgets(ctx context.Context, ym model.YearMonth) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM budgets WHERE year = ? AND month = ?", ym.Year, ym.Month)
	if err != nil {
		return fmt.Errorf("resetting budgets of %s: %w", ym, err)
	}
	return nil
}

// upsertBudget relies on ON CONFLICT for category rows. SQLite treats
// NULLs as distinct under UNIQUE, so the total row is updated in place and
// inserted only when no row matched.
func (d *DB) upsertBudget(ctx context.Context, q querier, ym model.YearMonth, category *string, amount int64) error {
	if category == nil {
		res, err := q.ExecContext(ctx, `UPDATE budgets SET amount = ?
			WHERE year = ? AND month = ? AND mainCategory IS NULL`, amount, ym.Year, ym.Month)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n > 0 {
			return nil
		}
		_, err = q.ExecContext(ctx, `INSERT INTO budgets (year, month, mainCategory, amount, createdAt)
			VALUES (?, ?, NULL, ?, ?)`, ym.Year, ym.Month, amount, d.stamp())
		return err
	}

	_, err := q.ExecContext(ctx, `INSERT INTO budgets (year, month, mainCategory, amount, createdAt)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(year, month, mainCategory) DO UPDATE SET amount = excluded.amount`,
		ym.Year, ym.Month, *category, amount, d.stamp())
	return err
}

func deleteBudget(ctx context.Context, q querier, ym model.YearMonth, category *string) error {
	_, err := q.ExecContext(ctx, `DELETE FROM budgets
		WHERE year = ? AND month = ? AND mainCategory IS ?`, ym.Year, ym.Month, nullCategory(category))
	return err
}

func budgetLabel(category *string) string {
	if category == nil {
		return "total"
	}
	return *category
}
