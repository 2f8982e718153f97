package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// InsertTransaction stores t and returns its new id. A zero CreatedAt is
// stamped with the store clock.
func (d *DB) InsertTransaction(ctx context.Context, t model.Transaction) (int64, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = d.now()
	}
	ym := t.Month()

	res, err := d.db.ExecContext(ctx, `INSERT INTO transactions
		(date, year, month, amount, type, mainCategory, subCategory, paymentMethod, memo, createdAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Date, ym.Year, ym.Month, t.Amount, string(t.Type), t.MainCategory,
		nullString(t.SubCategory), t.PaymentMethod, nullString(t.Memo), formatTime(t.CreatedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	return res.LastInsertId()
}

// UpdateTransaction rewrites every field of t except id and createdAt.
func (d *DB) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	if t.ID == 0 {
		return model.ErrMissingID
	}
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}
	ym := t.Month()

	res, err := d.db.ExecContext(ctx, `UPDATE transactions SET
		date = ?, year = ?, month = ?, amount = ?, type = ?, mainCategory = ?,
		subCategory = ?, paymentMethod = ?, memo = ?
		WHERE id = ?`,
		t.Date, ym.Year, ym.Month, t.Amount, string(t.Type), t.MainCategory,
		nullString(t.SubCategory), t.PaymentMethod, nullString(t.Memo), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction %d: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("transaction %d: %w", t.ID, model.ErrNotFound)
	}
	return nil
}

// DeleteTransaction removes a transaction. Deleting a missing id is a no-op.
func (d *DB) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := d.db.ExecContext(ctx, "DELETE FROM transactions WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting transaction %d: %w", id, err)
	}
	return nil
}

// GetTransaction returns the transaction with the given id. A missing row
// is reported as ok == false, not as an error.
func (d *DB) GetTransaction(ctx context.Context, id int64) (model.Transaction, bool, error) {
	row := d.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE id = ?", id)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Transaction{}, false, nil
	}
	if err != nil {
		return model.Transaction{}, false, fmt.Errorf("reading transaction %d: %w", id, err)
	}
	return t, true, nil
}

// AllTransactions returns every transaction, newest date first and, within
// a date, most recently created first.
func (d *DB) AllTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+transactionColumns+` FROM transactions
		ORDER BY date DESC, createdAt DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return scanTransactions(rows)
}

// TransactionsOfMonth returns the month's transactions in list order.
func (d *DB) TransactionsOfMonth(ctx context.Context, ym model.YearMonth) ([]model.Transaction, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+transactionColumns+` FROM transactions
		WHERE year = ? AND month = ?
		ORDER BY date DESC, createdAt DESC, id DESC`, ym.Year, ym.Month)
	if err != nil {
		return nil, fmt.Errorf("listing transactions of %s: %w", ym, err)
	}
	return scanTransactions(rows)
}

// TransactionsByDate returns one day's transactions, most recently created
// first.
func (d *DB) TransactionsByDate(ctx context.Context, date string) ([]model.Transaction, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+transactionColumns+` FROM transactions
		WHERE date = ?
		ORDER BY createdAt DESC, id DESC`, date)
	if err != nil {
		return nil, fmt.Errorf("listing transactions on %s: %w", date, err)
	}
	return scanTransactions(rows)
}
