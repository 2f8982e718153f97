package store

import (
	"database/sql"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// The table definitions live in migrations/. These are the column lists
// shared by the queries in this package.
const (
	transactionColumns = `id, date, amount, type, mainCategory, subCategory, paymentMethod, memo, createdAt`
	categoryColumns    = `id, name, isDefault, createdAt`
	budgetColumns      = `id, year, month, mainCategory, amount, createdAt`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(r rowScanner) (model.Transaction, error) {
	var (
		t                 model.Transaction
		typ, created      string
		subCategory, memo sql.NullString
	)
	err := r.Scan(&t.ID, &t.Date, &t.Amount, &typ, &t.MainCategory, &subCategory,
		&t.PaymentMethod, &memo, &created)
	if err != nil {
		return t, err
	}
	t.Type = model.TxType(typ)
	t.SubCategory = subCategory.String
	t.Memo = memo.String
	t.CreatedAt = parseTime(created)
	return t, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func scanCategory(r rowScanner) (model.Category, error) {
	var (
		c         model.Category
		isDefault int
		created   string
	)
	if err := r.Scan(&c.ID, &c.Name, &isDefault, &created); err != nil {
		return c, err
	}
	c.IsDefault = isDefault != 0
	c.CreatedAt = parseTime(created)
	return c, nil
}

func scanBudget(r rowScanner) (model.Budget, error) {
	var (
		b       model.Budget
		cat     sql.NullString
		created string
	)
	if err := r.Scan(&b.ID, &b.Year, &b.Month, &cat, &b.Amount, &created); err != nil {
		return b, err
	}
	if cat.Valid {
		name := cat.String
		b.MainCategory = &name
	}
	b.CreatedAt = parseTime(created)
	return b, nil
}
