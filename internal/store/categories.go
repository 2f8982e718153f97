package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// ListCategories returns default categories first, then user additions in
// the order they were created.
func (d *DB) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+categoryColumns+` FROM categories
		ORDER BY isDefault DESC, createdAt ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AddCategory creates a user category and returns it.
func (d *DB) AddCategory(ctx context.Context, name string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, model.ErrEmptyCategoryName
	}

	var c model.Category
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO categories (name, isDefault, createdAt)
			SELECT ?, 0, ? WHERE NOT EXISTS (SELECT 1 FROM categories WHERE name = ?)`,
			name, d.stamp(), name)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err != nil {
			return err
		} else if n == 0 {
			return fmt.Errorf("%q: %w", name, model.ErrDuplicateCategory)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		c, err = scanCategory(tx.QueryRowContext(ctx,
			"SELECT "+categoryColumns+" FROM categories WHERE id = ?", id))
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateCategory) {
			return model.Category{}, err
		}
		return model.Category{}, fmt.Errorf("adding category %q: %w", name, err)
	}
	return c, nil
}

// DeleteCategory removes a user category. Seeded default categories are
// refused with model.ErrDefaultCategory.
func (d *DB) DeleteCategory(ctx context.Context, id int64) error {
	err := d.inTx(ctx, func(tx *sql.Tx) error {
		var isDefault int
		err := tx.QueryRowContext(ctx, "SELECT isDefault FROM categories WHERE id = ?", id).Scan(&isDefault)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("category %d: %w", id, model.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if isDefault != 0 {
			return fmt.Errorf("category %d: %w", id, model.ErrDefaultCategory)
		}
		_, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ? AND isDefault = 0", id)
		return err
	})
	if err != nil && !errors.Is(err, model.ErrNotFound) && !errors.Is(err, model.ErrDefaultCategory) {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}
	return err
}
