package model

import "time"

// Budget is a monthly spending ceiling. A nil MainCategory marks the total
// budget for the month.
type Budget struct {
	ID           int64
	Year         int
	Month        int
	MainCategory *string
	Amount       int64
	CreatedAt    time.Time
}

// IsTotal reports whether the row is the month's total budget.
func (b Budget) IsTotal() bool {
	return b.MainCategory == nil
}

// CategoryName returns the category, or "" for the total row.
func (b Budget) CategoryName() string {
	if b.MainCategory == nil {
		return ""
	}
	return *b.MainCategory
}

// BudgetChange is one row of a budget save: upsert when Amount > 0,
// delete otherwise.
type BudgetChange struct {
	MainCategory *string
	Amount       int64
}

// Delete reports whether the change removes the row.
func (c BudgetChange) Delete() bool {
	return c.Amount <= 0
}

// CategoryPtr returns a pointer to name for use as a budget category key.
func CategoryPtr(name string) *string {
	return &name
}
