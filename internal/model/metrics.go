package model

// MonthlySummary holds one month's income and expense totals plus the
// expense breakdown by main category.
type MonthlySummary struct {
	Year         int
	Month        int
	TotalIncome  int64
	TotalExpense int64
	ByCategory   []CategorySummaryRow
}

// Net returns income minus expense.
func (s MonthlySummary) Net() int64 {
	return s.TotalIncome - s.TotalExpense
}

// CategorySummaryRow is the expense total of one main category.
type CategorySummaryRow struct {
	Category string
	Amount   int64
}

// PaymentSummaryRow is the expense total of one payment method.
type PaymentSummaryRow struct {
	PaymentMethod string
	Amount        int64
}

// DailySummaryRow holds income and expense sums for a single date.
type DailySummaryRow struct {
	Date    string
	Income  int64
	Expense int64
}

// Share is one labeled slice of a total, used for bars and exports.
type Share struct {
	Label   string
	Amount  int64
	Percent float64
}
