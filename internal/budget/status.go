package budget

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// Allocation is the budget editor's meter: how much of the total the
// category budgets claim.
type Allocation struct {
	Total     int64
	Allocated int64
	Remaining int64
	Usage     decimal.Decimal
	Over      bool
	Overage   decimal.Decimal
}

// Allocate measures category budgets against the total.
func Allocate(total int64, categories map[string]int64) Allocation {
	allocated := sumCategories(categories)
	a := Allocation{
		Total:     total,
		Allocated: allocated,
		Remaining: Remaining(total, allocated),
		Usage:     UsageRatio(total, allocated),
	}
	a.Overage, a.Over = OverageRatio(total, allocated)
	return a
}

// Status is one category's budget against its spending.
type Status struct {
	Category  string
	Budget    int64
	Spent     int64
	Remaining int64
	Usage     decimal.Decimal
	Over      bool
	Overage   decimal.Decimal
}

// Percent returns the usage rounded to a whole percent.
func (s Status) Percent() int64 {
	return RoundPercent(s.Usage)
}

// MonthStatus is a month's budgets reconciled against its expenses.
type MonthStatus struct {
	// Total is the total budget row, or the sum of category budgets when
	// the month has no total row.
	Total          int64
	TotalIsDerived bool

	// Spent counts only categories that carry a budget.
	Spent      int64
	Remaining  int64
	Usage      decimal.Decimal
	Categories []Status
}

// Empty reports whether the month has no budget rows at all.
func (m MonthStatus) Empty() bool {
	return m.Total == 0 && len(m.Categories) == 0
}

// Percent returns the overall usage rounded to a whole percent.
func (m MonthStatus) Percent() int64 {
	return RoundPercent(m.Usage)
}

// Reconcile pairs the budget rows of a month with its expense breakdown.
// Category statuses follow the order of budgets.
func Reconcile(budgets []model.Budget, byCategory []model.CategorySummaryRow) MonthStatus {
	spentBy := make(map[string]int64, len(byCategory))
	for _, r := range byCategory {
		spentBy[r.Category] += r.Amount
	}

	var (
		ms       MonthStatus
		hasTotal bool
		catSum   int64
	)
	for _, b := range budgets {
		if b.IsTotal() {
			ms.Total = b.Amount
			hasTotal = true
			continue
		}
		spent := spentBy[b.CategoryName()]
		st := Status{
			Category:  b.CategoryName(),
			Budget:    b.Amount,
			Spent:     spent,
			Remaining: Remaining(b.Amount, spent),
			Usage:     UsageRatio(b.Amount, spent),
		}
		st.Overage, st.Over = OverageRatio(b.Amount, spent)
		ms.Categories = append(ms.Categories, st)
		catSum += b.Amount
		ms.Spent += spent
	}
	if !hasTotal {
		ms.Total = catSum
		ms.TotalIsDerived = len(ms.Categories) > 0
	}
	ms.Remaining = Remaining(ms.Total, ms.Spent)
	ms.Usage = UsageRatio(ms.Total, ms.Spent)
	return ms
}

// Warn returns the categories whose usage has reached threshold percent.
func (m MonthStatus) Warn(threshold float64) []Status {
	limit := decimal.NewFromFloat(threshold)
	var out []Status
	for _, s := range m.Categories {
		if s.Budget > 0 && s.Usage.GreaterThanOrEqual(limit) {
			out = append(out, s)
		}
	}
	return out
}
