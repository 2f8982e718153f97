package budget

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Remaining returns budget minus spent. It goes negative on overspend.
func Remaining(budget, spent int64) int64 {
	return budget - spent
}

// UsageRatio returns spent as a percentage of budget, rounded to one
// decimal place. It keeps growing past 100 on overspend and is zero when
// no budget is set.
func UsageRatio(budget, spent int64) decimal.Decimal {
	if budget <= 0 {
		return decimal.Zero
	}
	return percentOf(spent, budget)
}

// OverageRatio returns how far spent exceeds budget as a percentage of
// budget. ok is false unless spent > budget > 0.
func OverageRatio(budget, spent int64) (ratio decimal.Decimal, ok bool) {
	if budget <= 0 || spent <= budget {
		return decimal.Zero, false
	}
	return percentOf(spent-budget, budget), true
}

// RoundPercent rounds a ratio to a whole percent, halves away from zero.
func RoundPercent(r decimal.Decimal) int64 {
	return r.Round(0).IntPart()
}

func percentOf(part, whole int64) decimal.Decimal {
	return decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole)).Round(1)
}
