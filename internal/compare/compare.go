// Package compare contrasts a month's spending with the month before it.
package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
)

// Trend classifies the change in total expense.
type Trend int

const (
	TrendNone Trend = iota // no spending in either month
	TrendNew               // spending this month after none last month
	TrendUp
	TrendDown
	TrendSame
)

func (t Trend) String() string {
	switch t {
	case TrendNone:
		return "none"
	case TrendNew:
		return "new"
	case TrendUp:
		return "up"
	case TrendDown:
		return "down"
	case TrendSame:
		return "same"
	}
	return "unknown"
}

// Comparison is the month-over-month result.
type Comparison struct {
	Current  int64
	Previous int64
	Delta    int64
	Trend    Trend

	// Percent is (current - previous) / previous * 100 rounded to one
	// decimal, signed. It is only meaningful when HasPercent is set.
	Percent    decimal.Decimal
	HasPercent bool

	CurrentTopCategory  *model.CategorySummaryRow
	PreviousTopCategory *model.CategorySummaryRow
	CurrentTopPayment   *model.PaymentSummaryRow
	PreviousTopPayment  *model.PaymentSummaryRow
}

// Compare contrasts two months. The breakdowns are expected sorted largest
// first, as the store returns them.
func Compare(cur, prev model.MonthlySummary, curPay, prevPay []model.PaymentSummaryRow) Comparison {
	c := Comparison{
		Current:             cur.TotalExpense,
		Previous:            prev.TotalExpense,
		Delta:               cur.TotalExpense - prev.TotalExpense,
		CurrentTopCategory:  firstCategory(cur.ByCategory),
		PreviousTopCategory: firstCategory(prev.ByCategory),
		CurrentTopPayment:   firstPayment(curPay),
		PreviousTopPayment:  firstPayment(prevPay),
	}

	switch {
	case c.Previous == 0 && c.Current == 0:
		c.Trend = TrendNone
		return c
	case c.Previous == 0:
		c.Trend = TrendNew
		return c
	}

	c.HasPercent = true
	c.Percent = decimal.NewFromInt(c.Delta).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(c.Previous)).
		Round(1)

	switch {
	case c.Delta > 0:
		c.Trend = TrendUp
	case c.Delta < 0:
		c.Trend = TrendDown
	default:
		c.Trend = TrendSame
	}
	return c
}

// Describe renders the comparison as a sentence.
func (c Comparison) Describe() string {
	switch c.Trend {
	case TrendNone:
		return "지난 달과 이번 달 모두 지출이 없어요."
	case TrendNew:
		return "지난 달에는 지출이 없었고, 이번 달에 새로 지출이 생겼어요."
	case TrendUp:
		return fmt.Sprintf("지난 달보다 %s (%s) 더 썼어요.", cli.FormatWon(c.Delta), cli.FormatPercent(c.Percent))
	case TrendDown:
		return fmt.Sprintf("지난 달보다 %s (%s) 덜 썼어요.", cli.FormatWon(-c.Delta), cli.FormatPercent(c.Percent.Abs()))
	default:
		return "지난 달과 이번 달 총 지출이 똑같아요."
	}
}

// PercentLabel returns the signed percentage, or "" when there is none.
func (c Comparison) PercentLabel() string {
	if !c.HasPercent {
		return ""
	}
	return cli.FormatSignedPercent(c.Percent)
}

// TopCategoryLabels returns the top category of each month as
// "name amount", or "-" for a month without expenses.
func (c Comparison) TopCategoryLabels() (prev, cur string) {
	return categoryLabel(c.PreviousTopCategory), categoryLabel(c.CurrentTopCategory)
}

// TopPaymentLabels is TopCategoryLabels for payment methods.
func (c Comparison) TopPaymentLabels() (prev, cur string) {
	return paymentLabel(c.PreviousTopPayment), paymentLabel(c.CurrentTopPayment)
}

func categoryLabel(r *model.CategorySummaryRow) string {
	if r == nil {
		return "-"
	}
	return r.Category + " " + cli.FormatManWon(r.Amount)
}

func paymentLabel(r *model.PaymentSummaryRow) string {
	if r == nil {
		return "-"
	}
	return r.PaymentMethod + " " + cli.FormatManWon(r.Amount)
}

func firstCategory(rows []model.CategorySummaryRow) *model.CategorySummaryRow {
	if len(rows) == 0 {
		return nil
	}
	r := rows[0]
	return &r
}

func firstPayment(rows []model.PaymentSummaryRow) *model.PaymentSummaryRow {
	if len(rows) == 0 {
		return nil
	}
	r := rows[0]
	return &r
}
