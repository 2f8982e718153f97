// Package model defines the domain types shared by the store, the budget
// and comparison logic, and the front ends.
package model

import "time"

// DateLayout is the on-disk and on-screen layout of a transaction date.
const DateLayout = "2006-01-02"

// MinYear is the earliest year a transaction date may carry.
const MinYear = 1900

// TxType partitions transactions into money spent and money received.
type TxType string

// Transaction types.
const (
	Expense TxType = "expense"
	Income  TxType = "income"
)

// Valid reports whether t is one of the known transaction types.
func (t TxType) Valid() bool {
	return t == Expense || t == Income
}

// Label returns the Korean label shown in lists and exports.
func (t TxType) Label() string {
	switch t {
	case Expense:
		return "지출"
	case Income:
		return "수입"
	default:
		return string(t)
	}
}

// Transaction is a single dated money movement.
type Transaction struct {
	ID            int64     `validate:"gte=0"`
	Date          string    `validate:"required,yyyymmdd"`
	Amount        int64     `validate:"gt=0"`
	Type          TxType    `validate:"required,txtype"`
	MainCategory  string    `validate:"required,max=40"`
	SubCategory   string    `validate:"max=40"`
	PaymentMethod string    `validate:"required,max=20"`
	Memo          string    `validate:"max=200"`
	CreatedAt     time.Time `validate:"-"`
}

// Day parses the transaction date. The zero time is returned for malformed
// dates, which validation rejects before they reach storage.
func (t Transaction) Day() time.Time {
	d, err := time.Parse(DateLayout, t.Date)
	if err != nil {
		return time.Time{}
	}
	return d
}

// Month returns the aggregation window the transaction belongs to.
func (t Transaction) Month() YearMonth {
	return YearMonthOf(t.Day())
}

// Category is a main category users can pick when entering an expense.
type Category struct {
	ID        int64
	Name      string
	IsDefault bool
	CreatedAt time.Time
}
