package model

import (
	"errors"
	"testing"
	"time"
)

func validTx() Transaction {
	return Transaction{
		Date:          "2026-02-03",
		Amount:        15000,
		Type:          Expense,
		MainCategory:  "식비",
		PaymentMethod: "체크카드",
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Transaction)
		field  string
	}{
		{"valid", func(*Transaction) {}, ""},
		{"zero amount", func(tx *Transaction) { tx.Amount = 0 }, "Amount"},
		{"negative amount", func(tx *Transaction) { tx.Amount = -100 }, "Amount"},
		{"bad date", func(tx *Transaction) { tx.Date = "2026-02-30" }, "Date"},
		{"year one", func(tx *Transaction) { tx.Date = "0001-01-01" }, "Date"},
		{"before min year", func(tx *Transaction) { tx.Date = "1899-12-31" }, "Date"},
		{"slashed date", func(tx *Transaction) { tx.Date = "2026/02/03" }, "Date"},
		{"unknown type", func(tx *Transaction) { tx.Type = "transfer" }, "Type"},
		{"missing category", func(tx *Transaction) { tx.MainCategory = "" }, "MainCategory"},
		{"missing payment", func(tx *Transaction) { tx.PaymentMethod = "" }, "PaymentMethod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTx()
			tt.mutate(&tx)
			err := tx.Validate()

			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidTransaction) {
				t.Fatalf("Validate() = %v, want ErrInvalidTransaction", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error type = %T, want *ValidationError", err)
			}
			if _, ok := verr.Fields[tt.field]; !ok {
				t.Errorf("failed fields = %v, want %s", verr.Fields, tt.field)
			}
		})
	}
}

func TestNormalizeTrims(t *testing.T) {
	tx := Transaction{Date: " 2026-02-03 ", MainCategory: " 식비\t", Memo: "  점심 "}.Normalize()
	if tx.Date != "2026-02-03" || tx.MainCategory != "식비" || tx.Memo != "점심" {
		t.Fatalf("Normalize() = %+v", tx)
	}
}

func TestYearMonthNavigation(t *testing.T) {
	tests := []struct {
		ym         YearMonth
		prev, next YearMonth
		days       int
	}{
		{YearMonth{2026, 1}, YearMonth{2025, 12}, YearMonth{2026, 2}, 31},
		{YearMonth{2026, 2}, YearMonth{2026, 1}, YearMonth{2026, 3}, 28},
		{YearMonth{2024, 2}, YearMonth{2024, 1}, YearMonth{2024, 3}, 29},
		{YearMonth{2026, 12}, YearMonth{2026, 11}, YearMonth{2027, 1}, 31},
	}
	for _, tt := range tests {
		if got := tt.ym.Prev(); got != tt.prev {
			t.Errorf("%s.Prev() = %s, want %s", tt.ym, got, tt.prev)
		}
		if got := tt.ym.Next(); got != tt.next {
			t.Errorf("%s.Next() = %s, want %s", tt.ym, got, tt.next)
		}
		if got := tt.ym.Days(); got != tt.days {
			t.Errorf("%s.Days() = %d, want %d", tt.ym, got, tt.days)
		}
	}
}

func TestParseYearMonth(t *testing.T) {
	ym, err := ParseYearMonth("2026-02")
	if err != nil {
		t.Fatalf("ParseYearMonth: %v", err)
	}
	if ym != (YearMonth{2026, 2}) {
		t.Fatalf("got %v, want 2026-02", ym)
	}
	if ym.Label() != "2026년 2월" {
		t.Errorf("Label() = %q", ym.Label())
	}
	if _, err := ParseYearMonth("2026-13"); err == nil {
		t.Error("ParseYearMonth(2026-13) succeeded, want error")
	}
}

func TestTransactionMonth(t *testing.T) {
	tx := validTx()
	if got := tx.Month(); got != (YearMonth{2026, 2}) {
		t.Fatalf("Month() = %v, want 2026-02", got)
	}
	tx.Date = "garbage"
	if !tx.Month().IsZero() {
		t.Fatalf("Month() of malformed date = %v, want zero", tx.Month())
	}
	if !(YearMonth{2026, 2}).Contains(time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC)) {
		t.Error("Contains(Feb 28) = false")
	}
}

func TestCheckCatalog(t *testing.T) {
	expense := []string{"식비", "반려동물"}

	tx := validTx()
	if err := tx.CheckCatalog(expense); err != nil {
		t.Fatalf("CheckCatalog(valid) = %v", err)
	}

	tx.MainCategory = "반려동물"
	if err := tx.CheckCatalog(expense); err != nil {
		t.Errorf("user category rejected: %v", err)
	}

	income := Transaction{Type: Income, MainCategory: "급여", PaymentMethod: "신용카드"}
	err := income.CheckCatalog(expense)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("CheckCatalog(income by card) = %v, want *ValidationError", err)
	}
	if verr.Fields["PaymentMethod"] != "catalog" || len(verr.Fields) != 1 {
		t.Errorf("failed fields = %v, want PaymentMethod only", verr.Fields)
	}
}
