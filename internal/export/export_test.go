package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/gagyebu/internal/model"
)

func TestWriteMonth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feb.xlsx")
	m := Month{
		Month: model.YearMonth{Year: 2026, Month: 2},
		Transactions: []model.Transaction{
			{Date: "2026-02-10", Amount: 20000, Type: model.Expense, MainCategory: "교통/차량", PaymentMethod: "체크카드"},
			{Date: "2026-02-03", Amount: 80000, Type: model.Expense, MainCategory: "식비", PaymentMethod: "신용카드", Memo: "장보기"},
		},
		Summary: model.MonthlySummary{
			TotalExpense: 100000,
			ByCategory: []model.CategorySummaryRow{
				{Category: "식비", Amount: 80000},
				{Category: "교통/차량", Amount: 20000},
			},
		},
		Payments: []model.PaymentSummaryRow{
			{PaymentMethod: "신용카드", Amount: 80000},
			{PaymentMethod: "체크카드", Amount: 20000},
		},
	}
	if err := WriteMonth(path, m); err != nil {
		t.Fatalf("WriteMonth: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	want := []string{SheetTransactions, SheetCategories, SheetPayments}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i := range want {
		if sheets[i] != want[i] {
			t.Errorf("sheet %d = %q, want %q", i, sheets[i], want[i])
		}
	}

	rows, err := f.GetRows(SheetTransactions)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("transaction rows = %d, want header + 2", len(rows))
	}
	if rows[2][2] != "식비" || rows[2][6] != "장보기" {
		t.Errorf("row 3 = %v", rows[2])
	}

	memo, err := f.GetCellValue(SheetCategories, "A4")
	if err != nil {
		t.Fatalf("GetCellValue: %v", err)
	}
	if memo != "합계" {
		t.Errorf("categories A4 = %q, want 합계", memo)
	}
	pct, _ := f.GetCellValue(SheetCategories, "C2")
	if pct != "80" {
		t.Errorf("식비 share = %q, want 80", pct)
	}
}
