// Package export writes a month of the ledger to an Excel workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
)

// Sheet names, in workbook order.
const (
	SheetTransactions = "거래내역"
	SheetCategories   = "카테고리"
	SheetPayments     = "결제수단"
)

// Month is the data written for one month.
type Month struct {
	Month        model.YearMonth
	Transactions []model.Transaction
	Summary      model.MonthlySummary
	Payments     []model.PaymentSummaryRow
}

// WriteMonth writes m to an XLSX file at path, replacing any file there.
func WriteMonth(path string, m Month) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetTransactions); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	for _, name := range []string{SheetCategories, SheetPayments} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	won, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return err
	}

	w := &sheetWriter{f: f, header: header, won: won}
	w.transactions(m.Transactions)
	w.shares(SheetCategories, "카테고리", pipeline.CategoryShares(m.Summary.ByCategory), m.Summary.TotalExpense)
	w.shares(SheetPayments, "결제수단", pipeline.PaymentShares(m.Payments), m.Summary.TotalExpense)
	if w.err != nil {
		return fmt.Errorf("writing %s: %w", m.Month, w.err)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// sheetWriter keeps the first error so the row loops stay flat.
type sheetWriter struct {
	f      *excelize.File
	header int
	won    int
	err    error
}

func (w *sheetWriter) row(sheet string, row int, values ...any) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(sheet, cell, &values)
}

func (w *sheetWriter) style(sheet, from, to string, style int) {
	if w.err != nil {
		return
	}
	w.err = w.f.SetCellStyle(sheet, from, to, style)
}

func (w *sheetWriter) widths(sheet string, widths ...float64) {
	for i, width := range widths {
		if w.err != nil {
			return
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			w.err = err
			return
		}
		w.err = w.f.SetColWidth(sheet, col, col, width)
	}
}

func (w *sheetWriter) transactions(txs []model.Transaction) {
	const sheet = SheetTransactions
	w.row(sheet, 1, "날짜", "구분", "카테고리", "세부 카테고리", "결제수단", "금액", "메모")
	w.style(sheet, "A1", "G1", w.header)

	for i, t := range txs {
		w.row(sheet, i+2, t.Date, t.Type.Label(), t.MainCategory, t.SubCategory, t.PaymentMethod, t.Amount, t.Memo)
	}
	if len(txs) > 0 {
		w.style(sheet, "F2", fmt.Sprintf("F%d", len(txs)+1), w.won)
	}
	w.widths(sheet, 12, 6, 14, 14, 10, 14, 30)
}

func (w *sheetWriter) shares(sheet, label string, shares []model.Share, total int64) {
	w.row(sheet, 1, label, "금액", "비율(%)")
	w.style(sheet, "A1", "C1", w.header)

	for i, s := range shares {
		w.row(sheet, i+2, s.Label, s.Amount, s.Percent)
	}
	last := len(shares) + 2
	w.row(sheet, last, "합계", total)
	w.style(sheet, fmt.Sprintf("A%d", last), fmt.Sprintf("A%d", last), w.header)
	w.style(sheet, "B2", fmt.Sprintf("B%d", last), w.won)
	w.widths(sheet, 14, 14, 10)
}
