package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theirongolddev/gagyebu/internal/compare"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/store"
)

var feb = model.YearMonth{Year: 2026, Month: 2}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 12, 0, 0, 0, time.Local)
}

func TestDailyAverageAndDaysRemaining(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		average   int64
		remaining int
	}{
		{"current month", day(2026, 2, 10), 10000, 19},
		{"past month", day(2026, 5, 1), 3571, 0},
		{"future month", day(2025, 12, 31), 0, 28},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DailyAverage(feb, 100000, tt.today); got != tt.average {
				t.Errorf("DailyAverage = %d, want %d", got, tt.average)
			}
			if got := DaysRemaining(feb, tt.today); got != tt.remaining {
				t.Errorf("DaysRemaining = %d, want %d", got, tt.remaining)
			}
		})
	}
}

func TestFillCalendar(t *testing.T) {
	rows := []model.DailySummaryRow{
		{Date: "2026-02-03", Expense: 80000},
		{Date: "2026-02-25", Income: 3000000},
	}
	days := FillCalendar(feb, rows)
	if len(days) != 28 {
		t.Fatalf("got %d days, want 28", len(days))
	}
	if days[0].Date != "2026-02-01" || days[0].Expense != 0 {
		t.Errorf("day 1 = %+v", days[0])
	}
	if days[2].Expense != 80000 || days[24].Income != 3000000 {
		t.Errorf("filled rows lost data: %+v %+v", days[2], days[24])
	}
}

func TestCalendarWeeks(t *testing.T) {
	// 2026-02-01 is a Sunday; 28 days fill exactly four weeks.
	weeks := CalendarWeeks(feb)
	if len(weeks) != 4 {
		t.Fatalf("got %d weeks, want 4", len(weeks))
	}
	if weeks[0][0] != 1 || weeks[3][6] != 28 {
		t.Errorf("weeks = %v", weeks)
	}

	// 2026-03-01 is a Sunday too, with 31 days spilling into a fifth week.
	mar := CalendarWeeks(model.YearMonth{Year: 2026, Month: 3})
	if len(mar) != 5 || mar[4][2] != 31 || mar[4][3] != 0 {
		t.Errorf("march weeks = %v", mar)
	}
}

func TestShares(t *testing.T) {
	shares := CategoryShares([]model.CategorySummaryRow{
		{Category: "식비", Amount: 80000},
		{Category: "교통/차량", Amount: 20000},
	})
	if shares[0].Percent != 80 || shares[1].Percent != 20 {
		t.Errorf("shares = %+v", shares)
	}
	if got := PaymentShares(nil); len(got) != 0 {
		t.Errorf("PaymentShares(nil) = %+v", got)
	}
}

func TestTotalsAndFilter(t *testing.T) {
	txs := []model.Transaction{
		{Type: model.Expense, Amount: 100},
		{Type: model.Income, Amount: 1000},
		{Type: model.Expense, Amount: 50},
	}
	in, out := Totals(txs)
	if in != 1000 || out != 150 {
		t.Errorf("Totals = %d, %d; want 1000, 150", in, out)
	}
	if got := FilterByType(txs, model.Expense); len(got) != 2 {
		t.Errorf("FilterByType(expense) len = %d, want 2", len(got))
	}
}

func openStore(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), store.DefaultFileName))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func insert(t *testing.T, db *store.DB, date string, amount int64, typ model.TxType, cat, pay string) {
	t.Helper()
	_, err := db.InsertTransaction(context.Background(), model.Transaction{
		Date: date, Amount: amount, Type: typ, MainCategory: cat, PaymentMethod: pay,
	})
	if err != nil {
		t.Fatalf("InsertTransaction: %v", err)
	}
}

func TestLoaderViews(t *testing.T) {
	db := openStore(t)
	ctx := context.Background()

	insert(t, db, "2026-01-15", 80000, model.Expense, "식비", "현금")
	insert(t, db, "2026-02-03", 50000, model.Expense, "식비", "체크카드")
	insert(t, db, "2026-02-03", 30000, model.Expense, "식비", "신용카드")
	insert(t, db, "2026-02-10", 20000, model.Expense, "교통/차량", "체크카드")
	insert(t, db, "2026-02-25", 3000000, model.Income, "급여", "계좌이체")
	if err := db.UpsertBudget(ctx, feb, nil, 90000); err != nil {
		t.Fatalf("UpsertBudget: %v", err)
	}
	if err := db.UpsertBudget(ctx, feb, model.CategoryPtr("식비"), 60000); err != nil {
		t.Fatalf("UpsertBudget: %v", err)
	}

	l := NewLoader(db, WithNow(func() time.Time { return day(2026, 2, 10) }), WithRecentLimit(2))

	home, err := l.Home(ctx, feb)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if home.Summary.TotalExpense != 100000 || home.Summary.TotalIncome != 3000000 {
		t.Errorf("home summary = %+v", home.Summary)
	}
	if len(home.Daily) != 3 {
		t.Errorf("home daily rows = %d, want 3 (sparse)", len(home.Daily))
	}
	if len(home.Recent) != 2 || home.Recent[0].Date != "2026-02-10" {
		t.Errorf("home recent = %+v", home.Recent)
	}
	if home.TodayExpense != 20000 {
		t.Errorf("TodayExpense = %d, want 20000", home.TodayExpense)
	}
	if home.DailyAverage != 10000 || home.DaysRemaining != 19 {
		t.Errorf("average %d remaining %d, want 10000 and 19", home.DailyAverage, home.DaysRemaining)
	}
	if !home.HasBudget || home.BudgetRemaining != -10000 {
		t.Errorf("budget %d remaining %d", home.TotalBudget, home.BudgetRemaining)
	}

	sum, err := l.Summary(ctx, feb)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Previous.TotalExpense != 80000 {
		t.Errorf("previous expense = %d, want 80000", sum.Previous.TotalExpense)
	}
	if sum.Comparison.Trend != compare.TrendUp || sum.Comparison.PercentLabel() != "+25.0%" {
		t.Errorf("comparison = %s %q", sum.Comparison.Trend, sum.Comparison.PercentLabel())
	}
	if sum.Income != 3000000 {
		t.Errorf("income = %d", sum.Income)
	}
	if sum.OverBudget() != 10000 {
		t.Errorf("OverBudget = %d, want 10000", sum.OverBudget())
	}
	if len(sum.Budget.Categories) != 1 || sum.Budget.Spent != 80000 || sum.Budget.Total != 90000 {
		t.Errorf("budget status = %+v", sum.Budget)
	}
	if sum.Comparison.CurrentTopPayment == nil || sum.Comparison.CurrentTopPayment.PaymentMethod != "체크카드" {
		t.Errorf("top payment = %+v", sum.Comparison.CurrentTopPayment)
	}
}

// blockingSource counts fetches and holds them until release is closed.
type blockingSource struct {
	Source
	calls   atomic.Int32
	release chan struct{}
}

func (b *blockingSource) MonthlySummary(ctx context.Context, ym model.YearMonth) (model.MonthlySummary, error) {
	b.calls.Add(1)
	<-b.release
	return model.MonthlySummary{Year: ym.Year, Month: ym.Month, TotalExpense: 42}, nil
}

func (b *blockingSource) DailySummary(context.Context, model.YearMonth) ([]model.DailySummaryRow, error) {
	return nil, nil
}

func (b *blockingSource) RecentExpenses(context.Context, model.YearMonth, int) ([]model.Transaction, error) {
	return nil, nil
}

func (b *blockingSource) ExpenseTotalOn(context.Context, string) (int64, error) { return 0, nil }

func (b *blockingSource) TotalBudget(context.Context, model.YearMonth) (int64, bool, error) {
	return 0, false, nil
}

func TestLoaderSharesInflightFetch(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	l := NewLoader(src)

	const callers = 5
	var wg sync.WaitGroup
	results := make([]HomeView, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := l.Home(context.Background(), feb)
			if err != nil {
				t.Errorf("Home: %v", err)
			}
			results[i] = v
		}(i)
	}

	// Let every caller join before the fetch completes.
	deadline := time.Now().Add(2 * time.Second)
	for src.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	time.Sleep(20 * time.Millisecond)
	close(src.release)
	wg.Wait()

	if n := src.calls.Load(); n != 1 {
		t.Errorf("MonthlySummary fetched %d times, want 1", n)
	}
	for i, v := range results {
		if v.Summary.TotalExpense != 42 {
			t.Errorf("caller %d got expense %d, want 42", i, v.Summary.TotalExpense)
		}
	}
}

func TestLoaderCallerCancellation(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	l := NewLoader(src)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Home(ctx, feb)
		done <- err
	}()

	other := make(chan HomeView, 1)
	go func() {
		v, _ := l.Home(context.Background(), feb)
		other <- v
	}()

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled caller got %v, want context.Canceled", err)
	}

	close(src.release)
	if v := <-other; v.Summary.TotalExpense != 42 {
		t.Errorf("other caller got expense %d, want 42", v.Summary.TotalExpense)
	}
}

func TestLoaderVersionSeparatesFetches(t *testing.T) {
	src := &blockingSource{release: make(chan struct{})}
	close(src.release)
	var version atomic.Int64
	l := NewLoader(src, WithVersion(version.Load))

	if _, err := l.Home(context.Background(), feb); err != nil {
		t.Fatalf("Home: %v", err)
	}
	version.Add(1)
	v, err := l.Home(context.Background(), feb)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if v.Version != 1 {
		t.Errorf("Version = %d, want 1", v.Version)
	}
	if n := src.calls.Load(); n != 2 {
		t.Errorf("fetches = %d, want 2", n)
	}
}
