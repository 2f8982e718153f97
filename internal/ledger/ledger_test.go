package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/gagyebu/internal/budget"
	"github.com/theirongolddev/gagyebu/internal/events"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/store"
)

var feb = model.YearMonth{Year: 2026, Month: 2}

func newLedger(t *testing.T) *Ledger {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), store.DefaultFileName))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	l := New(db, Options{
		Now:        func() time.Time { return time.Date(2026, 2, 10, 9, 0, 0, 0, time.Local) },
		AtomicSave: true,
	})
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func lunch() model.Transaction {
	return model.Transaction{
		Date:          "2026-02-03",
		Amount:        12000,
		Type:          model.Expense,
		MainCategory:  "식비",
		PaymentMethod: "체크카드",
		Memo:          "점심",
	}
}

func TestAddTransactionPublishes(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()
	_, ch := l.Bus().Subscribe(4)

	tx, err := l.AddTransaction(ctx, lunch())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	if tx.ID == 0 || tx.CreatedAt.IsZero() {
		t.Errorf("stored transaction = %+v, want id and createdAt", tx)
	}

	ev := <-ch
	if ev.Kind != events.Transactions || ev.Month != feb || ev.Version != 1 {
		t.Errorf("event = %+v", ev)
	}
}

func TestAddTransactionRejectsUnknownCatalog(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	tx := lunch()
	tx.MainCategory = "우주여행"
	if _, err := l.AddTransaction(ctx, tx); !errors.Is(err, model.ErrInvalidTransaction) {
		t.Fatalf("AddTransaction(unknown category) = %v, want ErrInvalidTransaction", err)
	}

	income := model.Transaction{Date: "2026-02-25", Amount: 3000000, Type: model.Income, MainCategory: "급여", PaymentMethod: "계좌이체"}
	if _, err := l.AddTransaction(ctx, income); err != nil {
		t.Fatalf("AddTransaction(income) = %v", err)
	}
	if l.Bus().Version() != 1 {
		t.Errorf("Version = %d, want 1 (failed add must not publish)", l.Bus().Version())
	}
}

func TestUpdateAndDelete(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	tx, err := l.AddTransaction(ctx, lunch())
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	tx.Amount = 15000
	tx.Date = "2026-03-01"
	if err := l.UpdateTransaction(ctx, tx); err != nil {
		t.Fatalf("UpdateTransaction: %v", err)
	}
	evs := l.Bus().Since(1)
	if len(evs) != 1 || !evs[0].Month.IsZero() {
		t.Errorf("cross-month update events = %+v, want one unscoped", evs)
	}

	got, ok, err := l.GetTransaction(ctx, tx.ID)
	if err != nil || !ok || got.Amount != 15000 || got.Date != "2026-03-01" {
		t.Fatalf("GetTransaction = %+v, %v, %v", got, ok, err)
	}

	missing := tx
	missing.ID = 999
	if err := l.UpdateTransaction(ctx, missing); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
	tx.ID = 0
	if err := l.UpdateTransaction(ctx, tx); !errors.Is(err, model.ErrMissingID) {
		t.Errorf("update without id = %v, want ErrMissingID", err)
	}

	if err := l.DeleteTransaction(ctx, got.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	if _, ok, _ := l.GetTransaction(ctx, got.ID); ok {
		t.Error("transaction still present after delete")
	}
	if last := l.Bus().Since(2); len(last) != 1 || last[0].Month != (model.YearMonth{Year: 2026, Month: 3}) {
		t.Errorf("delete event = %+v", last)
	}

	before := l.Bus().Version()
	if err := l.DeleteTransaction(ctx, got.ID); err != nil {
		t.Fatalf("DeleteTransaction(missing) = %v, want nil", err)
	}
	if after := l.Bus().Version(); after != before {
		t.Errorf("deleting a missing id published: version %d -> %d", before, after)
	}
}

func TestBudgetsThroughLedger(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	err := l.SaveBudgets(ctx, feb, 500000, map[string]int64{"식비": 300000, "교통/차량": 250000})
	if !errors.Is(err, budget.ErrOverTotal) {
		t.Fatalf("SaveBudgets(over) = %v, want ErrOverTotal", err)
	}
	if l.Bus().Version() != 0 {
		t.Error("rejected save published an event")
	}

	if err := l.SaveBudgets(ctx, feb, 500000, map[string]int64{"식비": 300000, "교통/차량": 150000}); err != nil {
		t.Fatalf("SaveBudgets: %v", err)
	}

	// March has no rows, so its draft comes from February.
	draft, err := l.BudgetDraft(ctx, feb.Next())
	if err != nil {
		t.Fatalf("BudgetDraft: %v", err)
	}
	if !draft.FromPrevious || draft.Total != 500000 || draft.Categories["식비"] != 300000 {
		t.Errorf("draft = %+v", draft)
	}

	sum, err := l.Summary(ctx, feb)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if !sum.HasTotalBudget || sum.TotalBudget != 500000 || len(sum.Budget.Categories) != 2 {
		t.Errorf("summary budgets = %d %+v", sum.TotalBudget, sum.Budget)
	}

	if err := l.ResetBudgets(ctx, feb); err != nil {
		t.Fatalf("ResetBudgets: %v", err)
	}
	sum, _ = l.Summary(ctx, feb)
	if sum.HasTotalBudget || !sum.Budget.Empty() {
		t.Errorf("budgets after reset = %+v", sum.Budget)
	}
}

func TestCategoriesThroughLedger(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	c, err := l.AddCategory(ctx, "반려동물")
	if err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	tx := lunch()
	tx.MainCategory = "반려동물"
	if _, err := l.AddTransaction(ctx, tx); err != nil {
		t.Errorf("AddTransaction with user category = %v", err)
	}
	if err := l.DeleteCategory(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	cats, _ := l.Categories(ctx)
	if err := l.DeleteCategory(ctx, cats[0].ID); !errors.Is(err, model.ErrDefaultCategory) {
		t.Errorf("DeleteCategory(default) = %v, want ErrDefaultCategory", err)
	}
}

func TestHomeReflectsWrites(t *testing.T) {
	l := newLedger(t)
	ctx := context.Background()

	before, err := l.Home(ctx, feb)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if _, err := l.AddTransaction(ctx, lunch()); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}
	after, err := l.Home(ctx, feb)
	if err != nil {
		t.Fatalf("Home: %v", err)
	}
	if after.Version <= before.Version {
		t.Errorf("version %d -> %d, want increase", before.Version, after.Version)
	}
	if after.Summary.TotalExpense != 12000 {
		t.Errorf("expense after add = %d, want 12000", after.Summary.TotalExpense)
	}
}
