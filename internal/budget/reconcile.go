// Package budget reconciles per-category budgets against a month's total
// and against actual spending.
package budget

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/gagyebu/internal/logging"
	"github.com/theirongolddev/gagyebu/internal/model"
)

var (
	// ErrOverTotal is matched by a *ValidationError whose category budgets
	// exceed the total.
	ErrOverTotal = errors.New("category budgets exceed total budget")

	ErrNegativeAmount = errors.New("budget amounts must not be negative")
	ErrAmountTooLarge = errors.New("budget amounts are too large")
)

// OverTotalMessage is the user-facing text for ErrOverTotal.
const OverTotalMessage = "카테고리 예산이 전체 예산을 초과했어요."

// ValidationError reports a budget draft whose categories add up to more
// than its total.
type ValidationError struct {
	Total     int64
	Allocated int64
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("category budgets (%d) exceed total budget (%d)", e.Allocated, e.Total)
}

// Is lets errors.Is match ErrOverTotal.
func (e *ValidationError) Is(target error) bool {
	return target == ErrOverTotal
}

// Store is the subset of the record store the reconciler needs.
type Store interface {
	ListBudgets(ctx context.Context, ym model.YearMonth) ([]model.Budget, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	UpsertBudget(ctx context.Context, ym model.YearMonth, category *string, amount int64) error
	DeleteBudget(ctx context.Context, ym model.YearMonth, category *string) error
	ApplyBudgets(ctx context.Context, ym model.YearMonth, changes []model.BudgetChange) error
	ResetBudgets(ctx context.Context, ym model.YearMonth) error
}

// Reconciler loads, validates and saves monthly budgets.
type Reconciler struct {
	Store Store

	// Atomic applies a save in one transaction. When false, rows are written
	// one by one and a failure leaves the earlier rows saved.
	Atomic bool
	Log    *logrus.Entry
}

// Draft is the editable state of a month's budgets.
type Draft struct {
	Total      int64
	Categories map[string]int64

	// FromPrevious is set when the month had no rows and the draft was
	// pre-filled from Source.
	FromPrevious bool
	Source       model.YearMonth
}

// Allocated returns the sum of the draft's category budgets.
func (d Draft) Allocated() int64 {
	return sumCategories(d.Categories)
}

// LoadForEditing returns the month's budgets, or the previous month's when
// the month has none. It never writes.
func (r *Reconciler) LoadForEditing(ctx context.Context, ym model.YearMonth) (Draft, error) {
	rows, err := r.Store.ListBudgets(ctx, ym)
	if err != nil {
		return Draft{}, err
	}
	source := ym
	fromPrev := false
	if len(rows) == 0 {
		source = ym.Prev()
		fromPrev = true
		if rows, err = r.Store.ListBudgets(ctx, source); err != nil {
			return Draft{}, err
		}
	}

	d := Draft{Categories: make(map[string]int64), FromPrevious: fromPrev, Source: source}
	for _, b := range rows {
		if b.IsTotal() {
			d.Total = b.Amount
			continue
		}
		d.Categories[b.CategoryName()] = b.Amount
	}
	return d, nil
}

// Validate checks a draft before saving. A zero total disables the
// over-total rule.
func Validate(total int64, categories map[string]int64) error {
	if total < 0 {
		return fmt.Errorf("total: %w", ErrNegativeAmount)
	}
	for name, amount := range categories {
		if amount < 0 {
			return fmt.Errorf("%s: %w", name, ErrNegativeAmount)
		}
	}
	allocated, ok := addCategories(categories)
	if total > 0 && allocated > total {
		return &ValidationError{Total: total, Allocated: allocated}
	}
	if !ok {
		return ErrAmountTooLarge
	}
	return nil
}

// Save validates and writes a month's budgets. Amounts of zero delete the
// row. Categories known to the store but missing from categories are
// deleted too.
func (r *Reconciler) Save(ctx context.Context, ym model.YearMonth, total int64, categories map[string]int64) error {
	if err := Validate(total, categories); err != nil {
		return err
	}

	known, err := r.Store.ListCategories(ctx)
	if err != nil {
		return err
	}
	existing, err := r.Store.ListBudgets(ctx, ym)
	if err != nil {
		return err
	}
	changes := planChanges(total, categories, known, existing)

	log := r.logger().WithFields(logrus.Fields{
		logging.FieldMonth:   ym.String(),
		logging.FieldChanges: len(changes),
		"atomic":             r.Atomic,
	})

	if r.Atomic {
		if err := r.Store.ApplyBudgets(ctx, ym, changes); err != nil {
			logging.Error(log, "budget.Save", err, nil)
			return err
		}
		log.Info("budgets saved")
		return nil
	}

	for i, c := range changes {
		var err error
		if c.Delete() {
			err = r.Store.DeleteBudget(ctx, ym, c.MainCategory)
		} else {
			err = r.Store.UpsertBudget(ctx, ym, c.MainCategory, c.Amount)
		}
		if err != nil {
			logging.Error(log, "budget.Save", err, map[string]any{"applied": i})
			return fmt.Errorf("saved %d of %d budget rows: %w", i, len(changes), err)
		}
	}
	log.Info("budgets saved")
	return nil
}

// Reset removes every budget row of the month.
func (r *Reconciler) Reset(ctx context.Context, ym model.YearMonth) error {
	if err := r.Store.ResetBudgets(ctx, ym); err != nil {
		logging.Error(r.logger().WithField(logging.FieldMonth, ym.String()), "budget.Reset", err, nil)
		return err
	}
	return nil
}

func (r *Reconciler) logger() *logrus.Entry {
	if r.Log != nil {
		return r.Log
	}
	return logging.Discard()
}

// planChanges lists the total first, then every category from the
// catalog, the month's existing rows and the draft in name order. Rows left
// by a since-deleted category are planned as deletes unless the draft
// keeps them.
func planChanges(total int64, categories map[string]int64, known []model.Category, existing []model.Budget) []model.BudgetChange {
	names := make(map[string]struct{}, len(known)+len(existing)+len(categories))
	for _, c := range known {
		names[c.Name] = struct{}{}
	}
	for _, b := range existing {
		if !b.IsTotal() {
			names[b.CategoryName()] = struct{}{}
		}
	}
	for name := range categories {
		names[name] = struct{}{}
	}
	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	changes := make([]model.BudgetChange, 0, len(sorted)+1)
	changes = append(changes, model.BudgetChange{Amount: total})
	for _, name := range sorted {
		changes = append(changes, model.BudgetChange{
			MainCategory: model.CategoryPtr(name),
			Amount:       categories[name],
		})
	}
	return changes
}

// sumCategories is addCategories saturated at math.MaxInt64.
func sumCategories(categories map[string]int64) int64 {
	sum, _ := addCategories(categories)
	return sum
}

// addCategories sums the non-negative category amounts. ok is false when
// the sum does not fit in an int64, in which case sum is math.MaxInt64.
func addCategories(categories map[string]int64) (sum int64, ok bool) {
	for _, v := range categories {
		if v > 0 && sum > math.MaxInt64-v {
			return math.MaxInt64, false
		}
		sum += v
	}
	return sum, true
}
