package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/theirongolddev/gagyebu/internal/budget"
	"github.com/theirongolddev/gagyebu/internal/compare"
	"github.com/theirongolddev/gagyebu/internal/logging"
	"github.com/theirongolddev/gagyebu/internal/model"
)

// DefaultRecentLimit is the number of recent expenses on the home view.
const DefaultRecentLimit = 5

// Source is the read side of the record store.
type Source interface {
	MonthlySummary(ctx context.Context, ym model.YearMonth) (model.MonthlySummary, error)
	PaymentBreakdown(ctx context.Context, ym model.YearMonth) ([]model.PaymentSummaryRow, error)
	DailySummary(ctx context.Context, ym model.YearMonth) ([]model.DailySummaryRow, error)
	RecentExpenses(ctx context.Context, ym model.YearMonth, limit int) ([]model.Transaction, error)
	ExpenseTotalOn(ctx context.Context, date string) (int64, error)
	IncomeTotal(ctx context.Context, ym model.YearMonth) (int64, error)
	TotalBudget(ctx context.Context, ym model.YearMonth) (int64, bool, error)
	ListBudgets(ctx context.Context, ym model.YearMonth) ([]model.Budget, error)
	TransactionsOfMonth(ctx context.Context, ym model.YearMonth) ([]model.Transaction, error)
	TransactionsByDate(ctx context.Context, date string) ([]model.Transaction, error)
}

// HomeView is everything the home screen shows for one month.
type HomeView struct {
	Month   model.YearMonth
	Version int64

	Summary       model.MonthlySummary
	Daily         []model.DailySummaryRow // sparse, as stored
	Recent        []model.Transaction
	Today         string
	TodayExpense  int64
	DaysRemaining int
	DailyAverage  int64

	TotalBudget     int64
	HasBudget       bool
	BudgetRemaining int64
}

// SummaryView is the summary and budget screens for one month.
type SummaryView struct {
	Month   model.YearMonth
	Version int64

	Current          model.MonthlySummary
	Previous         model.MonthlySummary
	CurrentPayments  []model.PaymentSummaryRow
	PreviousPayments []model.PaymentSummaryRow
	Income           int64
	Budgets          []model.Budget
	DailyAverage     int64
	ElapsedDays      int

	TotalBudget    int64
	HasTotalBudget bool
	Comparison     compare.Comparison
	Budget         budget.MonthStatus
}

// OverBudget returns how far the month's expense exceeds its total budget,
// or 0 when it does not.
func (v SummaryView) OverBudget() int64 {
	if !v.HasTotalBudget || v.Current.TotalExpense <= v.TotalBudget {
		return 0
	}
	return v.Current.TotalExpense - v.TotalBudget
}

// Loader builds views from a Source. Concurrent requests for the same view
// and data version share one fetch.
type Loader struct {
	src     Source
	now     func() time.Time
	version func() int64
	recent  int
	log     *logrus.Entry

	group singleflight.Group
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithNow sets the clock used for "today".
func WithNow(now func() time.Time) LoaderOption {
	return func(l *Loader) { l.now = now }
}

// WithVersion ties shared fetches to a data version so a request made
// after a write never joins a fetch started before it.
func WithVersion(version func() int64) LoaderOption {
	return func(l *Loader) { l.version = version }
}

// WithRecentLimit sets how many recent expenses the home view carries.
func WithRecentLimit(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.recent = n
		}
	}
}

// WithLogger sets the logger for load timings and failures.
func WithLogger(log *logrus.Entry) LoaderOption {
	return func(l *Loader) { l.log = log }
}

// NewLoader returns a loader over src.
func NewLoader(src Source, opts ...LoaderOption) *Loader {
	l := &Loader{
		src:     src,
		now:     time.Now,
		version: func() int64 { return 0 },
		recent:  DefaultRecentLimit,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Home loads the home view of ym.
func (l *Loader) Home(ctx context.Context, ym model.YearMonth) (HomeView, error) {
	version := l.version()
	v, err := l.do(ctx, fmt.Sprintf("home:%s:%d", ym, version), func(ctx context.Context) (any, error) {
		return l.loadHome(ctx, ym, version)
	})
	if err != nil {
		return HomeView{}, err
	}
	return v.(HomeView), nil
}

// Summary loads the summary view of ym.
func (l *Loader) Summary(ctx context.Context, ym model.YearMonth) (SummaryView, error) {
	version := l.version()
	v, err := l.do(ctx, fmt.Sprintf("summary:%s:%d", ym, version), func(ctx context.Context) (any, error) {
		return l.loadSummary(ctx, ym, version)
	})
	if err != nil {
		return SummaryView{}, err
	}
	return v.(SummaryView), nil
}

// Month returns the month's transactions in list order.
func (l *Loader) Month(ctx context.Context, ym model.YearMonth) ([]model.Transaction, error) {
	return l.src.TransactionsOfMonth(ctx, ym)
}

// Day returns one date's transactions, most recent first.
func (l *Loader) Day(ctx context.Context, date string) ([]model.Transaction, error) {
	return l.src.TransactionsByDate(ctx, date)
}

// do runs fn once per key among concurrent callers. The shared fetch is
// detached from any single caller's cancellation; a caller whose ctx ends
// gets ctx.Err() while the others still receive the result.
func (l *Loader) do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := l.group.DoChan(key, func() (any, error) {
		start := time.Now()
		v, err := fn(context.WithoutCancel(ctx))
		entry := l.log.WithFields(logrus.Fields{"key": key, "elapsed": time.Since(start).String()})
		if err != nil {
			logging.Error(entry, "pipeline.load", err, nil)
		} else {
			entry.Debug("view loaded")
		}
		return v, err
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.Val, r.Err
	}
}

func (l *Loader) loadHome(ctx context.Context, ym model.YearMonth, version int64) (HomeView, error) {
	now := l.now()
	v := HomeView{
		Month:         ym,
		Version:       version,
		Today:         now.Format(model.DateLayout),
		DaysRemaining: DaysRemaining(ym, now),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := l.src.MonthlySummary(gctx, ym)
		v.Summary = s
		return err
	})
	g.Go(func() error {
		rows, err := l.src.DailySummary(gctx, ym)
		v.Daily = rows
		return err
	})
	g.Go(func() error {
		txs, err := l.src.RecentExpenses(gctx, ym, l.recent)
		v.Recent = txs
		return err
	})
	g.Go(func() error {
		total, err := l.src.ExpenseTotalOn(gctx, v.Today)
		v.TodayExpense = total
		return err
	})
	g.Go(func() error {
		total, ok, err := l.src.TotalBudget(gctx, ym)
		v.TotalBudget, v.HasBudget = total, ok
		return err
	})
	if err := g.Wait(); err != nil {
		return HomeView{}, fmt.Errorf("loading home view of %s: %w", ym, err)
	}

	v.DailyAverage = DailyAverage(ym, v.Summary.TotalExpense, now)
	v.BudgetRemaining = budget.Remaining(v.TotalBudget, v.Summary.TotalExpense)
	return v, nil
}

func (l *Loader) loadSummary(ctx context.Context, ym model.YearMonth, version int64) (SummaryView, error) {
	now := l.now()
	prev := ym.Prev()
	v := SummaryView{Month: ym, Version: version, ElapsedDays: ElapsedDays(ym, now)}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := l.src.MonthlySummary(gctx, ym)
		v.Current = s
		return err
	})
	g.Go(func() error {
		s, err := l.src.MonthlySummary(gctx, prev)
		v.Previous = s
		return err
	})
	g.Go(func() error {
		rows, err := l.src.PaymentBreakdown(gctx, ym)
		v.CurrentPayments = rows
		return err
	})
	g.Go(func() error {
		rows, err := l.src.PaymentBreakdown(gctx, prev)
		v.PreviousPayments = rows
		return err
	})
	g.Go(func() error {
		total, err := l.src.IncomeTotal(gctx, ym)
		v.Income = total
		return err
	})
	g.Go(func() error {
		rows, err := l.src.ListBudgets(gctx, ym)
		v.Budgets = rows
		return err
	})
	if err := g.Wait(); err != nil {
		return SummaryView{}, fmt.Errorf("loading summary view of %s: %w", ym, err)
	}

	for _, b := range v.Budgets {
		if b.IsTotal() {
			v.TotalBudget, v.HasTotalBudget = b.Amount, true
		}
	}
	v.DailyAverage = DailyAverage(ym, v.Current.TotalExpense, now)
	v.Comparison = compare.Compare(v.Current, v.Previous, v.CurrentPayments, v.PreviousPayments)
	v.Budget = budget.Reconcile(v.Budgets, v.Current.ByCategory)
	return v, nil
}
