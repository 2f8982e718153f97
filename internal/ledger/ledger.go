// Package ledger is the write-side facade both front ends use. Every
// successful write is logged and announced on the event bus.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/theirongolddev/gagyebu/internal/budget"
	"github.com/theirongolddev/gagyebu/internal/events"
	"github.com/theirongolddev/gagyebu/internal/logging"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
	"github.com/theirongolddev/gagyebu/internal/store"
)

// Options configures a Ledger.
type Options struct {
	Logger      *logrus.Logger
	Now         func() time.Time
	AtomicSave  bool
	RecentLimit int
	// Bus defaults to a new bus with the default history size.
	Bus *events.Bus
}

// Ledger wraps the record store with validation, clocks, logging and
// change events.
type Ledger struct {
	db      *store.DB
	bus     *events.Bus
	budgets *budget.Reconciler
	loader  *pipeline.Loader
	now     func() time.Time
	log     *logrus.Entry
}

// New returns a ledger over an open store.
func New(db *store.DB, opts Options) *Ledger {
	log := logging.Discard()
	if opts.Logger != nil {
		log = logrus.NewEntry(opts.Logger)
	}
	log = log.WithField(logging.FieldModule, "ledger")

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	bus := opts.Bus
	if bus == nil {
		bus = events.New(events.DefaultBuffer)
	}

	return &Ledger{
		db:  db,
		bus: bus,
		budgets: &budget.Reconciler{
			Store:  db,
			Atomic: opts.AtomicSave,
			Log:    log.WithField(logging.FieldModule, "budget"),
		},
		loader: pipeline.NewLoader(db,
			pipeline.WithNow(now),
			pipeline.WithVersion(bus.Version),
			pipeline.WithRecentLimit(opts.RecentLimit),
			pipeline.WithLogger(log.WithField(logging.FieldModule, "pipeline")),
		),
		now: now,
		log: log,
	}
}

// Bus returns the change-event bus.
func (l *Ledger) Bus() *events.Bus { return l.bus }

// Now returns the ledger clock's current time.
func (l *Ledger) Now() time.Time { return l.now() }

// Path returns the database file path.
func (l *Ledger) Path() string { return l.db.Path() }

// Close closes the underlying store.
func (l *Ledger) Close() error { return l.db.Close() }

// AddTransaction validates t against the catalogs, stamps it and stores
// it. The stored transaction, with its id, is returned.
func (l *Ledger) AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	t = t.Normalize()
	t.ID = 0
	if err := t.Validate(); err != nil {
		return model.Transaction{}, err
	}
	if err := l.checkCatalog(ctx, t); err != nil {
		return model.Transaction{}, err
	}
	t.CreatedAt = l.now()

	id, err := l.db.InsertTransaction(ctx, t)
	if err != nil {
		return model.Transaction{}, l.fail("ledger.AddTransaction", err, txFields(t))
	}
	t.ID = id

	l.publish(events.Transactions, t.Month(), logrus.Fields{logging.FieldID: id})
	return t, nil
}

// UpdateTransaction rewrites a stored transaction. Its id and createdAt
// are kept. The catalog is checked only for fields that changed, so rows
// whose category was since removed stay editable.
func (l *Ledger) UpdateTransaction(ctx context.Context, t model.Transaction) error {
	if t.ID == 0 {
		return model.ErrMissingID
	}
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return err
	}

	old, ok, err := l.db.GetTransaction(ctx, t.ID)
	if err != nil {
		return l.fail("ledger.UpdateTransaction", err, txFields(t))
	}
	if !ok {
		return fmt.Errorf("transaction %d: %w", t.ID, model.ErrNotFound)
	}
	if old.MainCategory != t.MainCategory || old.PaymentMethod != t.PaymentMethod || old.Type != t.Type {
		if err := l.checkCatalog(ctx, t); err != nil {
			return err
		}
	}

	if err := l.db.UpdateTransaction(ctx, t); err != nil {
		return l.fail("ledger.UpdateTransaction", err, txFields(t))
	}

	// A move across months touches two windows; announce it unscoped.
	ym := t.Month()
	if old.Month() != ym {
		ym = model.YearMonth{}
	}
	l.publish(events.Transactions, ym, logrus.Fields{logging.FieldID: t.ID})
	return nil
}

// DeleteTransaction removes a transaction. A missing id is not an error.
func (l *Ledger) DeleteTransaction(ctx context.Context, id int64) error {
	old, ok, err := l.db.GetTransaction(ctx, id)
	if err != nil {
		return l.fail("ledger.DeleteTransaction", err, logrus.Fields{logging.FieldID: id})
	}
	if !ok {
		return nil
	}
	if err := l.db.DeleteTransaction(ctx, id); err != nil {
		return l.fail("ledger.DeleteTransaction", err, logrus.Fields{logging.FieldID: id})
	}
	l.publish(events.Transactions, old.Month(), logrus.Fields{logging.FieldID: id})
	return nil
}

// GetTransaction returns a transaction by id; ok is false when absent.
func (l *Ledger) GetTransaction(ctx context.Context, id int64) (model.Transaction, bool, error) {
	return l.db.GetTransaction(ctx, id)
}

// Categories lists the expense categories, defaults first.
func (l *Ledger) Categories(ctx context.Context) ([]model.Category, error) {
	return l.db.ListCategories(ctx)
}

// CategoryNames lists the expense category names, defaults first.
func (l *Ledger) CategoryNames(ctx context.Context) ([]string, error) {
	cats, err := l.db.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names, nil
}

// AddCategory creates a user expense category.
func (l *Ledger) AddCategory(ctx context.Context, name string) (model.Category, error) {
	c, err := l.db.AddCategory(ctx, name)
	if err != nil {
		return model.Category{}, l.fail("ledger.AddCategory", err, logrus.Fields{"name": name})
	}
	l.publish(events.Categories, model.YearMonth{}, logrus.Fields{logging.FieldID: c.ID})
	return c, nil
}

// DeleteCategory removes a user category. Defaults are refused.
func (l *Ledger) DeleteCategory(ctx context.Context, id int64) error {
	if err := l.db.DeleteCategory(ctx, id); err != nil {
		return l.fail("ledger.DeleteCategory", err, logrus.Fields{logging.FieldID: id})
	}
	l.publish(events.Categories, model.YearMonth{}, logrus.Fields{logging.FieldID: id})
	return nil
}

// BudgetDraft returns the editable budgets of ym, pre-filled from the
// previous month when ym has none.
func (l *Ledger) BudgetDraft(ctx context.Context, ym model.YearMonth) (budget.Draft, error) {
	return l.budgets.LoadForEditing(ctx, ym)
}

// SaveBudgets validates and saves the budgets of ym.
func (l *Ledger) SaveBudgets(ctx context.Context, ym model.YearMonth, total int64, categories map[string]int64) error {
	if err := l.budgets.Save(ctx, ym, total, categories); err != nil {
		return err
	}
	l.publish(events.Budgets, ym, nil)
	return nil
}

// ResetBudgets deletes every budget of ym.
func (l *Ledger) ResetBudgets(ctx context.Context, ym model.YearMonth) error {
	if err := l.budgets.Reset(ctx, ym); err != nil {
		return err
	}
	l.publish(events.Budgets, ym, nil)
	return nil
}

// Home loads the home view of ym.
func (l *Ledger) Home(ctx context.Context, ym model.YearMonth) (pipeline.HomeView, error) {
	return l.loader.Home(ctx, ym)
}

// Summary loads the summary view of ym.
func (l *Ledger) Summary(ctx context.Context, ym model.YearMonth) (pipeline.SummaryView, error) {
	return l.loader.Summary(ctx, ym)
}

// Month returns the month's transactions in list order.
func (l *Ledger) Month(ctx context.Context, ym model.YearMonth) ([]model.Transaction, error) {
	return l.loader.Month(ctx, ym)
}

// Day returns one date's transactions.
func (l *Ledger) Day(ctx context.Context, date string) ([]model.Transaction, error) {
	return l.loader.Day(ctx, date)
}

// Recent returns up to limit of the month's latest expenses.
func (l *Ledger) Recent(ctx context.Context, ym model.YearMonth, limit int) ([]model.Transaction, error) {
	return l.db.RecentExpenses(ctx, ym, limit)
}

// All returns every transaction, newest first.
func (l *Ledger) All(ctx context.Context) ([]model.Transaction, error) {
	return l.db.AllTransactions(ctx)
}

func (l *Ledger) checkCatalog(ctx context.Context, t model.Transaction) error {
	names, err := l.CategoryNames(ctx)
	if err != nil {
		return err
	}
	return t.CheckCatalog(names)
}

func (l *Ledger) publish(kind events.Kind, ym model.YearMonth, fields logrus.Fields) {
	ev := l.bus.Publish(kind, ym)
	l.log.WithFields(fields).WithFields(logrus.Fields{
		logging.FieldKind:    string(kind),
		logging.FieldMonth:   ym.String(),
		logging.FieldVersion: ev.Version,
	}).Info("ledger changed")
}

func (l *Ledger) fail(op string, err error, fields logrus.Fields) error {
	logging.Error(l.log, op, err, fields)
	return err
}

func txFields(t model.Transaction) logrus.Fields {
	return logrus.Fields{
		logging.FieldID: t.ID,
		"date":          t.Date,
		"type":          string(t.Type),
		"amount":        t.Amount,
		"category":      t.MainCategory,
	}
}
