package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/gagyebu/internal/budget"
	"github.com/theirongolddev/gagyebu/internal/config"
	"github.com/theirongolddev/gagyebu/internal/events"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
)

type fakeLedger struct {
	bus     *events.Bus
	now     time.Time
	txs     []model.Transaction
	deleted []int64
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		bus: events.New(0),
		now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		txs: []model.Transaction{
			{ID: 3, Date: "2026-03-12", Amount: 2000000, Type: model.Income, MainCategory: "급여", PaymentMethod: "계좌이체"},
			{ID: 2, Date: "2026-03-10", Amount: 12000, Type: model.Expense, MainCategory: "식비", PaymentMethod: "체크카드"},
			{ID: 1, Date: "2026-03-02", Amount: 55000, Type: model.Expense, MainCategory: "교통/차량", PaymentMethod: "신용카드"},
		},
	}
}

func (f *fakeLedger) Home(_ context.Context, ym model.YearMonth) (pipeline.HomeView, error) {
	return pipeline.HomeView{Month: ym, Version: f.bus.Version()}, nil
}

func (f *fakeLedger) Summary(_ context.Context, ym model.YearMonth) (pipeline.SummaryView, error) {
	return pipeline.SummaryView{Month: ym, Version: f.bus.Version()}, nil
}

func (f *fakeLedger) Month(context.Context, model.YearMonth) ([]model.Transaction, error) {
	return f.txs, nil
}

func (f *fakeLedger) AddTransaction(_ context.Context, t model.Transaction) (model.Transaction, error) {
	return t, nil
}

func (f *fakeLedger) UpdateTransaction(context.Context, model.Transaction) error { return nil }

func (f *fakeLedger) DeleteTransaction(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeLedger) CategoryNames(context.Context) ([]string, error) {
	return model.ExpenseCategories, nil
}

func (f *fakeLedger) BudgetDraft(context.Context, model.YearMonth) (budget.Draft, error) {
	return budget.Draft{Categories: map[string]int64{}}, nil
}

func (f *fakeLedger) SaveBudgets(context.Context, model.YearMonth, int64, map[string]int64) error {
	return nil
}

func (f *fakeLedger) Bus() *events.Bus { return f.bus }
func (f *fakeLedger) Now() time.Time   { return f.now }
func (f *fakeLedger) Path() string     { return "/tmp/gagyebu.db" }

var march = model.YearMonth{Year: 2026, Month: 3}

// loadedApp returns an app that has finished its first load of March.
func loadedApp(t *testing.T, l *fakeLedger) App {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := config.Save(config.DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	a := NewApp(context.Background(), l, Options{Month: march, Config: config.DefaultConfig()})
	t.Cleanup(a.Close)

	msg := loadMonthCmd(a.ctx, l, march)()
	m, _ := a.Update(msg)
	a = m.(App)
	if !a.loaded {
		t.Fatal("app not loaded after first load")
	}
	return a
}

func TestApplyLoadDropsStaleResults(t *testing.T) {
	l := newFakeLedger()
	l.bus.Publish(events.Transactions, march)
	l.bus.Publish(events.Transactions, march)
	a := loadedApp(t, l)

	if a.data.version != 2 {
		t.Fatalf("version = %d, want 2", a.data.version)
	}

	other := loadedMsg{data: monthData{month: march.Prev(), version: 9}}
	m, _ := a.Update(other)
	if got := m.(App).data.month; got != march {
		t.Errorf("result for another month applied: month = %s", got)
	}

	older := loadedMsg{data: monthData{month: march, version: 1}}
	m, _ = a.Update(older)
	if got := m.(App).data.version; got != 2 {
		t.Errorf("older result applied: version = %d, want 2", got)
	}

	newer := loadedMsg{data: monthData{month: march, version: 3, txs: l.txs[:1]}}
	m, _ = a.Update(newer)
	if got := len(m.(App).data.txs); got != 1 {
		t.Errorf("newer result not applied: %d transactions, want 1", got)
	}
}

func TestChangedMsgReloadsAffectedMonth(t *testing.T) {
	l := newFakeLedger()
	a := loadedApp(t, l)

	far := events.Event{Version: 1, Kind: events.Transactions, Month: model.YearMonth{Year: 2025, Month: 1}}
	m, _ := a.Update(changedMsg{ev: far})
	if m.(App).loading {
		t.Error("unrelated month change started a reload")
	}

	later := events.Event{Version: 2, Kind: events.Transactions, Month: march.Next()}
	m, _ = a.Update(changedMsg{ev: later})
	if m.(App).loading {
		t.Error("change to the following month started a reload")
	}

	prev := events.Event{Version: 3, Kind: events.Transactions, Month: march.Prev()}
	m, _ = a.Update(changedMsg{ev: prev})
	if !m.(App).loading {
		t.Error("change to the previous month did not start a reload")
	}

	near := events.Event{Version: 4, Kind: events.Transactions, Month: march}
	m, _ = a.Update(changedMsg{ev: near})
	if !m.(App).loading {
		t.Error("change to the shown month did not start a reload")
	}
}

func TestSwitchMonthKeepsFilter(t *testing.T) {
	a := loadedApp(t, newFakeLedger())
	a.list.filter = model.Expense
	a.list.cursor = 1

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("]")})
	a = m.(App)
	if a.month != march.Next() {
		t.Errorf("month = %s, want %s", a.month, march.Next())
	}
	if a.list.cursor != 0 || a.list.filter != model.Expense {
		t.Errorf("list = %+v, want cursor 0 and expense filter", a.list)
	}
	if cmd == nil || !a.loading {
		t.Error("switching month did not start a load")
	}
}

func TestListFilterAndCursor(t *testing.T) {
	a := loadedApp(t, newFakeLedger())
	a.activeTab = 1

	if got := len(a.visibleTxs()); got != 3 {
		t.Fatalf("visible = %d, want 3", got)
	}
	a.list.move(10, len(a.visibleTxs()))
	if a.list.cursor != 2 {
		t.Errorf("cursor = %d, want 2", a.list.cursor)
	}

	a.list.nextFilter()
	if a.list.filter != model.Expense || a.list.cursor != 0 {
		t.Errorf("after filter: %+v", a.list)
	}
	if got := len(a.visibleTxs()); got != 2 {
		t.Errorf("expense rows = %d, want 2", got)
	}
	a.list.nextFilter()
	a.list.nextFilter()
	if a.list.filter != "" {
		t.Errorf("filter = %q, want all", a.list.filter)
	}
}

func TestConfirmDeleteOnlyOnY(t *testing.T) {
	l := newFakeLedger()
	a := loadedApp(t, l)
	a.activeTab = 1
	a.list.cursor = 1

	m, _, ok := a.updateListKey("d")
	if !ok || !m.(App).list.confirmDelete {
		t.Fatal("d did not ask for confirmation")
	}
	a = m.(App)

	m, cmd := a.confirmDelete("n")
	if cmd != nil || m.(App).list.confirmDelete {
		t.Error("n deleted or kept the prompt open")
	}

	_, cmd = a.confirmDelete("y")
	if cmd == nil {
		t.Fatal("y returned no command")
	}
	msg, ok := cmd().(doneMsg)
	if !ok || msg.err != nil {
		t.Fatalf("delete result = %+v", msg)
	}
	if len(l.deleted) != 1 || l.deleted[0] != 2 {
		t.Errorf("deleted = %v, want [2]", l.deleted)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t, newFakeLedger())
	m, _ := a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	a = m.(App)

	for i := 0; i < 5; i++ {
		a.activeTab = i
		if v := a.View(); v == "" {
			t.Errorf("tab %d rendered nothing", i)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12000", 12000, true},
		{"12,000", 12000, true},
		{"12,000원", 12000, true},
		{" 3 500 ", 3500, true},
		{"", 0, false},
		{"만원", 0, false},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("parseAmount(%q) = %d, %v; want %d, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
	if err := validAmount("0"); err == nil {
		t.Error("validAmount(0) accepted zero")
	}
}

func TestBudgetValuesParse(t *testing.T) {
	v := &budgetValues{
		total:   "1,000,000",
		names:   []string{"식비", "교통/차량", "기타"},
		amounts: []string{"400000", "", "0"},
	}
	total, cats, err := v.parse()
	if err != nil {
		t.Fatal(err)
	}
	if total != 1000000 {
		t.Errorf("total = %d, want 1000000", total)
	}
	if len(cats) != 1 || cats["식비"] != 400000 {
		t.Errorf("categories = %v, want only 식비", cats)
	}

	v.amounts[1] = "700000"
	total, cats, _ = v.parse()
	if err := budget.Validate(total, cats); err == nil {
		t.Error("over-total draft passed validation")
	}
}

func TestBudgetValuesKeepRemovedCategories(t *testing.T) {
	draft := budget.Draft{
		Total:      500000,
		Categories: map[string]int64{"식비": 200000, "반려동물": 30000},
	}
	v := newBudgetValues(draft, []string{"식비", "기타"})

	want := []string{"식비", "기타", "반려동물"}
	if len(v.names) != len(want) {
		t.Fatalf("names = %v, want %v", v.names, want)
	}
	for i := range want {
		if v.names[i] != want[i] {
			t.Fatalf("names = %v, want %v", v.names, want)
		}
	}
	if v.amounts[2] != "30000" || v.total != "500000" {
		t.Errorf("amounts = %v, total = %q", v.amounts, v.total)
	}

	v.amounts[2] = ""
	_, cats, err := v.parse()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cats["반려동물"]; ok {
		t.Errorf("cleared category still in %v", cats)
	}
}

func TestApplySetting(t *testing.T) {
	cfg := config.DefaultConfig()

	got, err := applySetting(cfg, settingsFieldTheme, "tokyo-night")
	if err != nil || got.Appearance.Theme != "tokyo-night" {
		t.Errorf("theme: %q, %v", got.Appearance.Theme, err)
	}
	if _, err := applySetting(cfg, settingsFieldTheme, "solarized"); err == nil {
		t.Error("unknown theme accepted")
	}
	if _, err := applySetting(cfg, settingsFieldPayment, "상품권"); err == nil {
		t.Error("unknown payment method accepted")
	}
	got, err = applySetting(cfg, settingsFieldWarn, "90")
	if err != nil || got.Budget.WarnPercent != 90 {
		t.Errorf("warn: %v, %v", got.Budget.WarnPercent, err)
	}
	if _, err := applySetting(cfg, settingsFieldRecent, "0"); err == nil {
		t.Error("zero recent limit accepted")
	}
	got, err = applySetting(cfg, settingsFieldAtomic, "false")
	if err != nil || got.Budget.AtomicSave {
		t.Errorf("atomic: %v, %v", got.Budget.AtomicSave, err)
	}
}

func TestEntryDate(t *testing.T) {
	a := loadedApp(t, newFakeLedger())
	if got := a.entryDate(); got != "2026-03-14" {
		t.Errorf("entryDate() = %q, want today", got)
	}
	a.month = march.Prev()
	if got := a.entryDate(); got != "2026-02-01" {
		t.Errorf("entryDate() = %q, want first of month", got)
	}
}
