// Package tui provides the interactive Bubble Tea ledger for gagyebu.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/theirongolddev/gagyebu/internal/budget"
	"github.com/theirongolddev/gagyebu/internal/config"
	"github.com/theirongolddev/gagyebu/internal/events"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

// Ledger is the part of the ledger service the TUI drives.
type Ledger interface {
	Home(ctx context.Context, ym model.YearMonth) (pipeline.HomeView, error)
	Summary(ctx context.Context, ym model.YearMonth) (pipeline.SummaryView, error)
	Month(ctx context.Context, ym model.YearMonth) ([]model.Transaction, error)
	AddTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error)
	UpdateTransaction(ctx context.Context, t model.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	CategoryNames(ctx context.Context) ([]string, error)
	BudgetDraft(ctx context.Context, ym model.YearMonth) (budget.Draft, error)
	SaveBudgets(ctx context.Context, ym model.YearMonth, total int64, categories map[string]int64) error
	Bus() *events.Bus
	Now() time.Time
	Path() string
}

// Options configures the app.
type Options struct {
	Month  model.YearMonth
	Config config.Config
}

// monthData is one consistent load of everything the tabs render.
type monthData struct {
	month   model.YearMonth
	version int64
	home    pipeline.HomeView
	summary pipeline.SummaryView
	txs     []model.Transaction
}

// loadedMsg carries a finished month load.
type loadedMsg struct {
	data monthData
	err  error
}

// changedMsg carries a ledger change event. closed is set once the
// subscription ends.
type changedMsg struct {
	ev     events.Event
	closed bool
}

// doneMsg reports the outcome of a write.
type doneMsg struct {
	status string
	err    error
}

// formReadyMsg opens a form whose options had to be loaded first.
type formReadyMsg struct {
	form   *huh.Form
	submit func() tea.Cmd
	err    error
}

// App is the root Bubble Tea model.
type App struct {
	ctx    context.Context
	ledger Ledger
	cfg    config.Config

	month   model.YearMonth
	data    monthData
	loaded  bool
	loading bool

	subID   int
	changes <-chan events.Event

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	status    components.Status

	list     listState
	settings settingsState

	// Open huh form and what to run when it completes.
	form     *huh.Form
	onSubmit func() tea.Cmd

	// First-run setup
	needSetup bool

	spinner  spinner.Model
	spinning bool
}

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates the TUI model and subscribes it to the ledger's change
// events. Call Close when the program exits.
func NewApp(ctx context.Context, l Ledger, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	month := opts.Month
	if month.IsZero() {
		month = model.YearMonthOf(l.Now())
	}

	id, ch := l.Bus().Subscribe(events.DefaultBuffer)

	return App{
		ctx:       ctx,
		ledger:    l,
		cfg:       opts.Config,
		month:     month,
		subID:     id,
		changes:   ch,
		needSetup: !config.Exists(),
		spinner:   sp,
		spinning:  true,
	}
}

// Close ends the change subscription.
func (a App) Close() {
	a.ledger.Bus().Unsubscribe(a.subID)
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		a.spinner.Tick,
		loadMonthCmd(a.ctx, a.ledger, a.month),
		waitForChange(a.changes),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth()).WithHeight(msg.Height - 4)
		}
		return a, nil

	case tea.MouseMsg:
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.form != nil {
			if msg.String() == "esc" {
				a.closeForm()
				return a, nil
			}
			return a.updateForm(msg)
		}
		if !a.loaded {
			return a, nil
		}
		return a.updateKey(msg)

	case loadedMsg:
		return a.applyLoad(msg)

	case changedMsg:
		if msg.closed {
			return a, nil
		}
		cmds := []tea.Cmd{waitForChange(a.changes)}
		if msg.ev.Affects(a.month) {
			cmds = append(cmds, a.startLoad())
		}
		return a, tea.Batch(cmds...)

	case doneMsg:
		if msg.err != nil {
			a.status = components.Status{Text: errorText(msg.err), Error: true}
		} else {
			a.status = components.Status{Text: msg.status}
		}
		return a, nil

	case configSavedMsg:
		return a.applyConfig(msg)

	case formReadyMsg:
		if msg.err != nil {
			a.status = components.Status{Text: errorText(msg.err), Error: true}
			return a, nil
		}
		return a.openForm(msg.form, msg.submit)

	case spinner.TickMsg:
		if a.loading || !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		a.spinning = false
		return a, nil
	}

	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.activeTab == components.TabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.list.confirmDelete {
		return a.confirmDelete(key)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case components.TabList:
		if m, cmd, ok := a.updateListKey(key); ok {
			return m, cmd
		}
	case components.TabSettings:
		if m, cmd, ok := a.updateSettingsKey(key); ok {
			return m, cmd
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "[":
		return a.switchMonth(a.month.Prev())
	case "]":
		return a.switchMonth(a.month.Next())
	case "t":
		return a.switchMonth(model.YearMonthOf(a.ledger.Now()))
	case "r":
		cmd := a.startLoad()
		return a, cmd
	case "a":
		return a, a.addFormCmd(model.Expense)
	case "i":
		return a, a.addFormCmd(model.Income)
	case "B":
		return a, a.budgetFormCmd()
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if idx := components.TabIdxByKey(key); idx >= 0 {
			a.activeTab = idx
		} else if n := len(key); n == 1 && key[0] >= '1' && int(key[0]-'1') < len(components.Tabs) {
			a.activeTab = int(key[0] - '1')
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !a.loaded || a.showHelp || a.form != nil {
		return a, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == components.TabList {
			a.list.move(-1, len(a.data.txs))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == components.TabList {
			a.list.move(1, len(a.data.txs))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// switchMonth moves the view to ym and loads it.
func (a App) switchMonth(ym model.YearMonth) (tea.Model, tea.Cmd) {
	if ym == a.month {
		return a, nil
	}
	a.month = ym
	a.list = listState{filter: a.list.filter}
	cmd := a.startLoad()
	return a, cmd
}

// startLoad marks the app busy and returns the load command.
func (a *App) startLoad() tea.Cmd {
	a.loading = true
	cmds := []tea.Cmd{loadMonthCmd(a.ctx, a.ledger, a.month)}
	if !a.spinning {
		a.spinning = true
		cmds = append(cmds, a.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// applyLoad installs a load result unless it is stale: a result for
// another month, or older than the data on screen.
func (a App) applyLoad(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.data.month != a.month {
		return a, nil
	}
	a.loading = false
	if msg.err != nil {
		a.status = components.Status{Text: errorText(msg.err), Error: true}
		return a, nil
	}
	if a.loaded && a.data.month == msg.data.month && msg.data.version < a.data.version {
		return a, nil
	}

	a.data = msg.data
	a.list.clamp(len(a.visibleTxs()))

	if !a.loaded {
		a.loaded = true
		if a.needSetup {
			return a.openSetup()
		}
	}
	return a, nil
}

// loadMonthCmd loads the three views of ym concurrently.
func loadMonthCmd(ctx context.Context, l Ledger, ym model.YearMonth) tea.Cmd {
	return func() tea.Msg {
		d := monthData{month: ym}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			d.home, err = l.Home(gctx, ym)
			return err
		})
		g.Go(func() error {
			var err error
			d.summary, err = l.Summary(gctx, ym)
			return err
		})
		g.Go(func() error {
			var err error
			d.txs, err = l.Month(gctx, ym)
			return err
		})
		if err := g.Wait(); err != nil {
			return loadedMsg{data: monthData{month: ym}, err: err}
		}
		d.version = min(d.home.Version, d.summary.Version)
		return loadedMsg{data: d}
	}
}

// waitForChange blocks until the next ledger change event.
func waitForChange(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return changedMsg{closed: true}
		}
		return changedMsg{ev: ev}
	}
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.form != nil {
		return a.viewForm()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  gagyebu needs at least %d columns.\n",
		a.width, minTerminalWidth)
	h := max(a.height, 5)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ gagyebu"))
	b.WriteString(subStyle.Render(" · 가계부"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())
	b.WriteString(subStyle.Render(fmt.Sprintf(" %s 불러오는 중...", a.month.Label())))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Today).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"이동", [][2]string{
			{"h l s b x", "탭 바로가기"},
			{"← → tab", "이전 / 다음 탭"},
			{"[ ]", "이전 / 다음 달"},
			{"t", "이번 달로"},
			{"j k g G", "내역 이동"},
		}},
		{"기록", [][2]string{
			{"a", "지출 추가"},
			{"i", "수입 추가"},
			{"e Enter", "선택한 내역 수정"},
			{"d", "선택한 내역 삭제"},
			{"B", "예산 편집"},
		}},
		{"기타", [][2]string{
			{"r", "새로고침"},
			{"Esc", "폼 닫기"},
			{"?", "도움말"},
			{"q", "종료"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ 단축키"))
	for _, s := range sections {
		b.WriteString("\n\n")
		b.WriteString(sectionStyle.Render(s.title))
		for _, bind := range s.bindings {
			b.WriteString("\n")
			b.WriteString(keyStyle.Render(fmt.Sprintf("  %-10s", bind[0])))
			b.WriteString(descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("아무 키나 누르면 닫혀요"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, a.month.Label(), w)

	busy := ""
	if a.loading {
		busy = a.spinner.View() + " 불러오는 중"
	}
	statusBar := components.RenderStatusBar(w, a.hints(), a.status, busy)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case components.TabHome:
		content = a.renderHomeTab(cw)
	case components.TabList:
		content = a.renderListTab(cw, contentH)
	case components.TabSummary:
		content = a.renderSummaryTab(cw)
	case components.TabBudget:
		content = a.renderBudgetTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// hints returns the key hints of the active tab.
func (a App) hints() string {
	switch {
	case a.list.confirmDelete:
		return "삭제할까요? [y] 예  [아무 키] 취소"
	case a.activeTab == components.TabList:
		return "[a]지출 [i]수입 [e]수정 [d]삭제 [ ]월 [?]도움말 [q]종료"
	case a.activeTab == components.TabBudget:
		return "[B]예산 편집 [ ]월 [?]도움말 [q]종료"
	case a.activeTab == components.TabSettings:
		return "[j/k]이동 [Enter]수정 [?]도움말 [q]종료"
	default:
		return "[a]지출 [i]수입 [B]예산 [ ]월 [?]도움말 [q]종료"
	}
}

// tabAtX returns the tab index at column x of the tab bar, or -1.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		w := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

// errorText turns an error into a status line.
func errorText(err error) string {
	var verr *budget.ValidationError
	if errors.As(err, &verr) {
		return budget.OverTotalMessage
	}
	return "오류: " + err.Error()
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= limit {
		return s
	}
	var b strings.Builder
	w := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if w+rw > limit-1 {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return b.String() + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with the background
// color so gaps between cards are filled.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
