package tui

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/budget"
	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

// Form values are held by pointer: huh binds to their addresses and the
// App is copied on every update.

type txValues struct {
	id       int64
	typ      model.TxType
	date     string
	amount   string
	category string
	sub      string
	pay      string
	memo     string
}

func (v *txValues) transaction() (model.Transaction, error) {
	amount, err := parseAmount(v.amount)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ID:            v.id,
		Date:          v.date,
		Amount:        amount,
		Type:          v.typ,
		MainCategory:  v.category,
		SubCategory:   v.sub,
		PaymentMethod: v.pay,
		Memo:          v.memo,
	}, nil
}

type budgetValues struct {
	total   string
	names   []string
	amounts []string
	save    bool
}

func (v *budgetValues) parse() (int64, map[string]int64, error) {
	total, err := parseBudget(v.total)
	if err != nil {
		return 0, nil, fmt.Errorf("전체: %w", err)
	}
	cats := make(map[string]int64, len(v.names))
	for i, name := range v.names {
		n, err := parseBudget(v.amounts[i])
		if err != nil {
			return 0, nil, fmt.Errorf("%s: %w", name, err)
		}
		if n > 0 {
			cats[name] = n
		}
	}
	return total, cats, nil
}

// newBudgetValues pre-fills the editor from draft. Draft categories no
// longer in names follow them in name order so they can be kept or cleared.
func newBudgetValues(draft budget.Draft, names []string) *budgetValues {
	all := append([]string{}, names...)
	var extra []string
	for n := range draft.Categories {
		if !slices.Contains(names, n) {
			extra = append(extra, n)
		}
	}
	sort.Strings(extra)
	all = append(all, extra...)

	v := &budgetValues{names: all, amounts: make([]string, len(all))}
	if draft.Total > 0 {
		v.total = strconv.FormatInt(draft.Total, 10)
	}
	for i, n := range all {
		if amt := draft.Categories[n]; amt > 0 {
			v.amounts[i] = strconv.FormatInt(amt, 10)
		}
	}
	return v
}

var errNotNumber = errors.New("숫자로 입력해 주세요")

// parseAmount reads a won amount, tolerating separators and a 원 suffix.
func parseAmount(s string) (int64, error) {
	s = strings.NewReplacer(",", "", " ", "", "원", "").Replace(s)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errNotNumber
	}
	return n, nil
}

// parseBudget is parseAmount where empty means no budget.
func parseBudget(s string) (int64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	n, err := parseAmount(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("0 이상으로 입력해 주세요")
	}
	return n, nil
}

func validAmount(s string) error {
	n, err := parseAmount(s)
	if err != nil {
		return err
	}
	if n <= 0 {
		return errors.New("0보다 큰 금액을 입력해 주세요")
	}
	return nil
}

func validBudget(s string) error {
	_, err := parseBudget(s)
	return err
}

func validDate(s string) error {
	d, err := time.Parse(model.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return errors.New("YYYY-MM-DD 형식으로 입력해 주세요")
	}
	if d.Year() < model.MinYear {
		return fmt.Errorf("%d년 이후 날짜를 입력해 주세요", model.MinYear)
	}
	return nil
}

// withOption appends current to options when it is missing, so editing a
// row whose category was since removed keeps its value.
func withOption(options []string, current string) []string {
	if current == "" {
		return options
	}
	for _, o := range options {
		if o == current {
			return options
		}
	}
	return append(append([]string{}, options...), current)
}

func newTxForm(title string, v *txValues, categories []string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("날짜").
				Placeholder("YYYY-MM-DD").
				Validate(validDate).
				Value(&v.date),
			huh.NewInput().
				Title("금액").
				Placeholder("12,000").
				Validate(validAmount).
				Value(&v.amount),
			huh.NewSelect[string]().
				Title("카테고리").
				Options(huh.NewOptions(withOption(categories, v.category)...)...).
				Value(&v.category),
			huh.NewInput().
				Title("세부 카테고리").
				CharLimit(40).
				Value(&v.sub),
			huh.NewSelect[string]().
				Title("결제수단").
				Options(huh.NewOptions(withOption(model.PaymentMethodsFor(v.typ), v.pay)...)...).
				Value(&v.pay),
			huh.NewInput().
				Title("메모").
				CharLimit(200).
				Value(&v.memo),
		).Title(title),
	).WithTheme(huh.ThemeCharm())
}

func categoriesFor(ctx context.Context, l Ledger, typ model.TxType) ([]string, error) {
	if typ == model.Income {
		return model.IncomeCategories, nil
	}
	return l.CategoryNames(ctx)
}

// entryDate is the date a new entry starts with: today in the current
// month, else the first of the month on screen.
func (a App) entryDate() string {
	now := a.ledger.Now()
	if a.month.Contains(now) {
		return now.Format(model.DateLayout)
	}
	return a.month.Date(1)
}

// addFormCmd loads the catalog and opens the add form for typ.
func (a App) addFormCmd(typ model.TxType) tea.Cmd {
	ctx, l := a.ctx, a.ledger
	v := &txValues{typ: typ, date: a.entryDate(), pay: a.cfg.PaymentFor(typ)}
	title := "지출 추가"
	if typ == model.Income {
		title = "수입 추가"
	}

	return func() tea.Msg {
		cats, err := categoriesFor(ctx, l, typ)
		if err != nil {
			return formReadyMsg{err: err}
		}
		if len(cats) > 0 {
			v.category = cats[0]
		}
		return formReadyMsg{
			form: newTxForm(title, v, cats),
			submit: func() tea.Cmd {
				return func() tea.Msg {
					t, err := v.transaction()
					if err != nil {
						return doneMsg{err: err}
					}
					saved, err := l.AddTransaction(ctx, t)
					if err != nil {
						return doneMsg{err: err}
					}
					return doneMsg{status: fmt.Sprintf("%s %s 저장했어요", saved.MainCategory, cli.FormatWon(saved.Amount))}
				}
			},
		}
	}
}

// editFormCmd opens the edit form for t.
func (a App) editFormCmd(t model.Transaction) tea.Cmd {
	ctx, l := a.ctx, a.ledger
	v := &txValues{
		id:       t.ID,
		typ:      t.Type,
		date:     t.Date,
		amount:   strconv.FormatInt(t.Amount, 10),
		category: t.MainCategory,
		sub:      t.SubCategory,
		pay:      t.PaymentMethod,
		memo:     t.Memo,
	}

	return func() tea.Msg {
		cats, err := categoriesFor(ctx, l, t.Type)
		if err != nil {
			return formReadyMsg{err: err}
		}
		return formReadyMsg{
			form: newTxForm(fmt.Sprintf("%s 수정 #%d", t.Type.Label(), t.ID), v, cats),
			submit: func() tea.Cmd {
				return func() tea.Msg {
					tx, err := v.transaction()
					if err != nil {
						return doneMsg{err: err}
					}
					if err := l.UpdateTransaction(ctx, tx); err != nil {
						return doneMsg{err: err}
					}
					return doneMsg{status: fmt.Sprintf("#%d 수정했어요", tx.ID)}
				}
			},
		}
	}
}

// budgetFormCmd loads the month's budget draft and opens the editor.
func (a App) budgetFormCmd() tea.Cmd {
	ctx, l, ym := a.ctx, a.ledger, a.month

	return func() tea.Msg {
		draft, err := l.BudgetDraft(ctx, ym)
		if err != nil {
			return formReadyMsg{err: err}
		}
		names, err := l.CategoryNames(ctx)
		if err != nil {
			return formReadyMsg{err: err}
		}

		v := newBudgetValues(draft, names)

		note := "비워 두면 예산을 두지 않아요."
		if draft.FromPrevious && (draft.Total > 0 || len(draft.Categories) > 0) {
			note = fmt.Sprintf("%s 예산을 불러왔어요. %s", draft.Source.Label(), note)
		}

		fields := make([]huh.Field, 0, len(v.names))
		for i, n := range v.names {
			fields = append(fields, huh.NewInput().
				Title(n).
				Validate(validBudget).
				Value(&v.amounts[i]))
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewNote().Title(ym.Label()+" 예산").Description(note),
				huh.NewInput().Title("전체 예산").Validate(validBudget).Value(&v.total),
			),
			huh.NewGroup(fields...).Title("카테고리 예산"),
			huh.NewGroup(
				huh.NewConfirm().
					Title("저장할까요?").
					Affirmative("저장").
					Negative("취소").
					Validate(func(save bool) error {
						if !save {
							return nil
						}
						total, cats, err := v.parse()
						if err != nil {
							return err
						}
						if err := budget.Validate(total, cats); err != nil {
							if errors.Is(err, budget.ErrOverTotal) {
								return errors.New(budget.OverTotalMessage)
							}
							return err
						}
						return nil
					}).
					Value(&v.save),
			),
		).WithTheme(huh.ThemeCharm())

		return formReadyMsg{
			form: form,
			submit: func() tea.Cmd {
				return func() tea.Msg {
					if !v.save {
						return doneMsg{status: "예산 편집을 취소했어요"}
					}
					total, cats, err := v.parse()
					if err != nil {
						return doneMsg{err: err}
					}
					if err := l.SaveBudgets(ctx, ym, total, cats); err != nil {
						return doneMsg{err: err}
					}
					return doneMsg{status: ym.Label() + " 예산을 저장했어요"}
				}
			},
		}
	}
}

// openForm shows form and runs submit when it completes.
func (a App) openForm(form *huh.Form, submit func() tea.Cmd) (App, tea.Cmd) {
	a.form = form.WithWidth(a.formWidth()).WithHeight(max(a.height-4, 10))
	a.onSubmit = submit
	a.status = components.Status{}
	return a, a.form.Init()
}

func (a *App) closeForm() {
	a.form = nil
	a.onSubmit = nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := a.form.Update(msg)
	if f, ok := m.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		submit := a.onSubmit
		a.closeForm()
		if submit == nil {
			return a, nil
		}
		return a, submit()
	case huh.StateAborted:
		a.closeForm()
		return a, nil
	}
	return a, cmd
}

func (a App) formWidth() int {
	return max(40, min(a.width-8, 72))
}

func (a App) viewForm() string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderFocus).
		Padding(1, 2).
		Render(a.form.View())
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Render("Esc 닫기")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Right, card, hint),
		lipgloss.WithWhitespaceBackground(t.Background))
}
