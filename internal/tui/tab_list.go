package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/cli"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/pipeline"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

// listState holds the transaction list tab state.
type listState struct {
	cursor        int
	filter        model.TxType // empty shows both types
	confirmDelete bool
}

func (s *listState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

// clamp keeps the cursor inside a list of n rows.
func (s *listState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// nextFilter cycles all, expense, income.
func (s *listState) nextFilter() {
	switch s.filter {
	case "":
		s.filter = model.Expense
	case model.Expense:
		s.filter = model.Income
	default:
		s.filter = ""
	}
	s.cursor = 0
}

// visibleTxs returns the month's transactions under the list filter.
func (a App) visibleTxs() []model.Transaction {
	if a.list.filter == "" {
		return a.data.txs
	}
	return pipeline.FilterByType(a.data.txs, a.list.filter)
}

func (a App) selectedTx() (model.Transaction, bool) {
	txs := a.visibleTxs()
	if a.list.cursor < 0 || a.list.cursor >= len(txs) {
		return model.Transaction{}, false
	}
	return txs[a.list.cursor], true
}

func (a App) updateListKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.visibleTxs())
	switch key {
	case "j", "down":
		a.list.move(1, n)
	case "k", "up":
		a.list.move(-1, n)
	case "ctrl+d", "pgdown":
		a.list.move(10, n)
	case "ctrl+u", "pgup":
		a.list.move(-10, n)
	case "g", "home":
		a.list.cursor = 0
	case "G", "end":
		a.list.move(n, n)
	case "f":
		a.list.nextFilter()
	case "e", "enter":
		tx, ok := a.selectedTx()
		if !ok {
			return a, nil, true
		}
		return a, a.editFormCmd(tx), true
	case "d", "delete":
		if _, ok := a.selectedTx(); ok {
			a.list.confirmDelete = true
		}
	default:
		return a, nil, false
	}
	return a, nil, true
}

// confirmDelete handles the key pressed at the delete prompt. Only y
// deletes.
func (a App) confirmDelete(key string) (tea.Model, tea.Cmd) {
	a.list.confirmDelete = false
	if key != "y" && key != "Y" {
		a.status = components.Status{Text: "삭제를 취소했어요"}
		return a, nil
	}
	tx, ok := a.selectedTx()
	if !ok {
		return a, nil
	}
	return a, deleteTxCmd(a.ctx, a.ledger, tx)
}

func deleteTxCmd(ctx context.Context, l Ledger, tx model.Transaction) tea.Cmd {
	return func() tea.Msg {
		if err := l.DeleteTransaction(ctx, tx.ID); err != nil {
			return doneMsg{err: err}
		}
		return doneMsg{status: fmt.Sprintf("#%d %s %s 삭제했어요", tx.ID, tx.MainCategory, cli.FormatWon(tx.Amount))}
	}
}

func (a App) renderListTab(cw, h int) string {
	t := theme.Active
	txs := a.visibleTxs()

	title := a.month.Label() + " 내역"
	if a.list.filter != "" {
		title += " · " + a.list.filter.Label()
	}

	if len(txs) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		return components.ContentCard(title, muted.Render("내역이 없어요. [a] 지출 추가 · [i] 수입 추가"), cw)
	}

	listW, detailW := cw, cw
	if !a.isCompactLayout() {
		detailW = max(36, cw/3)
		listW = cw - detailW
	}

	visible := h - 5 // borders, title, footer
	if a.isCompactLayout() {
		visible = h - 14 // detail card below
	}
	visible = max(visible, 3)

	listCard := components.ContentCard(
		fmt.Sprintf("%s (%d)", title, len(txs)),
		a.renderTxRows(txs, components.CardInnerWidth(listW), visible),
		listW,
	)

	sel, _ := a.selectedTx()
	detailCard := components.ContentCard(fmt.Sprintf("#%d", sel.ID), txDetail(sel), detailW)

	if a.isCompactLayout() {
		return listCard + "\n" + detailCard
	}
	return components.CardRow([]string{listCard, detailCard})
}

// renderTxRows renders a window of visible rows around the cursor, then a
// totals line.
func (a App) renderTxRows(txs []model.Transaction, w, visible int) string {
	t := theme.Active
	cursor := a.list.cursor

	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}
	end := min(offset+visible, len(txs))

	const dateW, typeW, amtW = 6, 5, 13
	catW := max(8, w-dateW-typeW-amtW-3)

	var b strings.Builder
	for i := offset; i < end; i++ {
		tx := txs[i]
		bg := t.Surface
		if i == cursor {
			bg = t.Highlight
		}
		base := lipgloss.NewStyle().Background(bg)
		amtColor := t.Expense
		if tx.Type == model.Income {
			amtColor = t.Income
		}

		label := tx.MainCategory
		if tx.SubCategory != "" {
			label += "/" + tx.SubCategory
		}
		if tx.Memo != "" {
			label += " · " + tx.Memo
		}
		label = truncStr(label, catW)

		row := base.Foreground(t.TextMuted).Render(fmt.Sprintf("%-*s", dateW, tx.Date[5:])) +
			base.Foreground(amtColor).Render(padCell(tx.Type.Label(), typeW)) +
			base.Foreground(t.Text).Bold(i == cursor).Render(padCell(label, catW+1)) +
			base.Foreground(amtColor).Render(fmt.Sprintf("%*s", amtW, cli.FormatWon(tx.Amount)))
		if gap := w - lipgloss.Width(row); gap > 0 {
			row += base.Render(strings.Repeat(" ", gap))
		}
		b.WriteString(row)
		b.WriteString("\n")
	}

	income, expense := pipeline.Totals(txs)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	b.WriteString(dim.Render(fmt.Sprintf("수입 %s · 지출 %s · [f] 필터",
		cli.FormatWon(income), cli.FormatWon(expense))))
	return b.String()
}

func txDetail(tx model.Transaction) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)

	amtColor := t.Expense
	if tx.Type == model.Income {
		amtColor = t.Income
	}
	amount := lipgloss.NewStyle().Foreground(amtColor).Background(t.Surface).Bold(true)

	or := func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	}
	rows := [][2]string{
		{"날짜", cli.FormatDate(tx.Date)},
		{"구분", tx.Type.Label()},
		{"카테고리", tx.MainCategory},
		{"세부", or(tx.SubCategory)},
		{"결제수단", tx.PaymentMethod},
		{"메모", or(tx.Memo)},
	}

	var b strings.Builder
	b.WriteString(amount.Render(cli.FormatWon(tx.Amount)))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(label.Render(padCell(r[0], 9)))
		b.WriteString(value.Render(r[1]))
	}
	b.WriteString("\n\n")
	b.WriteString(label.Render("[e] 수정  [d] 삭제"))
	return b.String()
}

// padCell pads s with spaces to display width w.
func padCell(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
