package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/config"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldPayment
	settingsFieldRecent
	settingsFieldWarn
	settingsFieldAtomic
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

type settingsField struct {
	label string
	value string
	hint  string
}

func (a App) settingsFields() []settingsField {
	c := a.cfg
	return []settingsField{
		{"테마", c.Appearance.Theme, strings.Join(theme.Names(), ", ")},
		{"기본 결제수단", c.General.DefaultPayment, strings.Join(model.ExpensePaymentMethods, ", ")},
		{"최근 내역 수", strconv.Itoa(c.General.RecentLimit), "다시 시작하면 적용돼요"},
		{"예산 경고 기준 (%)", strconv.FormatFloat(c.Budget.WarnPercent, 'f', -1, 64), "80"},
		{"예산 한 번에 저장", strconv.FormatBool(c.Budget.AtomicSave), "true 또는 false, 다시 시작하면 적용돼요"},
	}
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
	case "enter", "e":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	f := a.settingsFields()[a.settings.cursor]

	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	ti.Placeholder = f.hint
	ti.SetValue(f.value)
	ti.Focus()

	a.settings.input = ti
	a.settings.editing = true
	a.status = components.Status{}
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		cfg, err := applySetting(a.cfg, a.settings.cursor, a.settings.input.Value())
		if err != nil {
			a.status = components.Status{Text: err.Error(), Error: true}
			return a, nil
		}
		a.settings.editing = false
		return a, saveConfigCmd(cfg)
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// applySetting returns cfg with one field set from raw input.
func applySetting(cfg config.Config, field int, raw string) (config.Config, error) {
	val := strings.TrimSpace(raw)
	switch field {
	case settingsFieldTheme:
		for _, name := range theme.Names() {
			if name == val {
				cfg.Appearance.Theme = val
				return cfg, nil
			}
		}
		return cfg, fmt.Errorf("알 수 없는 테마: %s", val)
	case settingsFieldPayment:
		for _, m := range model.ExpensePaymentMethods {
			if m == val {
				cfg.General.DefaultPayment = val
				return cfg, nil
			}
		}
		return cfg, fmt.Errorf("알 수 없는 결제수단: %s", val)
	case settingsFieldRecent:
		if err := PositiveInt(val); err != nil {
			return cfg, err
		}
		cfg.General.RecentLimit, _ = strconv.Atoi(val)
	case settingsFieldWarn:
		if err := Percent(val); err != nil {
			return cfg, err
		}
		cfg.Budget.WarnPercent, _ = strconv.ParseFloat(val, 64)
	case settingsFieldAtomic:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return cfg, errors.New("true 또는 false로 입력해 주세요")
		}
		cfg.Budget.AtomicSave = b
	}
	return cfg, nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.Text).Background(t.Highlight).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Highlight).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Highlight)
	const labelW = 20

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range a.settingsFields() {
		switch {
		case a.settings.editing && i == a.settings.cursor:
			formBody.WriteString(accentStyle.Render("▸ " + padCell(f.label, labelW)))
			formBody.WriteString(a.settings.input.View())
		case i == a.settings.cursor:
			line := markerStyle.Render("▸ ") +
				selectedLabelStyle.Render(padCell(f.label, labelW)) +
				selectedStyle.Render(f.value)
			if pad := innerW - lipgloss.Width(line); pad > 0 {
				line += lipgloss.NewStyle().Background(t.Highlight).Render(strings.Repeat(" ", pad))
			}
			formBody.WriteString(line)
		default:
			formBody.WriteString(labelStyle.Render("  " + padCell(f.label, labelW)))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] 이동  [Enter] 수정  [Esc] 취소"))

	var infoBody strings.Builder
	info := [][2]string{
		{"데이터베이스", a.ledger.Path()},
		{"설정 파일", config.ConfigPath()},
		{"로그 파일", a.cfg.LogPath()},
	}
	for i, row := range info {
		if i > 0 {
			infoBody.WriteString("\n")
		}
		infoBody.WriteString(labelStyle.Render(padCell(row[0], 14)))
		infoBody.WriteString(valueStyle.Render(truncStr(row[1], innerW-14)))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("설정", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("파일", infoBody.String(), cw))
	return b.String()
}
