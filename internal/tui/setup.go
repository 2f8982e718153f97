package tui

import (
	"errors"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/gagyebu/internal/config"
	"github.com/theirongolddev/gagyebu/internal/model"
	"github.com/theirongolddev/gagyebu/internal/tui/components"
	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

// SetupValues backs the setup form. It is shared by the setup command and
// the first-run form of the TUI.
type SetupValues struct {
	cfg    config.Config
	recent string
	warn   string
}

// NewSetupValues starts the form from cfg.
func NewSetupValues(cfg config.Config) *SetupValues {
	return &SetupValues{
		cfg:    cfg,
		recent: strconv.Itoa(cfg.General.RecentLimit),
		warn:   strconv.FormatFloat(cfg.Budget.WarnPercent, 'f', -1, 64),
	}
}

// Form builds the setup form bound to v.
func (v *SetupValues) Form() *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("gagyebu 설정").
				Description(config.ConfigPath()+" 에 저장돼요."),
			huh.NewInput().
				Title("데이터베이스 파일").
				Description("비워 두면 기본 위치를 써요.").
				Value(&v.cfg.General.DBPath),
			huh.NewSelect[string]().
				Title("기본 결제수단").
				Options(huh.NewOptions(model.ExpensePaymentMethods...)...).
				Value(&v.cfg.General.DefaultPayment),
			huh.NewInput().
				Title("홈 화면 최근 내역 수").
				Validate(PositiveInt).
				Value(&v.recent),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("예산 경고 기준 (%)").
				Validate(Percent).
				Value(&v.warn),
			huh.NewConfirm().
				Title("예산을 한 번에 저장할까요?").
				Description("실패하면 아무것도 저장하지 않아요.").
				Affirmative("예").
				Negative("아니오").
				Value(&v.cfg.Budget.AtomicSave),
			huh.NewSelect[string]().
				Title("테마").
				Options(themeOpts...).
				Value(&v.cfg.Appearance.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

// Config returns the edited config. Call it after the form completes.
func (v *SetupValues) Config() config.Config {
	cfg := v.cfg
	cfg.General.DBPath = strings.TrimSpace(cfg.General.DBPath)
	if n, err := strconv.Atoi(strings.TrimSpace(v.recent)); err == nil {
		cfg.General.RecentLimit = n
	}
	if p, err := strconv.ParseFloat(strings.TrimSpace(v.warn), 64); err == nil {
		cfg.Budget.WarnPercent = p
	}
	return cfg
}

// PositiveInt validates a whole number above zero.
func PositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("1 이상의 정수를 입력해 주세요")
	}
	return nil
}

// Percent validates a warning threshold such as 80.
func Percent(s string) error {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p <= 0 || p > 1000 {
		return errors.New("80 같은 퍼센트 값을 입력해 주세요")
	}
	return nil
}

// configSavedMsg reports a config write from setup or the settings tab.
type configSavedMsg struct {
	cfg config.Config
	err error
}

func saveConfigCmd(cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		return configSavedMsg{cfg: cfg, err: config.Save(cfg)}
	}
}

// openSetup shows the first-run form over the loaded ledger.
func (a App) openSetup() (App, tea.Cmd) {
	a.needSetup = false
	v := NewSetupValues(a.cfg)
	return a.openForm(v.Form(), func() tea.Cmd {
		return saveConfigCmd(v.Config())
	})
}

// applyConfig installs a saved config. The database path only takes
// effect on the next start.
func (a App) applyConfig(msg configSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.status = components.Status{Text: "설정 저장 실패: " + msg.err.Error(), Error: true}
		return a, nil
	}
	dbChanged := msg.cfg.General.DBPath != a.cfg.General.DBPath
	a.cfg = msg.cfg
	theme.SetActive(a.cfg.Appearance.Theme)
	a.spinner.Style = a.spinner.Style.Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	text := "설정을 저장했어요"
	if dbChanged {
		text += " (데이터베이스 경로는 다시 시작하면 적용돼요)"
	}
	a.status = components.Status{Text: text}
	return a, nil
}
