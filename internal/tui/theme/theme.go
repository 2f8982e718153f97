// Package theme defines the color themes of the gagyebu TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme maps the TUI's color roles to concrete colors.
type Theme struct {
	Name string

	Background  lipgloss.Color
	Surface     lipgloss.Color // card and panel fill
	Highlight   lipgloss.Color // selected row, active tab
	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	TextDim   lipgloss.Color
	TextMuted lipgloss.Color
	Text      lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	Income  lipgloss.Color
	Expense lipgloss.Color
	Safe    lipgloss.Color // budget usage below the warning level
	Warn    lipgloss.Color
	Over    lipgloss.Color
	Chart   lipgloss.Color
	Today   lipgloss.Color
}

// Active is the theme every component renders with.
var Active = FlexokiDark

// FlexokiDark is the default warm dark theme.
var FlexokiDark = Theme{
	Name:         "flexoki-dark",
	Background:   "#100F0F",
	Surface:      "#1C1B1A",
	Highlight:    "#343331",
	Border:       "#403E3C",
	BorderFocus:  "#3AA99F",
	TextDim:      "#575653",
	TextMuted:    "#878580",
	Text:         "#FFFCF0",
	Accent:       "#3AA99F",
	AccentBright: "#5BC8BE",
	Income:       "#4385BE",
	Expense:      "#D14D41",
	Safe:         "#879A39",
	Warn:         "#D0A215",
	Over:         "#DA702C",
	Chart:        "#6BA3D6",
	Today:        "#CE5D97",
}

// CatppuccinMocha is a soft pastel theme.
var CatppuccinMocha = Theme{
	Name:         "catppuccin-mocha",
	Background:   "#1E1E2E",
	Surface:      "#313244",
	Highlight:    "#585B70",
	Border:       "#585B70",
	BorderFocus:  "#89B4FA",
	TextDim:      "#6C7086",
	TextMuted:    "#A6ADC8",
	Text:         "#CDD6F4",
	Accent:       "#89B4FA",
	AccentBright: "#B4D0FB",
	Income:       "#89B4FA",
	Expense:      "#F38BA8",
	Safe:         "#A6E3A1",
	Warn:         "#F9E2AF",
	Over:         "#FAB387",
	Chart:        "#94E2D5",
	Today:        "#F5C2E7",
}

// TokyoNight is a cool blue and purple theme.
var TokyoNight = Theme{
	Name:         "tokyo-night",
	Background:   "#1A1B26",
	Surface:      "#24283B",
	Highlight:    "#414868",
	Border:       "#565F89",
	BorderFocus:  "#7AA2F7",
	TextDim:      "#565F89",
	TextMuted:    "#A9B1D6",
	Text:         "#C0CAF5",
	Accent:       "#7AA2F7",
	AccentBright: "#A9C1FF",
	Income:       "#7DCFFF",
	Expense:      "#F7768E",
	Safe:         "#9ECE6A",
	Warn:         "#E0AF68",
	Over:         "#FF9E64",
	Chart:        "#7AA2F7",
	Today:        "#BB9AF7",
}

// Terminal uses the 16 ANSI colors only.
var Terminal = Theme{
	Name:         "terminal",
	Background:   "0",
	Surface:      "0",
	Highlight:    "8",
	Border:       "8",
	BorderFocus:  "6",
	TextDim:      "8",
	TextMuted:    "7",
	Text:         "15",
	Accent:       "6",
	AccentBright: "14",
	Income:       "4",
	Expense:      "1",
	Safe:         "2",
	Warn:         "3",
	Over:         "11",
	Chart:        "12",
	Today:        "5",
}

// All lists the selectable themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names returns the names of All, in order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// UsageColor picks the color of a budget usage percentage.
func (t Theme) UsageColor(pct int64, warnAt float64) lipgloss.Color {
	switch {
	case pct > 100:
		return t.Over
	case float64(pct) >= warnAt:
		return t.Warn
	default:
		return t.Safe
	}
}
