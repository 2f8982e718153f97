package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/gagyebu/internal/tui/theme"
)

// Tab is one entry of the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tab indexes.
const (
	TabHome = iota
	TabList
	TabSummary
	TabBudget
	TabSettings
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{
	{Name: "홈", Key: 'h'},
	{Name: "내역", Key: 'l'},
	{Name: "요약", Key: 's'},
	{Name: "예산", Key: 'b'},
	{Name: "설정", Key: 'x'},
}

func tabLabel(tab Tab, active bool) string {
	if active {
		return " " + tab.Name + " "
	}
	return " " + tab.Name + "[" + string(tab.Key) + "] "
}

// TabVisualWidth returns the rendered width of a tab in cells.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(tabLabel(tab, active))
}

// RenderTabBar renders the tab bar followed by right-aligned info text.
func RenderTabBar(activeIdx int, info string, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Highlight).Bold(true)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface)
	infoStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	fill := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for i, tab := range Tabs {
		if i == activeIdx {
			b.WriteString(activeStyle.Render(tabLabel(tab, true)))
		} else {
			b.WriteString(inactiveStyle.Render(" " + tab.Name))
			b.WriteString(keyStyle.Render("[" + string(tab.Key) + "]"))
			b.WriteString(inactiveStyle.Render(" "))
		}
		if i < len(Tabs)-1 {
			b.WriteString(sepStyle.Render("│"))
		}
	}

	left := b.String()
	right := infoStyle.Render(info + " ")
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + fill.Render(strings.Repeat(" ", gap)) + right
}

// TabIdxByKey returns the tab index for a shortcut key, or -1.
func TabIdxByKey(key string) int {
	for i, tab := range Tabs {
		if string(tab.Key) == key {
			return i
		}
	}
	return -1
}
