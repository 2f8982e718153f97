package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/gagyebu/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := components.TabVisualWidth(tab, i == active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1 // separator
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("active=%d x=%d past the tabs -> tab=%d, want -1", active, pos+5, got)
		}
	}
}

func TestWheelMovesListCursor(t *testing.T) {
	a := loadedApp(t, newFakeLedger())
	a.activeTab = components.TabList

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if got := m.(App).list.cursor; got != 2 {
		t.Errorf("cursor = %d, want 2 (clamped)", got)
	}

	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if got := m.(App).list.cursor; got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
}

func TestClickSelectsTab(t *testing.T) {
	a := loadedApp(t, newFakeLedger())
	x := components.TabVisualWidth(components.Tabs[0], true) + 1 + 1

	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != components.TabList {
		t.Errorf("activeTab = %d, want %d", got, components.TabList)
	}
}
