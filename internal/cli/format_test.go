package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func TestFormatWon(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0원"},
		{500, "500원"},
		{1500000, "1,500,000원"},
		{-20000, "-20,000원"},
	}
	for _, tt := range tests {
		if got := FormatWon(tt.in); got != tt.want {
			t.Errorf("FormatWon(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatSignedWon(12000); got != "+12,000원" {
		t.Errorf("FormatSignedWon(12000) = %q", got)
	}
}

func TestFormatManWon(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0원"},
		{3500, "3,500원"},
		{10000, "1만 원"},
		{1304000, "130만 원"},
		{12345678, "1,235만 원"},
	}
	for _, tt := range tests {
		if got := FormatManWon(tt.in); got != tt.want {
			t.Errorf("FormatManWon(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(decimal.RequireFromString("12.5")); got != "12.5%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatSignedPercent(decimal.RequireFromString("12.5")); got != "+12.5%" {
		t.Errorf("FormatSignedPercent(+) = %q", got)
	}
	if got := FormatSignedPercent(decimal.RequireFromString("-3")); got != "-3.0%" {
		t.Errorf("FormatSignedPercent(-) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2026-02-03"); got != "2월 3일 (화)" {
		t.Errorf("FormatDate = %q, want 2월 3일 (화)", got)
	}
	if got := FormatDate("nope"); got != "nope" {
		t.Errorf("FormatDate(malformed) = %q", got)
	}
	if got := FormatWeekday(time.Sunday); got != "일" {
		t.Errorf("FormatWeekday(Sunday) = %q", got)
	}
}

func TestRenderTableAlignsHangul(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"카테고리", "금액"},
		Rows: [][]string{
			{"식비", "80,000원"},
			{"---"},
			{"교통/차량", "20,000원"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	want := lipgloss.Width(lines[0])
	for i, l := range lines {
		if w := lipgloss.Width(l); w != want {
			t.Errorf("line %d width = %d, want %d: %q", i, w, want, l)
		}
	}
}

func TestRenderUsageBarCaps(t *testing.T) {
	bar := RenderUsageBar(150, 80, 10)
	if w := lipgloss.Width(bar); w != 10 {
		t.Errorf("bar width = %d, want 10", w)
	}
}

func TestUsageColor(t *testing.T) {
	tests := []struct {
		pct    int64
		warnAt float64
		want   lipgloss.Color
	}{
		{50, 80, ColorSafe},
		{80, 80, ColorWarn},
		{100, 80, ColorWarn},
		{101, 80, ColorOver},
		{85, 90, ColorSafe},
	}
	for _, tt := range tests {
		if got := UsageColor(tt.pct, tt.warnAt); got != tt.want {
			t.Errorf("UsageColor(%d, %v) = %s, want %s", tt.pct, tt.warnAt, got, tt.want)
		}
	}
}
