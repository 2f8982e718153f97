// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatWon formats an amount with comma separators and the won suffix.
// e.g., 1500000 -> "1,500,000원"
func FormatWon(n int64) string {
	return FormatNumber(n) + "원"
}

// FormatSignedWon is FormatWon with an explicit sign on non-zero values.
func FormatSignedWon(n int64) string {
	if n > 0 {
		return "+" + FormatWon(n)
	}
	return FormatWon(n)
}

// FormatManWon formats an amount compactly in units of 10,000 won.
// Amounts under 10,000 keep full precision.
// e.g., 0 -> "0원", 3500 -> "3,500원", 1304000 -> "130만 원"
func FormatManWon(n int64) string {
	if n == 0 {
		return "0원"
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs < 10_000 {
		return FormatWon(n)
	}
	man := int64(math.Round(float64(n) / 10_000))
	return FormatNumber(man) + "만 원"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a percentage value with one decimal place.
// e.g., 12.34 -> "12.3%"
func FormatPercent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// FormatSignedPercent is FormatPercent with an explicit sign on positive
// values.
func FormatSignedPercent(p decimal.Decimal) string {
	if p.IsPositive() {
		return "+" + FormatPercent(p)
	}
	return FormatPercent(p)
}

// FormatWholePercent formats a rounded percentage. e.g., 83 -> "83%"
func FormatWholePercent(p int64) string {
	return strconv.FormatInt(p, 10) + "%"
}

var weekdays = []string{"일", "월", "화", "수", "목", "금", "토"}

// FormatWeekday returns the one-letter Korean weekday name.
func FormatWeekday(d time.Weekday) string {
	if d >= 0 && int(d) < len(weekdays) {
		return weekdays[d]
	}
	return "?"
}

// FormatDate renders a "YYYY-MM-DD" date as "2월 3일 (화)". Malformed
// input is returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d월 %d일 (%s)", int(t.Month()), t.Day(), FormatWeekday(t.Weekday()))
}
