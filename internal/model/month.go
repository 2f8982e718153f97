package model

import (
	"fmt"
	"time"
)

// YearMonth is the aggregation window every summary query is scoped to.
type YearMonth struct {
	Year  int
	Month int
}

// YearMonthOf returns the window containing t. The zero time maps to the
// zero YearMonth.
func YearMonthOf(t time.Time) YearMonth {
	if t.IsZero() {
		return YearMonth{}
	}
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", s, err)
	}
	return YearMonthOf(t), nil
}

// IsZero reports whether ym is unset.
func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}

// Valid reports whether the month is in 1..12.
func (ym YearMonth) Valid() bool {
	return ym.Year > 0 && ym.Month >= 1 && ym.Month <= 12
}

// Prev returns the preceding month, rolling January back to December.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month <= 1 {
		return YearMonth{Year: ym.Year - 1, Month: 12}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Next returns the following month, rolling December over to January.
func (ym YearMonth) Next() YearMonth {
	if ym.Month >= 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// First returns midnight UTC of the first day of the month.
func (ym YearMonth) First() time.Time {
	return time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the month.
func (ym YearMonth) Days() int {
	return ym.First().AddDate(0, 1, -1).Day()
}

// Date returns the "YYYY-MM-DD" string of the given day in the month.
func (ym YearMonth) Date(day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", ym.Year, ym.Month, day)
}

// Contains reports whether t falls in the month.
func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && int(t.Month()) == ym.Month
}

// Before reports whether ym is earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// String returns "YYYY-MM".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// Label returns the Korean heading form, e.g. "2026년 2월".
func (ym YearMonth) Label() string {
	return fmt.Sprintf("%d년 %d월", ym.Year, ym.Month)
}
