package asset

import (
	"errors"
	"time"
)

// ErrInvalidMonth is returned when a month string cannot be parsed.
var ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM or YYYY-MM-DD")

const monthLayout = "2006-01-02"

// ParseMonth accepts "YYYY-MM" or "YYYY-MM-DD" and returns the canonical
// first-of-month date in UTC. Valuations are bucketed at this granularity.
func ParseMonth(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidMonth
	}
	return MonthOf(t), nil
}

// MonthOf truncates t to the first of its calendar month in UTC.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// FormatMonth renders the canonical wire form, e.g. "2025-03-01".
func FormatMonth(t time.Time) string {
	return t.Format(monthLayout)
}
