package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashflowRow is one month of income against expense.
type CashflowRow struct {
	Period  string          `json:"period"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryRow is one category's spend over the range.
type CategoryRow struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// MonthlyExpenseRow is one month's expense total.
type MonthlyExpenseRow struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}

// AnalysisRow is a category total paired with the range's shared scale
// maximum, for proportional rendering.
type AnalysisRow struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	MaxValue decimal.Decimal `json:"maxValue"`
}

// Range is an inclusive day-bounded reporting window.
type Range struct {
	Start time.Time
	End   time.Time
}

// NewRange normalizes optional bounds: a missing start opens at the epoch, a
// missing end closes today, and an inverted pair is swapped.
func NewRange(start, end *time.Time, now time.Time) Range {
	r := Range{
		Start: time.Unix(0, 0).UTC(),
		End:   now.UTC(),
	}
	if start != nil {
		r.Start = start.UTC()
	}
	if end != nil {
		r.End = end.UTC()
	}
	if r.Start.After(r.End) {
		r.Start, r.End = r.End, r.Start
	}
	r.Start = dayStart(r.Start)
	r.End = dayEnd(r.End)
	return r
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999999999, time.UTC)
}
