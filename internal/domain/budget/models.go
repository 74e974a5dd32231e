package budget

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Budget periods.
const (
	PeriodMonthly = "Monthly"
	PeriodYearly  = "Yearly"
)

// Domain errors
var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrInvalidPeriod  = errors.New("budget period must be Monthly or Yearly")
)

type Budget struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	CategoryID   int64           `json:"categoryId"`
	CategoryName string          `json:"categoryName,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Period       string          `json:"period"`
	CreatedAt    time.Time       `json:"createdAt"`

	// Spent is the user's expense total for the running period, computed at
	// list time, never stored.
	Spent decimal.Decimal `json:"spent"`
}

type CreateParams struct {
	UserID     int64
	CategoryID int64
	Amount     decimal.Decimal
	Period     string
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.CategoryID <= 0 {
		return errors.New("valid category ID is required")
	}
	if !p.Amount.IsPositive() {
		return errors.New("budget amount must be positive")
	}
	if !IsValidPeriod(p.Period) {
		return ErrInvalidPeriod
	}
	return nil
}

// UpdateParams carries a partial budget update. Nil fields are untouched.
type UpdateParams struct {
	CategoryID *int64
	Amount     *decimal.Decimal
	Period     *string
}

// IsValidPeriod checks if the provided period is allowed.
func IsValidPeriod(p string) bool {
	return p == PeriodMonthly || p == PeriodYearly
}

// PeriodStart returns the opening instant of the budget's running period
// relative to now: first of the month for Monthly, January 1 for Yearly.
func PeriodStart(period string, now time.Time) time.Time {
	if period == PeriodYearly {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
}
