package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
)

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidInput        = errors.New("invalid input")
)

// Pagination bounds for the list endpoint.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Transaction is one money movement. Its type mirrors the category's type
// and is rewritten when the category's type changes.
type Transaction struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"userId"`
	AccountID  int64              `json:"accountId"`
	CategoryID int64              `json:"categoryId"`
	Type       string             `json:"type"`
	Date       time.Time          `json:"date"`
	Amount     decimal.Decimal    `json:"amount"`
	Notes      *string            `json:"notes"`
	CreatedAt  time.Time          `json:"createdAt"`
	Category   *category.Category `json:"category,omitempty"`
}

type CreateParams struct {
	UserID     int64
	AccountID  int64
	CategoryID int64
	Date       time.Time
	Amount     decimal.Decimal
	Notes      *string
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.AccountID <= 0 {
		return errors.New("valid account ID is required")
	}
	if p.CategoryID <= 0 {
		return errors.New("valid category ID is required")
	}
	if p.Date.IsZero() {
		return errors.New("transaction date is required")
	}
	return nil
}

// UpdateParams carries a partial transaction update. Nil fields are untouched.
type UpdateParams struct {
	AccountID  *int64
	CategoryID *int64
	Date       *time.Time
	Amount     *decimal.Decimal
	Notes      *string
}

// Sortable columns for the list endpoint.
const (
	SortDate     = "date"
	SortAmount   = "amount"
	SortID       = "id"
	SortCategory = "category"
)

// ListFilter narrows and orders the transaction list. Zero values mean
// "no constraint". Search matches category name, notes substring, or the
// exact amount.
type ListFilter struct {
	CategoryID   int64
	CategoryName string
	StartDate    *time.Time
	EndDate      *time.Time
	Search       string
	SortBy       string
	SortDesc     bool
	Page         int
	Limit        int
}

// Normalize clamps pagination and defaults the sort. The id tiebreaker on
// equal sort keys keeps page boundaries stable.
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	switch f.SortBy {
	case SortDate, SortAmount, SortID, SortCategory:
	default:
		f.SortBy = SortDate
		f.SortDesc = true
	}
}

// Page is one page of the transaction list.
type Page struct {
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
	Items []*Transaction `json:"items"`
}
