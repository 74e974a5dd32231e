package category

import (
	"errors"
	"time"
)

// Transaction types a category can carry. The category's type decides the
// type of every transaction recorded under it.
const (
	TypeIncome  = "Income"
	TypeExpense = "Expense"
)

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInUse    = errors.New("category is referenced by transactions")
	ErrInvalidType      = errors.New("category type must be Income or Expense")
)

type Category struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateParams struct {
	UserID int64
	Name   string
	Type   string
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("category name is required")
	}
	if !IsValidType(p.Type) {
		return ErrInvalidType
	}
	return nil
}

// UpdateParams carries a partial category update. Nil fields are untouched.
type UpdateParams struct {
	Name *string
	Type *string
}

// IsValidType checks if the provided type is an allowed category type.
func IsValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
