package manualasset

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrAssetNotFound is returned when a manual asset does not exist or belongs
// to another user.
var ErrAssetNotFound = errors.New("manual asset not found")

type Asset struct {
	ID             int64           `json:"id"`
	UserID         int64           `json:"userId"`
	Name           string          `json:"name"`
	AssetType      string          `json:"type"`
	EstimatedValue decimal.Decimal `json:"estimatedValue"`
	AssociatedDebt decimal.Decimal `json:"associatedDebt"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// NetValue is the asset's contribution to net worth.
func (a *Asset) NetValue() decimal.Decimal {
	return a.EstimatedValue.Sub(a.AssociatedDebt)
}

type CreateParams struct {
	UserID         int64
	Name           string
	AssetType      string
	EstimatedValue decimal.Decimal
	AssociatedDebt decimal.Decimal
}

func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("asset name is required")
	}
	if strings.TrimSpace(p.AssetType) == "" {
		return errors.New("asset type is required")
	}
	if p.EstimatedValue.IsNegative() {
		return errors.New("estimated value cannot be negative")
	}
	if p.AssociatedDebt.IsNegative() {
		return errors.New("associated debt cannot be negative")
	}
	return nil
}

// UpdateParams carries a partial update. Nil fields are untouched.
type UpdateParams struct {
	Name           *string
	AssetType      *string
	EstimatedValue *decimal.Decimal
	AssociatedDebt *decimal.Decimal
}
