package asset

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrGroupNotFound = errors.New("asset group not found")
	ErrItemNotFound  = errors.New("asset item not found")
	ErrNotLeaf       = errors.New("valuations are only allowed on leaf items")
	ErrInvalidInput  = errors.New("invalid input")
)

// Group is a named collection of asset items owned by one user. Deleting a
// group cascades to its items and their valuations.
type Group struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Items     []*Item   `json:"items,omitempty"`
}

// Item is a node in the asset forest. A nil ParentID marks a root item of
// its group; children inherit the parent's group. DepreciationAmount is the
// fixed monthly decrement applied by the roll-forward and only carries
// meaning on leaf items.
type Item struct {
	ID                 int64            `json:"id"`
	GroupID            int64            `json:"groupId"`
	UserID             int64            `json:"-"`
	ParentID           *int64           `json:"parentItemId"`
	Name               string           `json:"name"`
	Description        *string          `json:"description"`
	Hidden             bool             `json:"hidden"`
	DepreciationAmount *decimal.Decimal `json:"depreciationAmount"`
	CreatedAt          time.Time        `json:"createdAt"`
	Valuations         []*Valuation     `json:"valuations,omitempty"`
}

// Valuation is one scalar value for one item in one calendar month,
// unique per (item, month).
type Valuation struct {
	ID     int64           `json:"id"`
	ItemID int64           `json:"itemId"`
	Month  time.Time       `json:"month"`
	Value  decimal.Decimal `json:"value"`
}

// CreateGroupParams carries input for creating a group.
type CreateGroupParams struct {
	UserID int64
	Name   string
}

func (p CreateGroupParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("group name is required")
	}
	return nil
}

// CreateItemParams carries input for creating a root or child item.
type CreateItemParams struct {
	GroupID            int64
	ParentID           *int64
	Name               string
	Description        *string
	DepreciationAmount *decimal.Decimal
}

func (p CreateItemParams) Validate() error {
	if p.GroupID <= 0 {
		return errors.New("valid group ID is required")
	}
	if p.Name == "" {
		return errors.New("item name is required")
	}
	if p.DepreciationAmount != nil && p.DepreciationAmount.IsNegative() {
		return errors.New("depreciation amount must not be negative")
	}
	return nil
}

// UpdateItemParams carries a partial item update. Nil fields are untouched.
// ClearDepreciation removes the depreciation amount entirely.
type UpdateItemParams struct {
	Name               *string
	Description        *string
	Hidden             *bool
	DepreciationAmount *decimal.Decimal
	ClearDepreciation  bool
}

// DepreciationEntry is one computed roll-forward row prior to insertion.
type DepreciationEntry struct {
	ItemID int64
	Month  time.Time
	Value  decimal.Decimal
}
