package asset

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for asset data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// CreateGroup creates a new asset group
	CreateGroup(ctx context.Context, params CreateGroupParams) (*Group, error)

	// GetGroup retrieves a group by its ID
	GetGroup(ctx context.Context, id int64) (*Group, error)

	// ListGroups retrieves the user's groups without nested items
	ListGroups(ctx context.Context, userID int64) ([]*Group, error)

	// RenameGroup updates a group's name
	RenameGroup(ctx context.Context, id int64, name string) (*Group, error)

	// DeleteGroup removes a group, cascading to items and valuations
	DeleteGroup(ctx context.Context, id int64) error

	// CreateItem creates an item; ParentID nil makes it a root of its group
	CreateItem(ctx context.Context, params CreateItemParams) (*Item, error)

	// GetItem retrieves an item with its owning user resolved through the group
	GetItem(ctx context.Context, id int64) (*Item, error)

	// ListItems retrieves every item across the user's groups
	ListItems(ctx context.Context, userID int64) ([]*Item, error)

	// ListChildren retrieves the direct children of the given parents.
	// Used by the collapse/expand frontier walk.
	ListChildren(ctx context.Context, parentIDs []int64) ([]*Item, error)

	// UpdateItem applies a partial update
	UpdateItem(ctx context.Context, id int64, params UpdateItemParams) (*Item, error)

	// DeleteItem removes an item, cascading to children and valuations
	DeleteItem(ctx context.Context, id int64) error

	// HasChildren reports whether the item has at least one child
	HasChildren(ctx context.Context, itemID int64) (bool, error)

	// SetHidden bulk-updates the hidden flag and returns the rows touched
	SetHidden(ctx context.Context, itemIDs []int64, hidden bool) (int64, error)

	// ListValuations retrieves every valuation across the user's items
	ListValuations(ctx context.Context, userID int64) ([]*Valuation, error)

	// UpsertValuation writes the value for (item, month), replacing any
	// existing row for that month
	UpsertValuation(ctx context.Context, itemID int64, month time.Time, value decimal.Decimal) (*Valuation, error)

	// DeleteValuationsForMonth removes the month's valuations scoped to the
	// user's groups and returns the count deleted
	DeleteValuationsForMonth(ctx context.Context, userID int64, month time.Time) (int64, error)

	// ListDepreciableLeaves retrieves the user's leaf items carrying a
	// depreciation amount
	ListDepreciableLeaves(ctx context.Context, userID int64) ([]*Item, error)

	// LatestValuationsBefore returns, per item, the most recent value
	// strictly before the month. Items with no prior valuation are absent.
	LatestValuationsBefore(ctx context.Context, itemIDs []int64, month time.Time) (map[int64]decimal.Decimal, error)

	// InsertValuations batch-inserts rows, skipping (item, month) duplicates,
	// and returns the count actually inserted
	InsertValuations(ctx context.Context, entries []DepreciationEntry) (int64, error)
}
