package asset

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Service contains the business logic for the asset hierarchy
type Service struct {
	repo Repository
}

// NewService creates a new asset service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListGroups returns the user's groups with nested items and valuations.
// No visibility filtering happens here; hidden flags ship to the caller.
func (s *Service) ListGroups(ctx context.Context, userID int64) ([]*Group, error) {
	groups, err := s.repo.ListGroups(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	valuations, err := s.repo.ListValuations(ctx, userID)
	if err != nil {
		return nil, err
	}

	byItem := make(map[int64][]*Valuation)
	for _, v := range valuations {
		byItem[v.ItemID] = append(byItem[v.ItemID], v)
	}

	byGroup := make(map[int64][]*Item)
	for _, it := range items {
		it.Valuations = byItem[it.ID]
		byGroup[it.GroupID] = append(byGroup[it.GroupID], it)
	}

	for _, g := range groups {
		g.Items = byGroup[g.ID]
		if g.Items == nil {
			g.Items = []*Item{}
		}
	}

	return groups, nil
}

// CreateGroup creates a group for the user.
func (s *Service) CreateGroup(ctx context.Context, params CreateGroupParams) (*Group, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreateGroup(ctx, params)
}

// RenameGroup updates a group's name after verifying ownership.
func (s *Service) RenameGroup(ctx context.Context, groupID, userID int64, name string) (*Group, error) {
	if name == "" {
		return nil, errors.New("group name is required")
	}
	if _, err := s.ownedGroup(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.repo.RenameGroup(ctx, groupID, name)
}

// DeleteGroup removes a group and, per cascade, its items and valuations.
func (s *Service) DeleteGroup(ctx context.Context, groupID, userID int64) error {
	if _, err := s.ownedGroup(ctx, groupID, userID); err != nil {
		return err
	}
	return s.repo.DeleteGroup(ctx, groupID)
}

// CreateRootItem creates an item at the top level of a group.
func (s *Service) CreateRootItem(ctx context.Context, groupID, userID int64, params CreateItemParams) (*Item, error) {
	if _, err := s.ownedGroup(ctx, groupID, userID); err != nil {
		return nil, err
	}

	params.GroupID = groupID
	params.ParentID = nil
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.CreateItem(ctx, params)
}

// CreateChildItem creates an item under a parent, inheriting its group.
func (s *Service) CreateChildItem(ctx context.Context, parentID, userID int64, params CreateItemParams) (*Item, error) {
	parent, err := s.ownedItem(ctx, parentID, userID)
	if err != nil {
		return nil, err
	}

	params.GroupID = parent.GroupID
	params.ParentID = &parent.ID
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.CreateItem(ctx, params)
}

// UpdateItem applies a partial update after verifying ownership.
func (s *Service) UpdateItem(ctx context.Context, itemID, userID int64, params UpdateItemParams) (*Item, error) {
	if _, err := s.ownedItem(ctx, itemID, userID); err != nil {
		return nil, err
	}
	if params.DepreciationAmount != nil && params.DepreciationAmount.IsNegative() {
		return nil, errors.New("depreciation amount must not be negative")
	}
	return s.repo.UpdateItem(ctx, itemID, params)
}

// DeleteItem removes an item and, per cascade, its children and valuations.
func (s *Service) DeleteItem(ctx context.Context, itemID, userID int64) error {
	if _, err := s.ownedItem(ctx, itemID, userID); err != nil {
		return err
	}
	return s.repo.DeleteItem(ctx, itemID)
}

// Collapse hides every descendant of the item, never the item itself.
// Returns the number of items updated.
func (s *Service) Collapse(ctx context.Context, itemID, userID int64) (int64, error) {
	return s.setSubtreeHidden(ctx, itemID, userID, true)
}

// Expand unhides every descendant of the item. Expand after collapse marks
// the whole subtree visible regardless of flags held before the collapse.
func (s *Service) Expand(ctx context.Context, itemID, userID int64) (int64, error) {
	return s.setSubtreeHidden(ctx, itemID, userID, false)
}

func (s *Service) setSubtreeHidden(ctx context.Context, itemID, userID int64, hidden bool) (int64, error) {
	if _, err := s.ownedItem(ctx, itemID, userID); err != nil {
		return 0, err
	}

	descendants, err := s.descendantIDs(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if len(descendants) == 0 {
		return 0, nil
	}

	return s.repo.SetHidden(ctx, descendants, hidden)
}

// descendantIDs collects all descendants breadth-first, one children query
// per frontier level. A cyclic parent chain stalls the frontier rather than
// looping because visited ids are never re-enqueued.
func (s *Service) descendantIDs(ctx context.Context, itemID int64) ([]int64, error) {
	var all []int64
	seen := map[int64]struct{}{itemID: {}}
	frontier := []int64{itemID}

	for len(frontier) > 0 {
		children, err := s.repo.ListChildren(ctx, frontier)
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, child := range children {
			if _, ok := seen[child.ID]; ok {
				continue
			}
			seen[child.ID] = struct{}{}
			all = append(all, child.ID)
			frontier = append(frontier, child.ID)
		}
	}

	return all, nil
}

// UpsertValuation writes the value for (item, month). Items with children
// never take direct valuations; their totals are always derived.
func (s *Service) UpsertValuation(ctx context.Context, itemID, userID int64, month time.Time, value decimal.Decimal) (*Valuation, error) {
	if _, err := s.ownedItem(ctx, itemID, userID); err != nil {
		return nil, err
	}

	hasChildren, err := s.repo.HasChildren(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if hasChildren {
		return nil, ErrNotLeaf
	}

	return s.repo.UpsertValuation(ctx, itemID, MonthOf(month), value)
}

// DeleteMonth removes all of the caller's valuations for the month and
// returns the count deleted. Other users' rows for the month are untouched.
func (s *Service) DeleteMonth(ctx context.Context, userID int64, month time.Time) (int64, error) {
	return s.repo.DeleteValuationsForMonth(ctx, userID, MonthOf(month))
}

// ApplyDepreciation rolls valuations forward into the month: every leaf item
// of the user with a depreciation amount gets max(0, prior − depreciation)
// where prior is its latest valuation strictly before the month. Items with
// no prior valuation, or a prior of zero, are skipped. The insert skips
// (item, month) duplicates, so re-running for a month inserts nothing.
func (s *Service) ApplyDepreciation(ctx context.Context, userID int64, month time.Time) (int64, error) {
	month = MonthOf(month)

	leaves, err := s.repo.ListDepreciableLeaves(ctx, userID)
	if err != nil {
		return 0, err
	}
	if len(leaves) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(leaves))
	for _, leaf := range leaves {
		ids = append(ids, leaf.ID)
	}

	priors, err := s.repo.LatestValuationsBefore(ctx, ids, month)
	if err != nil {
		return 0, err
	}

	var entries []DepreciationEntry
	for _, leaf := range leaves {
		prior, ok := priors[leaf.ID]
		if !ok || prior.IsZero() {
			continue
		}

		value := prior.Sub(*leaf.DepreciationAmount)
		if value.IsNegative() {
			value = decimal.Zero
		}

		entries = append(entries, DepreciationEntry{
			ItemID: leaf.ID,
			Month:  month,
			Value:  value,
		})
	}

	if len(entries) == 0 {
		return 0, nil
	}

	return s.repo.InsertValuations(ctx, entries)
}

// LoadForest fetches the user's full tree in bulk and builds the in-memory
// aggregation structure.
func (s *Service) LoadForest(ctx context.Context, userID int64) (*Forest, []*Group, error) {
	groups, err := s.repo.ListGroups(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	items, err := s.repo.ListItems(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	valuations, err := s.repo.ListValuations(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return BuildForest(items, valuations), groups, nil
}

func (s *Service) ownedGroup(ctx context.Context, groupID, userID int64) (*Group, error) {
	g, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	// Ownership failures read as not-found so group ids don't leak
	if g.UserID != userID {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

func (s *Service) ownedItem(ctx context.Context, itemID, userID int64) (*Item, error) {
	it, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.UserID != userID {
		return nil, ErrItemNotFound
	}
	return it, nil
}
