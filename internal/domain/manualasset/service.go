package manualasset

import (
	"context"

	"github.com/shopspring/decimal"
)

// Service contains the business logic for manual asset operations
type Service struct {
	repo Repository
}

// NewService creates a new manual asset service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateAsset creates a manual asset with validation
func (s *Service) CreateAsset(ctx context.Context, params CreateParams) (*Asset, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetAsset retrieves a manual asset and verifies user ownership
func (s *Service) GetAsset(ctx context.Context, assetID, userID int64) (*Asset, error) {
	a, err := s.repo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.UserID != userID {
		return nil, ErrAssetNotFound
	}
	return a, nil
}

// ListAssets returns the user's manual assets
func (s *Service) ListAssets(ctx context.Context, userID int64) ([]*Asset, error) {
	assets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if assets == nil {
		assets = []*Asset{}
	}
	return assets, nil
}

// TotalNetValue sums estimatedValue − associatedDebt across the user's
// manual assets.
func (s *Service) TotalNetValue(ctx context.Context, userID int64) (decimal.Decimal, error) {
	assets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.NetValue())
	}
	return total, nil
}

// UpdateAsset applies a partial update after verifying ownership
func (s *Service) UpdateAsset(ctx context.Context, assetID, userID int64, params UpdateParams) (*Asset, error) {
	if _, err := s.GetAsset(ctx, assetID, userID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, assetID, params)
}

// DeleteAsset removes a manual asset after verifying ownership
func (s *Service) DeleteAsset(ctx context.Context, assetID, userID int64) error {
	if _, err := s.GetAsset(ctx, assetID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, assetID)
}
