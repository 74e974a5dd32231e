package budget

import (
	"context"
	"errors"
	"time"
)

// Service contains the business logic for budget operations
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new budget service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CreateBudget creates a budget with validation
func (s *Service) CreateBudget(ctx context.Context, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetBudget retrieves a budget and verifies user ownership
func (s *Service) GetBudget(ctx context.Context, budgetID, userID int64) (*Budget, error) {
	b, err := s.repo.GetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrBudgetNotFound
	}
	return b, nil
}

// ListBudgets returns the user's budgets enriched with the running period's
// spend per category.
func (s *Service) ListBudgets(ctx context.Context, userID int64) ([]*Budget, error) {
	budgets, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for _, b := range budgets {
		spent, err := s.repo.SpentSince(ctx, userID, b.CategoryID, PeriodStart(b.Period, now))
		if err != nil {
			return nil, err
		}
		b.Spent = spent
	}

	return budgets, nil
}

// UpdateBudget applies a partial update after verifying ownership
func (s *Service) UpdateBudget(ctx context.Context, budgetID, userID int64, params UpdateParams) (*Budget, error) {
	if _, err := s.GetBudget(ctx, budgetID, userID); err != nil {
		return nil, err
	}
	if params.Period != nil && !IsValidPeriod(*params.Period) {
		return nil, ErrInvalidPeriod
	}
	if params.Amount != nil && !params.Amount.IsPositive() {
		return nil, errors.New("budget amount must be positive")
	}
	return s.repo.Update(ctx, budgetID, params)
}

// DeleteBudget removes a budget after verifying ownership
func (s *Service) DeleteBudget(ctx context.Context, budgetID, userID int64) error {
	if _, err := s.GetBudget(ctx, budgetID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, budgetID)
}
