package category

import (
	"context"
	"errors"
)

// Service contains the business logic for category operations
type Service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCategory creates a new category with validation
func (s *Service) CreateCategory(ctx context.Context, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, params)
}

// GetCategory retrieves a category by ID and verifies user ownership
func (s *Service) GetCategory(ctx context.Context, categoryID, userID int64) (*Category, error) {
	cat, err := s.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat.UserID != userID {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

// ListCategories retrieves all categories for a user
func (s *Service) ListCategories(ctx context.Context, userID int64) ([]*Category, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.repo.ListByUserID(ctx, userID)
}

// UpdateCategory applies a partial update. Changing the type rewrites the
// type of every transaction in the category so amounts keep their meaning.
func (s *Service) UpdateCategory(ctx context.Context, categoryID, userID int64, params UpdateParams) (*Category, error) {
	existing, err := s.GetCategory(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if params.Name != nil && *params.Name == "" {
		return nil, errors.New("category name is required")
	}
	if params.Type != nil && !IsValidType(*params.Type) {
		return nil, ErrInvalidType
	}

	updated, err := s.repo.Update(ctx, categoryID, params)
	if err != nil {
		return nil, err
	}

	if params.Type != nil && *params.Type != existing.Type {
		if err := s.repo.PropagateType(ctx, categoryID, *params.Type); err != nil {
			return nil, err
		}
	}

	return updated, nil
}

// DeleteCategory removes a category. Refused while any transaction still
// references it.
func (s *Service) DeleteCategory(ctx context.Context, categoryID, userID int64) error {
	if _, err := s.GetCategory(ctx, categoryID, userID); err != nil {
		return err
	}

	count, err := s.repo.TransactionCount(ctx, categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	return s.repo.Delete(ctx, categoryID)
}
