package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
)

// shortcutCategoryName is the catch-all expense category the quick-add
// endpoint files transactions under.
const shortcutCategoryName = "Uncategorized"

const noteSuggestionLimit = 8

// Service contains the business logic for transaction operations
type Service struct {
	repo       Repository
	categories category.Repository
}

// NewService creates a new transaction service
func NewService(repo Repository, categories category.Repository) *Service {
	return &Service{repo: repo, categories: categories}
}

// CreateTransaction records a transaction. Its type comes from the
// category, never from the request.
func (s *Service) CreateTransaction(ctx context.Context, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	cat, err := s.ownedCategory(ctx, params.CategoryID, params.UserID)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params, cat.Type)
}

// GetTransaction retrieves a transaction and verifies user ownership
func (s *Service) GetTransaction(ctx context.Context, id, userID int64) (*Transaction, error) {
	tx, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, ErrTransactionNotFound
	}
	return tx, nil
}

// ListTransactions returns one page matching the filter.
func (s *Service) ListTransactions(ctx context.Context, userID int64, filter ListFilter) (*Page, error) {
	filter.Normalize()

	items, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*Transaction{}
	}

	return &Page{
		Page:  filter.Page,
		Limit: filter.Limit,
		Total: total,
		Items: items,
	}, nil
}

// UpdateTransaction applies a partial update. A category change also
// rewrites the transaction's type to the new category's.
func (s *Service) UpdateTransaction(ctx context.Context, id, userID int64, params UpdateParams) (*Transaction, error) {
	if _, err := s.GetTransaction(ctx, id, userID); err != nil {
		return nil, err
	}

	var txType *string
	if params.CategoryID != nil {
		cat, err := s.ownedCategory(ctx, *params.CategoryID, userID)
		if err != nil {
			return nil, err
		}
		txType = &cat.Type
	}

	return s.repo.Update(ctx, id, params, txType)
}

// DeleteTransaction removes a transaction after verifying ownership
func (s *Service) DeleteTransaction(ctx context.Context, id, userID int64) error {
	if _, err := s.GetTransaction(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// NoteSuggestions returns up to 8 distinct autocomplete candidates for the
// notes field.
func (s *Service) NoteSuggestions(ctx context.Context, userID int64, query string) ([]string, error) {
	notes, err := s.repo.NoteSuggestions(ctx, userID, query, noteSuggestionLimit)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []string{}
	}
	return notes, nil
}

// Shortcut quick-adds an expense dated now, filed under the user's
// "Uncategorized" expense category, creating that category on first use.
func (s *Service) Shortcut(ctx context.Context, userID, accountID int64, amount decimal.Decimal, notes *string) (*Transaction, error) {
	cat, err := s.categories.FindOrCreate(ctx, userID, shortcutCategoryName, category.TypeExpense)
	if err != nil {
		return nil, err
	}

	params := CreateParams{
		UserID:     userID,
		AccountID:  accountID,
		CategoryID: cat.ID,
		Date:       time.Now(),
		Amount:     amount,
		Notes:      notes,
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params, cat.Type)
}

func (s *Service) ownedCategory(ctx context.Context, categoryID, userID int64) (*category.Category, error) {
	cat, err := s.categories.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if cat.UserID != userID {
		return nil, category.ErrCategoryNotFound
	}
	return cat, nil
}
