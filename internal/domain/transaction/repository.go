package transaction

import "context"

// Repository defines the interface for transaction data access
type Repository interface {
	Create(ctx context.Context, params CreateParams, txType string) (*Transaction, error)
	GetByID(ctx context.Context, id int64) (*Transaction, error)

	// List returns one page matching the filter plus the unpaged total
	List(ctx context.Context, userID int64, filter ListFilter) ([]*Transaction, int64, error)

	Update(ctx context.Context, id int64, params UpdateParams, txType *string) (*Transaction, error)
	Delete(ctx context.Context, id int64) error

	// NoteSuggestions returns up to limit distinct notes of the user's
	// transactions matching the prefix, most recent first
	NoteSuggestions(ctx context.Context, userID int64, query string, limit int) ([]string, error)
}
