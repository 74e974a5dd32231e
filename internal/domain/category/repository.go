package category

import "context"

// Repository defines the interface for category data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Category, error)
	GetByID(ctx context.Context, id int64) (*Category, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Category, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Category, error)
	Delete(ctx context.Context, id int64) error

	// TransactionCount reports how many transactions reference the category
	TransactionCount(ctx context.Context, id int64) (int64, error)

	// PropagateType rewrites the type of the user's transactions in the
	// category, keeping them consistent after a category type change
	PropagateType(ctx context.Context, categoryID int64, newType string) error

	// FindOrCreate returns the user's category with the name and type,
	// creating it when absent. Used by the transaction quick-add shortcut.
	FindOrCreate(ctx context.Context, userID int64, name, categoryType string) (*Category, error)
}
