package account

import "context"

// Repository defines the interface for account data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Account, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Account, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Account, error)
	Delete(ctx context.Context, id int64) error
}
