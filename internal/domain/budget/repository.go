package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository defines the interface for budget data access
type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Budget, error)
	GetByID(ctx context.Context, id int64) (*Budget, error)
	ListByUserID(ctx context.Context, userID int64) ([]*Budget, error)
	Update(ctx context.Context, id int64, params UpdateParams) (*Budget, error)
	Delete(ctx context.Context, id int64) error

	// SpentSince sums the user's expense transactions for the category from
	// the period start onward
	SpentSince(ctx context.Context, userID, categoryID int64, since time.Time) (decimal.Decimal, error)
}
