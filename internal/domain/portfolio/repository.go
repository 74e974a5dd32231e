package portfolio

import "context"

// Repository defines the interface for portfolio data access
type Repository interface {
	CreatePortfolio(ctx context.Context, params CreatePortfolioParams) (*Portfolio, error)
	GetPortfolio(ctx context.Context, id int64) (*Portfolio, error)
	ListPortfolios(ctx context.Context, userID int64) ([]*Portfolio, error)
	RenamePortfolio(ctx context.Context, id int64, name string) (*Portfolio, error)
	DeletePortfolio(ctx context.Context, id int64) error

	CreateHolding(ctx context.Context, params CreateHoldingParams) (*Holding, error)
	GetHolding(ctx context.Context, id int64) (*Holding, error)
	ListHoldings(ctx context.Context, portfolioID int64) ([]*Holding, error)
	UpdateHolding(ctx context.Context, id int64, params UpdateHoldingParams) (*Holding, error)
	DeleteHolding(ctx context.Context, id int64) error

	// DistinctSymbols returns every ticker symbol held by any user, for the
	// market data refresh job.
	DistinctSymbols(ctx context.Context) ([]string, error)
}
