package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/portfolio"
)

// PortfolioRepository implements the portfolio.Repository interface for PostgreSQL
type PortfolioRepository struct {
	db *DB
}

// NewPortfolioRepository creates a new PostgreSQL portfolio repository
func NewPortfolioRepository(db *DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// CreatePortfolio creates a new portfolio
func (r *PortfolioRepository) CreatePortfolio(ctx context.Context, params portfolio.CreatePortfolioParams) (*portfolio.Portfolio, error) {
	query := `
		INSERT INTO portfolios (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`

	var p portfolio.Portfolio
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.Name).Scan(
		&p.ID, &p.UserID, &p.Name, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio: %w", err)
	}

	return &p, nil
}

// GetPortfolio retrieves a portfolio by its ID
func (r *PortfolioRepository) GetPortfolio(ctx context.Context, id int64) (*portfolio.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolios
		WHERE id = $1
	`

	var p portfolio.Portfolio
	err := r.db.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, portfolio.ErrPortfolioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}

	return &p, nil
}

// ListPortfolios retrieves all portfolios for a specific user
func (r *PortfolioRepository) ListPortfolios(ctx context.Context, userID int64) ([]*portfolio.Portfolio, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM portfolios
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list portfolios: %w", err)
	}
	defer rows.Close()

	var portfolios []*portfolio.Portfolio
	for rows.Next() {
		var p portfolio.Portfolio
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio: %w", err)
		}
		portfolios = append(portfolios, &p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolios: %w", err)
	}

	return portfolios, nil
}

// RenamePortfolio updates a portfolio's name
func (r *PortfolioRepository) RenamePortfolio(ctx context.Context, id int64, name string) (*portfolio.Portfolio, error) {
	query := `
		UPDATE portfolios
		SET name = $2
		WHERE id = $1
		RETURNING id, user_id, name, created_at
	`

	var p portfolio.Portfolio
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, portfolio.ErrPortfolioNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename portfolio: %w", err)
	}

	return &p, nil
}

// DeletePortfolio removes a portfolio and its holdings
func (r *PortfolioRepository) DeletePortfolio(ctx context.Context, id int64) error {
	query := `DELETE FROM portfolios WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return portfolio.ErrPortfolioNotFound
	}

	return nil
}

// CreateHolding creates a new holding
func (r *PortfolioRepository) CreateHolding(ctx context.Context, params portfolio.CreateHoldingParams) (*portfolio.Holding, error) {
	query := `
		INSERT INTO holdings (portfolio_id, ticker_symbol, quantity, avg_purchase_price)
		VALUES ($1, $2, $3, $4)
		RETURNING id, portfolio_id, ticker_symbol, quantity, avg_purchase_price, created_at
	`

	var h portfolio.Holding
	err := r.db.QueryRowContext(
		ctx, query,
		params.PortfolioID, params.TickerSymbol, params.Quantity, params.AvgPurchasePrice,
	).Scan(&h.ID, &h.PortfolioID, &h.TickerSymbol, &h.Quantity, &h.AvgPurchasePrice, &h.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create holding: %w", err)
	}

	return &h, nil
}

// GetHolding retrieves a holding by its ID
func (r *PortfolioRepository) GetHolding(ctx context.Context, id int64) (*portfolio.Holding, error) {
	query := `
		SELECT id, portfolio_id, ticker_symbol, quantity, avg_purchase_price, created_at
		FROM holdings
		WHERE id = $1
	`

	var h portfolio.Holding
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&h.ID, &h.PortfolioID, &h.TickerSymbol, &h.Quantity, &h.AvgPurchasePrice, &h.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, portfolio.ErrHoldingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}

	return &h, nil
}

// ListHoldings retrieves all holdings in a portfolio
func (r *PortfolioRepository) ListHoldings(ctx context.Context, portfolioID int64) ([]*portfolio.Holding, error) {
	query := `
		SELECT id, portfolio_id, ticker_symbol, quantity, avg_purchase_price, created_at
		FROM holdings
		WHERE portfolio_id = $1
		ORDER BY ticker_symbol
	`

	rows, err := r.db.QueryContext(ctx, query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}
	defer rows.Close()

	var holdings []*portfolio.Holding
	for rows.Next() {
		var h portfolio.Holding
		err := rows.Scan(&h.ID, &h.PortfolioID, &h.TickerSymbol, &h.Quantity, &h.AvgPurchasePrice, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, &h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// UpdateHolding applies a partial holding update
func (r *PortfolioRepository) UpdateHolding(ctx context.Context, id int64, params portfolio.UpdateHoldingParams) (*portfolio.Holding, error) {
	query := `
		UPDATE holdings
		SET ticker_symbol = COALESCE($2, ticker_symbol),
		    quantity = COALESCE($3, quantity),
		    avg_purchase_price = COALESCE($4, avg_purchase_price)
		WHERE id = $1
		RETURNING id, portfolio_id, ticker_symbol, quantity, avg_purchase_price, created_at
	`

	var h portfolio.Holding
	err := r.db.QueryRowContext(ctx, query, id, params.TickerSymbol, params.Quantity, params.AvgPurchasePrice).Scan(
		&h.ID, &h.PortfolioID, &h.TickerSymbol, &h.Quantity, &h.AvgPurchasePrice, &h.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, portfolio.ErrHoldingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update holding: %w", err)
	}

	return &h, nil
}

// DeleteHolding removes a holding
func (r *PortfolioRepository) DeleteHolding(ctx context.Context, id int64) error {
	query := `DELETE FROM holdings WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return portfolio.ErrHoldingNotFound
	}

	return nil
}

// DistinctSymbols returns every ticker symbol held by any user
func (r *PortfolioRepository) DistinctSymbols(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT ticker_symbol FROM holdings ORDER BY ticker_symbol`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return symbols, nil
}
