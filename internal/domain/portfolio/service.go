package portfolio

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// PriceSource resolves a ticker symbol to its last known price. The second
// return reports whether a price is cached for the symbol.
type PriceSource interface {
	Price(symbol string) (decimal.Decimal, bool)
}

// Service contains the business logic for portfolio operations
type Service struct {
	repo   Repository
	prices PriceSource
}

// NewService creates a new portfolio service
func NewService(repo Repository, prices PriceSource) *Service {
	return &Service{repo: repo, prices: prices}
}

// CreatePortfolio creates a portfolio with validation
func (s *Service) CreatePortfolio(ctx context.Context, params CreatePortfolioParams) (*Portfolio, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.CreatePortfolio(ctx, params)
}

// GetPortfolio retrieves a portfolio with holdings and market value,
// verifying user ownership.
func (s *Service) GetPortfolio(ctx context.Context, portfolioID, userID int64) (*Portfolio, error) {
	p, err := s.ownedPortfolio(ctx, portfolioID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPortfolios returns the user's portfolios with nested holdings and
// computed market values.
func (s *Service) ListPortfolios(ctx context.Context, userID int64) ([]*Portfolio, error) {
	portfolios, err := s.repo.ListPortfolios(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, p := range portfolios {
		if err := s.enrich(ctx, p); err != nil {
			return nil, err
		}
	}
	if portfolios == nil {
		portfolios = []*Portfolio{}
	}
	return portfolios, nil
}

// RenamePortfolio updates a portfolio's name after verifying ownership
func (s *Service) RenamePortfolio(ctx context.Context, portfolioID, userID int64, name string) (*Portfolio, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("portfolio name is required")
	}
	if _, err := s.ownedPortfolio(ctx, portfolioID, userID); err != nil {
		return nil, err
	}
	return s.repo.RenamePortfolio(ctx, portfolioID, name)
}

// DeletePortfolio removes a portfolio and its holdings after verifying
// ownership
func (s *Service) DeletePortfolio(ctx context.Context, portfolioID, userID int64) error {
	if _, err := s.ownedPortfolio(ctx, portfolioID, userID); err != nil {
		return err
	}
	return s.repo.DeletePortfolio(ctx, portfolioID)
}

// AddHolding creates a holding under a portfolio the user owns
func (s *Service) AddHolding(ctx context.Context, userID int64, params CreateHoldingParams) (*Holding, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.ownedPortfolio(ctx, params.PortfolioID, userID); err != nil {
		return nil, err
	}
	params.TickerSymbol = strings.ToUpper(strings.TrimSpace(params.TickerSymbol))
	return s.repo.CreateHolding(ctx, params)
}

// UpdateHolding applies a partial update after verifying the holding's
// portfolio belongs to the user
func (s *Service) UpdateHolding(ctx context.Context, holdingID, userID int64, params UpdateHoldingParams) (*Holding, error) {
	if _, err := s.ownedHolding(ctx, holdingID, userID); err != nil {
		return nil, err
	}
	if params.TickerSymbol != nil {
		upper := strings.ToUpper(strings.TrimSpace(*params.TickerSymbol))
		if upper == "" {
			return nil, errors.New("ticker symbol is required")
		}
		params.TickerSymbol = &upper
	}
	return s.repo.UpdateHolding(ctx, holdingID, params)
}

// RemoveHolding deletes a holding after verifying ownership
func (s *Service) RemoveHolding(ctx context.Context, holdingID, userID int64) error {
	if _, err := s.ownedHolding(ctx, holdingID, userID); err != nil {
		return err
	}
	return s.repo.DeleteHolding(ctx, holdingID)
}

// MarketValue prices the holdings with the live cache, falling back to each
// holding's average purchase price when no quote is cached.
func (s *Service) MarketValue(holdings []*Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		price := h.AvgPurchasePrice
		if live, ok := s.prices.Price(h.TickerSymbol); ok {
			price = live
		}
		total = total.Add(h.Quantity.Mul(price))
	}
	return total
}

func (s *Service) enrich(ctx context.Context, p *Portfolio) error {
	holdings, err := s.repo.ListHoldings(ctx, p.ID)
	if err != nil {
		return err
	}
	if holdings == nil {
		holdings = []*Holding{}
	}
	p.Holdings = holdings
	p.MarketValue = s.MarketValue(holdings)
	return nil
}

func (s *Service) ownedPortfolio(ctx context.Context, portfolioID, userID int64) (*Portfolio, error) {
	p, err := s.repo.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrPortfolioNotFound
	}
	return p, nil
}

func (s *Service) ownedHolding(ctx context.Context, holdingID, userID int64) (*Holding, error) {
	h, err := s.repo.GetHolding(ctx, holdingID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedPortfolio(ctx, h.PortfolioID, userID); err != nil {
		return nil, ErrHoldingNotFound
	}
	return h, nil
}
