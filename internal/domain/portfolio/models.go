package portfolio

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrPortfolioNotFound = errors.New("portfolio not found")
	ErrHoldingNotFound   = errors.New("holding not found")
)

type Portfolio struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	Holdings  []*Holding `json:"holdings"`

	// MarketValue is computed at read time from live prices, never stored.
	MarketValue decimal.Decimal `json:"marketValue"`
}

type Holding struct {
	ID               int64           `json:"id"`
	PortfolioID      int64           `json:"portfolioId"`
	TickerSymbol     string          `json:"tickerSymbol"`
	Quantity         decimal.Decimal `json:"quantity"`
	AvgPurchasePrice decimal.Decimal `json:"avgPurchasePrice"`
	CreatedAt        time.Time       `json:"createdAt"`
}

type CreatePortfolioParams struct {
	UserID int64
	Name   string
}

func (p CreatePortfolioParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("portfolio name is required")
	}
	return nil
}

type CreateHoldingParams struct {
	PortfolioID      int64
	TickerSymbol     string
	Quantity         decimal.Decimal
	AvgPurchasePrice decimal.Decimal
}

func (p CreateHoldingParams) Validate() error {
	if p.PortfolioID <= 0 {
		return errors.New("valid portfolio ID is required")
	}
	if strings.TrimSpace(p.TickerSymbol) == "" {
		return errors.New("ticker symbol is required")
	}
	if !p.Quantity.IsPositive() {
		return errors.New("quantity must be positive")
	}
	if p.AvgPurchasePrice.IsNegative() {
		return errors.New("average purchase price cannot be negative")
	}
	return nil
}

// UpdateHoldingParams carries a partial holding update. Nil fields are
// untouched.
type UpdateHoldingParams struct {
	TickerSymbol     *string
	Quantity         *decimal.Decimal
	AvgPurchasePrice *decimal.Decimal
}
