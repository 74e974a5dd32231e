package portfolio

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	createPortfolioFn func(ctx context.Context, params CreatePortfolioParams) (*Portfolio, error)
	getPortfolioFn    func(ctx context.Context, id int64) (*Portfolio, error)
	listPortfoliosFn  func(ctx context.Context, userID int64) ([]*Portfolio, error)
	renamePortfolioFn func(ctx context.Context, id int64, name string) (*Portfolio, error)
	deletePortfolioFn func(ctx context.Context, id int64) error
	createHoldingFn   func(ctx context.Context, params CreateHoldingParams) (*Holding, error)
	getHoldingFn      func(ctx context.Context, id int64) (*Holding, error)
	listHoldingsFn    func(ctx context.Context, portfolioID int64) ([]*Holding, error)
	updateHoldingFn   func(ctx context.Context, id int64, params UpdateHoldingParams) (*Holding, error)
	deleteHoldingFn   func(ctx context.Context, id int64) error
	distinctSymbolsFn func(ctx context.Context) ([]string, error)
}

func (m *mockRepo) CreatePortfolio(ctx context.Context, params CreatePortfolioParams) (*Portfolio, error) {
	return m.createPortfolioFn(ctx, params)
}
func (m *mockRepo) GetPortfolio(ctx context.Context, id int64) (*Portfolio, error) {
	return m.getPortfolioFn(ctx, id)
}
func (m *mockRepo) ListPortfolios(ctx context.Context, userID int64) ([]*Portfolio, error) {
	return m.listPortfoliosFn(ctx, userID)
}
func (m *mockRepo) RenamePortfolio(ctx context.Context, id int64, name string) (*Portfolio, error) {
	return m.renamePortfolioFn(ctx, id, name)
}
func (m *mockRepo) DeletePortfolio(ctx context.Context, id int64) error {
	return m.deletePortfolioFn(ctx, id)
}
func (m *mockRepo) CreateHolding(ctx context.Context, params CreateHoldingParams) (*Holding, error) {
	return m.createHoldingFn(ctx, params)
}
func (m *mockRepo) GetHolding(ctx context.Context, id int64) (*Holding, error) {
	return m.getHoldingFn(ctx, id)
}
func (m *mockRepo) ListHoldings(ctx context.Context, portfolioID int64) ([]*Holding, error) {
	return m.listHoldingsFn(ctx, portfolioID)
}
func (m *mockRepo) UpdateHolding(ctx context.Context, id int64, params UpdateHoldingParams) (*Holding, error) {
	return m.updateHoldingFn(ctx, id, params)
}
func (m *mockRepo) DeleteHolding(ctx context.Context, id int64) error {
	return m.deleteHoldingFn(ctx, id)
}
func (m *mockRepo) DistinctSymbols(ctx context.Context) ([]string, error) {
	return m.distinctSymbolsFn(ctx)
}

type stubPrices map[string]decimal.Decimal

func (s stubPrices) Price(symbol string) (decimal.Decimal, bool) {
	p, ok := s[symbol]
	return p, ok
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMarketValue_LivePriceWithFallback(t *testing.T) {
	svc := NewService(&mockRepo{}, stubPrices{"AAPL": dec("200")})

	holdings := []*Holding{
		{TickerSymbol: "AAPL", Quantity: dec("2"), AvgPurchasePrice: dec("150")},
		{TickerSymbol: "UNLISTED", Quantity: dec("10"), AvgPurchasePrice: dec("5")},
	}

	// 2*200 live + 10*5 fallback
	assert.True(t, svc.MarketValue(holdings).Equal(dec("450")))
}

func TestMarketValue_NoHoldingsIsZero(t *testing.T) {
	svc := NewService(&mockRepo{}, stubPrices{})
	assert.True(t, svc.MarketValue(nil).IsZero())
}

func TestListPortfolios_EnrichesHoldingsAndValue(t *testing.T) {
	repo := &mockRepo{
		listPortfoliosFn: func(ctx context.Context, userID int64) ([]*Portfolio, error) {
			return []*Portfolio{{ID: 1, UserID: 7, Name: "Retirement"}}, nil
		},
		listHoldingsFn: func(ctx context.Context, portfolioID int64) ([]*Holding, error) {
			return []*Holding{
				{ID: 10, PortfolioID: portfolioID, TickerSymbol: "VTI", Quantity: dec("3"), AvgPurchasePrice: dec("100")},
			}, nil
		},
	}
	svc := NewService(repo, stubPrices{"VTI": dec("110")})

	portfolios, err := svc.ListPortfolios(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, portfolios, 1)
	assert.Len(t, portfolios[0].Holdings, 1)
	assert.True(t, portfolios[0].MarketValue.Equal(dec("330")))
}

func TestGetPortfolio_OtherUsersNotFound(t *testing.T) {
	repo := &mockRepo{
		getPortfolioFn: func(ctx context.Context, id int64) (*Portfolio, error) {
			return &Portfolio{ID: id, UserID: 99}, nil
		},
	}
	svc := NewService(repo, stubPrices{})

	_, err := svc.GetPortfolio(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrPortfolioNotFound)
}

func TestAddHolding_UppercasesSymbol(t *testing.T) {
	var created CreateHoldingParams
	repo := &mockRepo{
		getPortfolioFn: func(ctx context.Context, id int64) (*Portfolio, error) {
			return &Portfolio{ID: id, UserID: 7}, nil
		},
		createHoldingFn: func(ctx context.Context, params CreateHoldingParams) (*Holding, error) {
			created = params
			return &Holding{ID: 1, PortfolioID: params.PortfolioID, TickerSymbol: params.TickerSymbol}, nil
		},
	}
	svc := NewService(repo, stubPrices{})

	_, err := svc.AddHolding(context.Background(), 7, CreateHoldingParams{
		PortfolioID:      1,
		TickerSymbol:     " msft ",
		Quantity:         dec("1"),
		AvgPurchasePrice: dec("300"),
	})
	require.NoError(t, err)
	assert.Equal(t, "MSFT", created.TickerSymbol)
}

func TestUpdateHolding_OtherUsersPortfolioNotFound(t *testing.T) {
	repo := &mockRepo{
		getHoldingFn: func(ctx context.Context, id int64) (*Holding, error) {
			return &Holding{ID: id, PortfolioID: 3}, nil
		},
		getPortfolioFn: func(ctx context.Context, id int64) (*Portfolio, error) {
			return &Portfolio{ID: id, UserID: 99}, nil
		},
	}
	svc := NewService(repo, stubPrices{})

	qty := dec("5")
	_, err := svc.UpdateHolding(context.Background(), 1, 7, UpdateHoldingParams{Quantity: &qty})
	assert.ErrorIs(t, err, ErrHoldingNotFound)
}
