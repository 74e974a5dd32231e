package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/transaction"
)

const recentTransactionLimit = 30

// Service assembles the dashboard summary
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new dashboard service
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Summary builds the full dashboard payload for a user.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	totals, err := s.repo.MonthlyAssetTotals(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := make([]MonthTotal, 0, len(totals))
	for _, t := range totals {
		if t.Total.IsZero() {
			continue
		}
		history = append(history, t)
	}

	// Net worth reads at the newest month that still has a non-zero total.
	netWorth := decimal.Zero
	allocation := []GroupTotal{}
	if len(history) > 0 {
		latest := history[len(history)-1]
		netWorth = latest.Total
		allocation, err = s.repo.GroupTotalsAt(ctx, userID, latest.Month)
		if err != nil {
			return nil, err
		}
		if allocation == nil {
			allocation = []GroupTotal{}
		}
	}

	income, expense, err := s.repo.IncomeExpenseSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.repo.ExpenseBreakdownSince(ctx, userID, monthStart)
	if err != nil {
		return nil, err
	}
	if breakdown == nil {
		breakdown = []CategoryTotal{}
	}

	recent, err := s.repo.RecentTransactions(ctx, userID, recentTransactionLimit)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []*transaction.Transaction{}
	}

	cash, err := s.repo.CashBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		NetWorth:           netWorth,
		NetWorthHistory:    history,
		AssetAllocation:    allocation,
		CashFlowLast30Days: income.Sub(expense),
		MonthlyExpenses:    expense,
		ExpenseBreakdown:   breakdown,
		RecentTransactions: recent,
		CashBalance:        cash,
	}, nil
}
