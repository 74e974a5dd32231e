package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain/transaction"
)

type mockRepo struct {
	monthlyAssetTotalsFn    func(ctx context.Context, userID int64) ([]MonthTotal, error)
	groupTotalsAtFn         func(ctx context.Context, userID int64, month time.Time) ([]GroupTotal, error)
	incomeExpenseSinceFn    func(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, decimal.Decimal, error)
	expenseBreakdownSinceFn func(ctx context.Context, userID int64, since time.Time) ([]CategoryTotal, error)
	recentTransactionsFn    func(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error)
	cashBalanceFn           func(ctx context.Context, userID int64) (decimal.Decimal, error)
}

func (m *mockRepo) MonthlyAssetTotals(ctx context.Context, userID int64) ([]MonthTotal, error) {
	return m.monthlyAssetTotalsFn(ctx, userID)
}
func (m *mockRepo) GroupTotalsAt(ctx context.Context, userID int64, month time.Time) ([]GroupTotal, error) {
	return m.groupTotalsAtFn(ctx, userID, month)
}
func (m *mockRepo) IncomeExpenseSince(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return m.incomeExpenseSinceFn(ctx, userID, since)
}
func (m *mockRepo) ExpenseBreakdownSince(ctx context.Context, userID int64, since time.Time) ([]CategoryTotal, error) {
	return m.expenseBreakdownSinceFn(ctx, userID, since)
}
func (m *mockRepo) RecentTransactions(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error) {
	return m.recentTransactionsFn(ctx, userID, limit)
}
func (m *mockRepo) CashBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return m.cashBalanceFn(ctx, userID)
}

func dec(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func emptyRepo() *mockRepo {
	return &mockRepo{
		monthlyAssetTotalsFn: func(ctx context.Context, userID int64) ([]MonthTotal, error) {
			return nil, nil
		},
		groupTotalsAtFn: func(ctx context.Context, userID int64, m time.Time) ([]GroupTotal, error) {
			return nil, nil
		},
		incomeExpenseSinceFn: func(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
			return decimal.Zero, decimal.Zero, nil
		},
		expenseBreakdownSinceFn: func(ctx context.Context, userID int64, since time.Time) ([]CategoryTotal, error) {
			return nil, nil
		},
		recentTransactionsFn: func(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error) {
			return nil, nil
		},
		cashBalanceFn: func(ctx context.Context, userID int64) (decimal.Decimal, error) {
			return decimal.Zero, nil
		},
	}
}

func TestSummary_NetWorthAtLatestNonZeroMonth(t *testing.T) {
	repo := emptyRepo()
	repo.monthlyAssetTotalsFn = func(ctx context.Context, userID int64) ([]MonthTotal, error) {
		return []MonthTotal{
			{Month: month(2024, time.May), Label: "2024-05", Total: dec(100)},
			{Month: month(2024, time.June), Label: "2024-06", Total: dec(150)},
			{Month: month(2024, time.July), Label: "2024-07", Total: decimal.Zero},
		}, nil
	}
	var allocationMonth time.Time
	repo.groupTotalsAtFn = func(ctx context.Context, userID int64, m time.Time) ([]GroupTotal, error) {
		allocationMonth = m
		return []GroupTotal{{GroupName: "Real Estate", Total: dec(150)}}, nil
	}

	svc := NewService(repo)

	sum, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)

	// The zero July month is filtered and June carries the reading.
	assert.True(t, sum.NetWorth.Equal(dec(150)))
	require.Len(t, sum.NetWorthHistory, 2)
	assert.Equal(t, "2024-05", sum.NetWorthHistory[0].Label)
	assert.Equal(t, month(2024, time.June), allocationMonth)
	require.Len(t, sum.AssetAllocation, 1)
}

func TestSummary_NoValuationsZeroNetWorth(t *testing.T) {
	repo := emptyRepo()
	svc := NewService(repo)

	sum, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, sum.NetWorth.IsZero())
	assert.Empty(t, sum.NetWorthHistory)
	assert.NotNil(t, sum.AssetAllocation)
	assert.NotNil(t, sum.ExpenseBreakdown)
	assert.NotNil(t, sum.RecentTransactions)
}

func TestSummary_CashFlowAndExpensesFromMonthStart(t *testing.T) {
	var gotSince time.Time
	repo := emptyRepo()
	repo.incomeExpenseSinceFn = func(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
		gotSince = since
		return dec(5000), dec(3200), nil
	}

	svc := NewService(repo)
	svc.now = func() time.Time {
		return time.Date(2024, time.August, 17, 9, 30, 0, 0, time.UTC)
	}

	sum, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, month(2024, time.August), gotSince)
	assert.True(t, sum.CashFlowLast30Days.Equal(dec(1800)))
	assert.True(t, sum.MonthlyExpenses.Equal(dec(3200)))
}

func TestSummary_RecentTransactionLimit(t *testing.T) {
	var gotLimit int
	repo := emptyRepo()
	repo.recentTransactionsFn = func(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error) {
		gotLimit = limit
		return []*transaction.Transaction{{ID: 1}}, nil
	}

	svc := NewService(repo)

	sum, err := svc.Summary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 30, gotLimit)
	assert.Len(t, sum.RecentTransactions, 1)
}
