package report

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	monthlyCashflowFn    func(ctx context.Context, userID int64, r Range) ([]CashflowRow, error)
	spendingByCategoryFn func(ctx context.Context, userID int64, r Range) ([]CategoryRow, error)
	monthlyExpensesFn    func(ctx context.Context, userID int64, r Range) ([]MonthlyExpenseRow, error)
}

func (m *mockRepo) MonthlyCashflow(ctx context.Context, userID int64, r Range) ([]CashflowRow, error) {
	return m.monthlyCashflowFn(ctx, userID, r)
}
func (m *mockRepo) SpendingByCategory(ctx context.Context, userID int64, r Range) ([]CategoryRow, error) {
	return m.spendingByCategoryFn(ctx, userID, r)
}
func (m *mockRepo) MonthlyExpenses(ctx context.Context, userID int64, r Range) ([]MonthlyExpenseRow, error) {
	return m.monthlyExpensesFn(ctx, userID, r)
}

func dec(i int64) decimal.Decimal {
	return decimal.NewFromInt(i)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRange(t *testing.T) {
	now := time.Date(2024, time.August, 17, 15, 30, 0, 0, time.UTC)
	start := date(2024, time.March, 5)
	end := date(2024, time.June, 10)

	t.Run("defaults to epoch through today", func(t *testing.T) {
		r := NewRange(nil, nil, now)
		assert.Equal(t, time.Unix(0, 0).UTC(), r.Start)
		assert.Equal(t, 17, r.End.Day())
		assert.Equal(t, 23, r.End.Hour())
	})

	t.Run("explicit bounds cover whole days", func(t *testing.T) {
		r := NewRange(&start, &end, now)
		assert.Equal(t, date(2024, time.March, 5), r.Start)
		assert.Equal(t, 10, r.End.Day())
		assert.Equal(t, 23, r.End.Hour())
	})

	t.Run("inverted bounds swapped", func(t *testing.T) {
		r := NewRange(&end, &start, now)
		assert.Equal(t, date(2024, time.March, 5), r.Start)
		assert.Equal(t, time.June, r.End.Month())
	})
}

func TestCategoryAnalysis_SharedMaxValue(t *testing.T) {
	repo := &mockRepo{
		spendingByCategoryFn: func(ctx context.Context, userID int64, r Range) ([]CategoryRow, error) {
			return []CategoryRow{
				{Category: "Rent", Total: dec(1500)},
				{Category: "Groceries", Total: dec(420)},
			}, nil
		},
	}
	svc := NewService(repo)

	rows, err := svc.CategoryAnalysis(context.Background(), 7, Range{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].MaxValue.Equal(dec(1500)))
	assert.True(t, rows[1].MaxValue.Equal(dec(1500)))
}

func TestCategoryAnalysis_MaxValueFlooredAtOne(t *testing.T) {
	repo := &mockRepo{
		spendingByCategoryFn: func(ctx context.Context, userID int64, r Range) ([]CategoryRow, error) {
			return []CategoryRow{{Category: "Nothing", Total: decimal.Zero}}, nil
		},
	}
	svc := NewService(repo)

	rows, err := svc.CategoryAnalysis(context.Background(), 7, Range{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].MaxValue.Equal(dec(1)))
}

func TestCashflow_EmptySliceNotNil(t *testing.T) {
	repo := &mockRepo{
		monthlyCashflowFn: func(ctx context.Context, userID int64, r Range) ([]CashflowRow, error) {
			return nil, nil
		},
	}
	svc := NewService(repo)

	rows, err := svc.Cashflow(context.Background(), 7, Range{})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestWriteCashflowCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCashflowCSV(&buf, []CashflowRow{
		{Period: "2024-07", Income: dec(5000), Expense: dec(3200)},
	})
	require.NoError(t, err)
	assert.Equal(t, "period,income,expense\n2024-07,5000,3200\n", buf.String())
}

func TestWriteCategoryCSV_QuotesCommas(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCategoryCSV(&buf, []CategoryRow{
		{Category: "Food, dining", Total: dec(42)},
	})
	require.NoError(t, err)
	assert.Equal(t, "category,total\n\"Food, dining\",42\n", buf.String())
}
