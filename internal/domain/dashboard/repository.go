package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/transaction"
)

// Repository defines the aggregate queries the dashboard reads from
type Repository interface {
	// MonthlyAssetTotals returns the per-month sum of the user's asset
	// valuations, ascending by month, including zero months.
	MonthlyAssetTotals(ctx context.Context, userID int64) ([]MonthTotal, error)

	// GroupTotalsAt returns per-group valuation totals for one month.
	GroupTotalsAt(ctx context.Context, userID int64, month time.Time) ([]GroupTotal, error)

	// IncomeExpenseSince sums the user's income and expense transactions from
	// the given instant onward.
	IncomeExpenseSince(ctx context.Context, userID int64, since time.Time) (income, expense decimal.Decimal, err error)

	// ExpenseBreakdownSince groups expense totals by category name from the
	// given instant onward.
	ExpenseBreakdownSince(ctx context.Context, userID int64, since time.Time) ([]CategoryTotal, error)

	// RecentTransactions returns the newest transactions with embedded
	// categories.
	RecentTransactions(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error)

	// CashBalance folds account initial balances with lifetime income minus
	// expense.
	CashBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}
