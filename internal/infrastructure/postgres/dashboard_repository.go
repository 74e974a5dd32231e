package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/dashboard"
	"fintrack/internal/domain/transaction"
)

// DashboardRepository implements the dashboard.Repository interface for PostgreSQL
type DashboardRepository struct {
	db           *DB
	transactions *TransactionRepository
}

// NewDashboardRepository creates a new PostgreSQL dashboard repository
func NewDashboardRepository(db *DB) *DashboardRepository {
	return &DashboardRepository{db: db, transactions: NewTransactionRepository(db)}
}

// MonthlyAssetTotals returns the per-month sum of the user's asset
// valuations, ascending by month
func (r *DashboardRepository) MonthlyAssetTotals(ctx context.Context, userID int64) ([]dashboard.MonthTotal, error) {
	query := `
		SELECT v.month, SUM(v.value)
		FROM asset_valuations v
		JOIN asset_items i ON i.id = v.item_id
		JOIN asset_groups g ON g.id = i.group_id
		WHERE g.user_id = $1
		GROUP BY v.month
		ORDER BY v.month
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum monthly valuations: %w", err)
	}
	defer rows.Close()

	var totals []dashboard.MonthTotal
	for rows.Next() {
		var t dashboard.MonthTotal
		if err := rows.Scan(&t.Month, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan month total: %w", err)
		}
		t.Month = t.Month.UTC()
		t.Label = t.Month.Format("2006-01")
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating month totals: %w", err)
	}

	return totals, nil
}

// GroupTotalsAt returns per-group valuation totals for one month
func (r *DashboardRepository) GroupTotalsAt(ctx context.Context, userID int64, month time.Time) ([]dashboard.GroupTotal, error) {
	query := `
		SELECT g.name, SUM(v.value)
		FROM asset_valuations v
		JOIN asset_items i ON i.id = v.item_id
		JOIN asset_groups g ON g.id = i.group_id
		WHERE g.user_id = $1 AND v.month = $2
		GROUP BY g.name
		ORDER BY SUM(v.value) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to sum group totals: %w", err)
	}
	defer rows.Close()

	var totals []dashboard.GroupTotal
	for rows.Next() {
		var t dashboard.GroupTotal
		if err := rows.Scan(&t.GroupName, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan group total: %w", err)
		}
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating group totals: %w", err)
	}

	return totals, nil
}

// IncomeExpenseSince sums the user's income and expense transactions from
// the given instant onward
func (r *DashboardRepository) IncomeExpenseSince(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'Income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'Expense'), 0)
		FROM transactions
		WHERE user_id = $1 AND transaction_date >= $2
	`

	var income, expense decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to sum cash flow: %w", err)
	}

	return income, expense, nil
}

// ExpenseBreakdownSince groups expense totals by category name from the
// given instant onward
func (r *DashboardRepository) ExpenseBreakdownSince(ctx context.Context, userID int64, since time.Time) ([]dashboard.CategoryTotal, error) {
	query := `
		SELECT c.name, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		  AND t.transaction_type = 'Expense'
		  AND t.transaction_date >= $2
		GROUP BY c.name
		ORDER BY SUM(t.amount) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expense breakdown: %w", err)
	}
	defer rows.Close()

	var totals []dashboard.CategoryTotal
	for rows.Next() {
		var t dashboard.CategoryTotal
		if err := rows.Scan(&t.CategoryName, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return totals, nil
}

// RecentTransactions returns the newest transactions with embedded categories
func (r *DashboardRepository) RecentTransactions(ctx context.Context, userID int64, limit int) ([]*transaction.Transaction, error) {
	items, _, err := r.transactions.List(ctx, userID, transaction.ListFilter{
		SortBy:   transaction.SortDate,
		SortDesc: true,
		Page:     1,
		Limit:    limit,
	})
	return items, err
}

// CashBalance folds account initial balances with lifetime income minus
// expense
func (r *DashboardRepository) CashBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE((SELECT SUM(initial_balance) FROM accounts WHERE user_id = $1), 0)
			+ COALESCE((SELECT SUM(amount) FROM transactions WHERE user_id = $1 AND transaction_type = 'Income'), 0)
			- COALESCE((SELECT SUM(amount) FROM transactions WHERE user_id = $1 AND transaction_type = 'Expense'), 0)
	`

	var balance decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute cash balance: %w", err)
	}

	return balance, nil
}
