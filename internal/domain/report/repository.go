package report

import "context"

// Repository defines the aggregate queries reports read from
type Repository interface {
	// MonthlyCashflow returns per-month income and expense totals within the
	// range, ascending by period.
	MonthlyCashflow(ctx context.Context, userID int64, r Range) ([]CashflowRow, error)

	// SpendingByCategory returns expense totals per category within the
	// range, descending by total.
	SpendingByCategory(ctx context.Context, userID int64, r Range) ([]CategoryRow, error)

	// MonthlyExpenses returns per-month expense totals within the range,
	// ascending by month.
	MonthlyExpenses(ctx context.Context, userID int64, r Range) ([]MonthlyExpenseRow, error)
}
