package postgres

import (
	"context"
	"fmt"

	"fintrack/internal/domain/report"
)

// ReportRepository implements the report.Repository interface for PostgreSQL
type ReportRepository struct {
	db *DB
}

// NewReportRepository creates a new PostgreSQL report repository
func NewReportRepository(db *DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// MonthlyCashflow returns per-month income and expense totals within the
// range, ascending by period
func (r *ReportRepository) MonthlyCashflow(ctx context.Context, userID int64, rng report.Range) ([]report.CashflowRow, error) {
	query := `
		SELECT
			to_char(transaction_date, 'YYYY-MM') AS period,
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'Income'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'Expense'), 0)
		FROM transactions
		WHERE user_id = $1 AND transaction_date BETWEEN $2 AND $3
		GROUP BY period
		ORDER BY period
	`

	rows, err := r.db.QueryContext(ctx, query, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to compute cashflow: %w", err)
	}
	defer rows.Close()

	var result []report.CashflowRow
	for rows.Next() {
		var row report.CashflowRow
		if err := rows.Scan(&row.Period, &row.Income, &row.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan cashflow row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashflow rows: %w", err)
	}

	return result, nil
}

// SpendingByCategory returns expense totals per category within the range,
// descending by total
func (r *ReportRepository) SpendingByCategory(ctx context.Context, userID int64, rng report.Range) ([]report.CategoryRow, error) {
	query := `
		SELECT c.name, SUM(t.amount)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		  AND t.transaction_type = 'Expense'
		  AND t.transaction_date BETWEEN $2 AND $3
		GROUP BY c.name
		ORDER BY SUM(t.amount) DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category spending: %w", err)
	}
	defer rows.Close()

	var result []report.CategoryRow
	for rows.Next() {
		var row report.CategoryRow
		if err := rows.Scan(&row.Category, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return result, nil
}

// MonthlyExpenses returns per-month expense totals within the range,
// ascending by month
func (r *ReportRepository) MonthlyExpenses(ctx context.Context, userID int64, rng report.Range) ([]report.MonthlyExpenseRow, error) {
	query := `
		SELECT to_char(transaction_date, 'YYYY-MM') AS month, SUM(amount)
		FROM transactions
		WHERE user_id = $1
		  AND transaction_type = 'Expense'
		  AND transaction_date BETWEEN $2 AND $3
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.db.QueryContext(ctx, query, userID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("failed to compute monthly expenses: %w", err)
	}
	defer rows.Close()

	var result []report.MonthlyExpenseRow
	for rows.Next() {
		var row report.MonthlyExpenseRow
		if err := rows.Scan(&row.Month, &row.Total); err != nil {
			return nil, fmt.Errorf("failed to scan monthly expense row: %w", err)
		}
		result = append(result, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly expense rows: %w", err)
	}

	return result, nil
}
