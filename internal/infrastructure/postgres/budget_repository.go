package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/budget"
)

// BudgetRepository implements the budget.Repository interface for PostgreSQL
type BudgetRepository struct {
	db *DB
}

// NewBudgetRepository creates a new PostgreSQL budget repository
func NewBudgetRepository(db *DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

// Create creates a new budget
func (r *BudgetRepository) Create(ctx context.Context, params budget.CreateParams) (*budget.Budget, error) {
	query := `
		INSERT INTO budgets (user_id, category_id, amount, period)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.CategoryID, params.Amount, params.Period).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a budget with its category name
func (r *BudgetRepository) GetByID(ctx context.Context, id int64) (*budget.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, c.name, b.amount, b.period, b.created_at
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1
	`

	var b budget.Budget
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Amount, &b.Period, &b.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, budget.ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return &b, nil
}

// ListByUserID retrieves all budgets for a specific user
func (r *BudgetRepository) ListByUserID(ctx context.Context, userID int64) ([]*budget.Budget, error) {
	query := `
		SELECT b.id, b.user_id, b.category_id, c.name, b.amount, b.period, b.created_at
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.user_id = $1
		ORDER BY c.name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*budget.Budget
	for rows.Next() {
		var b budget.Budget
		err := rows.Scan(&b.ID, &b.UserID, &b.CategoryID, &b.CategoryName, &b.Amount, &b.Period, &b.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, &b)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// Update applies a partial budget update
func (r *BudgetRepository) Update(ctx context.Context, id int64, params budget.UpdateParams) (*budget.Budget, error) {
	query := `
		UPDATE budgets
		SET category_id = COALESCE($2, category_id),
		    amount = COALESCE($3, amount),
		    period = COALESCE($4, period)
		WHERE id = $1
		RETURNING id
	`

	var updatedID int64
	err := r.db.QueryRowContext(ctx, query, id, params.CategoryID, params.Amount, params.Period).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return nil, budget.ErrBudgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Delete removes a budget
func (r *BudgetRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM budgets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return budget.ErrBudgetNotFound
	}

	return nil
}

// SpentSince sums the user's expense transactions for the category from the
// given instant onward
func (r *BudgetRepository) SpentSince(ctx context.Context, userID, categoryID int64, since time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1
		  AND category_id = $2
		  AND transaction_type = 'Expense'
		  AND transaction_date >= $3
	`

	var spent decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID, categoryID, since).Scan(&spent); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum budget spend: %w", err)
	}

	return spent, nil
}
