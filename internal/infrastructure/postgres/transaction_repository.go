package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain/category"
	"fintrack/internal/domain/transaction"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `
	t.id, t.user_id, t.account_id, t.category_id, t.transaction_type,
	t.transaction_date, t.amount, t.notes, t.created_at,
	c.id, c.user_id, c.name, c.category_type, c.created_at, c.updated_at
`

func scanTransaction(scanner interface{ Scan(...any) error }) (*transaction.Transaction, error) {
	var tx transaction.Transaction
	var cat category.Category
	var notes sql.NullString

	err := scanner.Scan(
		&tx.ID, &tx.UserID, &tx.AccountID, &tx.CategoryID, &tx.Type,
		&tx.Date, &tx.Amount, &notes, &tx.CreatedAt,
		&cat.ID, &cat.UserID, &cat.Name, &cat.Type, &cat.CreatedAt, &cat.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		tx.Notes = &notes.String
	}
	tx.Category = &cat

	return &tx, nil
}

// Create creates a new transaction with its type decided by the caller
func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams, txType string) (*transaction.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, account_id, category_id, transaction_type, transaction_date, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.AccountID, params.CategoryID, txType,
		params.Date, params.Amount, params.Notes,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return r.GetByID(ctx, id)
}

// GetByID retrieves a transaction with its category embedded
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1
	`

	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return tx, nil
}

// List returns one page of transactions matching the filter plus the total
// match count
func (r *TransactionRepository) List(ctx context.Context, userID int64, filter transaction.ListFilter) ([]*transaction.Transaction, int64, error) {
	where := []string{"t.user_id = $1"}
	args := []any{userID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID > 0 {
		where = append(where, "t.category_id = "+arg(filter.CategoryID))
	}
	if filter.CategoryName != "" {
		where = append(where, "c.name = "+arg(filter.CategoryName))
	}
	if filter.StartDate != nil {
		where = append(where, "t.transaction_date >= "+arg(*filter.StartDate))
	}
	if filter.EndDate != nil {
		where = append(where, "t.transaction_date <= "+arg(*filter.EndDate))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		clause := "(c.name ILIKE " + arg(pattern) + " OR t.notes ILIKE " + arg(pattern)
		if amount, err := decimal.NewFromString(filter.Search); err == nil {
			clause += " OR t.amount = " + arg(amount)
		}
		clause += ")"
		where = append(where, clause)
	}

	whereSQL := strings.Join(where, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + whereSQL

	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	orderCol := map[string]string{
		transaction.SortDate:     "t.transaction_date",
		transaction.SortAmount:   "t.amount",
		transaction.SortID:       "t.id",
		transaction.SortCategory: "c.name",
	}[filter.SortBy]
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	listQuery := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE ` + whereSQL + `
		ORDER BY ` + orderCol + ` ` + direction + `, t.id ` + direction + `
		LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg((filter.Page-1)*filter.Limit)

	rows, err := r.db.QueryContext(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var items []*transaction.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		items = append(items, tx)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating transactions: %w", err)
	}

	return items, total, nil
}

// Update applies a partial update; a non-nil txType rewrites the
// transaction's type alongside the category change
func (r *TransactionRepository) Update(ctx context.Context, id int64, params transaction.UpdateParams, txType *string) (*transaction.Transaction, error) {
	query := `
		UPDATE transactions
		SET account_id = COALESCE($2, account_id),
		    category_id = COALESCE($3, category_id),
		    transaction_type = COALESCE($4, transaction_type),
		    transaction_date = COALESCE($5, transaction_date),
		    amount = COALESCE($6, amount),
		    notes = COALESCE($7, notes)
		WHERE id = $1
		RETURNING id
	`

	var updatedID int64
	err := r.db.QueryRowContext(
		ctx, query,
		id, params.AccountID, params.CategoryID, txType, params.Date, params.Amount, params.Notes,
	).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Delete removes a transaction
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM transactions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return transaction.ErrTransactionNotFound
	}

	return nil
}

// NoteSuggestions returns distinct notes matching the query prefix, newest
// usage first
func (r *TransactionRepository) NoteSuggestions(ctx context.Context, userID int64, query string, limit int) ([]string, error) {
	sqlQuery := `
		SELECT notes
		FROM (
			SELECT notes, MAX(transaction_date) AS last_used
			FROM transactions
			WHERE user_id = $1 AND notes IS NOT NULL AND notes ILIKE $2
			GROUP BY notes
		) n
		ORDER BY last_used DESC
		LIMIT $3
	`

	rows, err := r.db.QueryContext(ctx, sqlQuery, userID, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch note suggestions: %w", err)
	}
	defer rows.Close()

	var notes []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notes: %w", err)
	}

	return notes, nil
}
