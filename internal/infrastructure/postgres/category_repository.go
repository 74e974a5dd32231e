package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/category"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (user_id, name, category_type)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, name, category_type, created_at, updated_at
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.Name, params.Type).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query := `
		SELECT id, user_id, name, category_type, created_at, updated_at
		FROM categories
		WHERE id = $1
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &c, nil
}

// ListByUserID retrieves all categories for a specific user
func (r *CategoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*category.Category, error) {
	query := `
		SELECT id, user_id, name, category_type, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Update applies a partial category update
func (r *CategoryRepository) Update(ctx context.Context, id int64, params category.UpdateParams) (*category.Category, error) {
	query := `
		UPDATE categories
		SET name = COALESCE($2, name),
		    category_type = COALESCE($3, category_type),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, user_id, name, category_type, created_at, updated_at
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, id, params.Name, params.Type).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &c, nil
}

// Delete removes a category
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return category.ErrCategoryNotFound
	}

	return nil
}

// TransactionCount reports how many transactions reference the category
func (r *CategoryRepository) TransactionCount(ctx context.Context, id int64) (int64, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1`

	var count int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count category transactions: %w", err)
	}

	return count, nil
}

// PropagateType rewrites the type of every transaction in the category
func (r *CategoryRepository) PropagateType(ctx context.Context, categoryID int64, newType string) error {
	query := `UPDATE transactions SET transaction_type = $2 WHERE category_id = $1`

	if _, err := r.db.ExecContext(ctx, query, categoryID, newType); err != nil {
		return fmt.Errorf("failed to propagate category type: %w", err)
	}

	return nil
}

// FindOrCreate returns the user's category with the name and type, creating
// it when absent
func (r *CategoryRepository) FindOrCreate(ctx context.Context, userID int64, name, categoryType string) (*category.Category, error) {
	query := `
		SELECT id, user_id, name, category_type, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND name = $2 AND category_type = $3
		LIMIT 1
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, userID, name, categoryType).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Type, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == nil {
		return &c, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return r.Create(ctx, category.CreateParams{UserID: userID, Name: name, Type: categoryType})
}
