package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"fintrack/internal/domain/manualasset"
)

// ManualAssetRepository implements the manualasset.Repository interface for PostgreSQL
type ManualAssetRepository struct {
	db *DB
}

// NewManualAssetRepository creates a new PostgreSQL manual asset repository
func NewManualAssetRepository(db *DB) *ManualAssetRepository {
	return &ManualAssetRepository{db: db}
}

// Create creates a new manual asset
func (r *ManualAssetRepository) Create(ctx context.Context, params manualasset.CreateParams) (*manualasset.Asset, error) {
	query := `
		INSERT INTO manual_assets (user_id, name, asset_type, estimated_value, associated_debt)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, name, asset_type, estimated_value, associated_debt, created_at, updated_at
	`

	var a manualasset.Asset
	err := r.db.QueryRowContext(
		ctx, query,
		params.UserID, params.Name, params.AssetType, params.EstimatedValue, params.AssociatedDebt,
	).Scan(
		&a.ID, &a.UserID, &a.Name, &a.AssetType,
		&a.EstimatedValue, &a.AssociatedDebt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create manual asset: %w", err)
	}

	return &a, nil
}

// GetByID retrieves a manual asset by its ID
func (r *ManualAssetRepository) GetByID(ctx context.Context, id int64) (*manualasset.Asset, error) {
	query := `
		SELECT id, user_id, name, asset_type, estimated_value, associated_debt, created_at, updated_at
		FROM manual_assets
		WHERE id = $1
	`

	var a manualasset.Asset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.UserID, &a.Name, &a.AssetType,
		&a.EstimatedValue, &a.AssociatedDebt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, manualasset.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manual asset: %w", err)
	}

	return &a, nil
}

// ListByUserID retrieves all manual assets for a specific user
func (r *ManualAssetRepository) ListByUserID(ctx context.Context, userID int64) ([]*manualasset.Asset, error) {
	query := `
		SELECT id, user_id, name, asset_type, estimated_value, associated_debt, created_at, updated_at
		FROM manual_assets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list manual assets: %w", err)
	}
	defer rows.Close()

	var assets []*manualasset.Asset
	for rows.Next() {
		var a manualasset.Asset
		err := rows.Scan(
			&a.ID, &a.UserID, &a.Name, &a.AssetType,
			&a.EstimatedValue, &a.AssociatedDebt, &a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manual asset: %w", err)
		}
		assets = append(assets, &a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating manual assets: %w", err)
	}

	return assets, nil
}

// Update applies a partial manual asset update
func (r *ManualAssetRepository) Update(ctx context.Context, id int64, params manualasset.UpdateParams) (*manualasset.Asset, error) {
	query := `
		UPDATE manual_assets
		SET name = COALESCE($2, name),
		    asset_type = COALESCE($3, asset_type),
		    estimated_value = COALESCE($4, estimated_value),
		    associated_debt = COALESCE($5, associated_debt),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING id, user_id, name, asset_type, estimated_value, associated_debt, created_at, updated_at
	`

	var a manualasset.Asset
	err := r.db.QueryRowContext(
		ctx, query,
		id, params.Name, params.AssetType, params.EstimatedValue, params.AssociatedDebt,
	).Scan(
		&a.ID, &a.UserID, &a.Name, &a.AssetType,
		&a.EstimatedValue, &a.AssociatedDebt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, manualasset.ErrAssetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update manual asset: %w", err)
	}

	return &a, nil
}

// Delete removes a manual asset
func (r *ManualAssetRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM manual_assets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete manual asset: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return manualasset.ErrAssetNotFound
	}

	return nil
}
