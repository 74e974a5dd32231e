package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain/asset"
)

// AssetRepository implements the asset.Repository interface for PostgreSQL
type AssetRepository struct {
	db *DB
}

// NewAssetRepository creates a new PostgreSQL asset repository
func NewAssetRepository(db *DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// CreateGroup creates a new asset group
func (r *AssetRepository) CreateGroup(ctx context.Context, params asset.CreateGroupParams) (*asset.Group, error) {
	query := `
		INSERT INTO asset_groups (user_id, name)
		VALUES ($1, $2)
		RETURNING id, user_id, name, created_at
	`

	var g asset.Group
	err := r.db.QueryRowContext(ctx, query, params.UserID, params.Name).Scan(
		&g.ID, &g.UserID, &g.Name, &g.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset group: %w", err)
	}

	return &g, nil
}

// GetGroup retrieves a group by its ID
func (r *AssetRepository) GetGroup(ctx context.Context, id int64) (*asset.Group, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM asset_groups
		WHERE id = $1
	`

	var g asset.Group
	err := r.db.QueryRowContext(ctx, query, id).Scan(&g.ID, &g.UserID, &g.Name, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, asset.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset group: %w", err)
	}

	return &g, nil
}

// ListGroups retrieves the user's groups without nested items
func (r *AssetRepository) ListGroups(ctx context.Context, userID int64) ([]*asset.Group, error) {
	query := `
		SELECT id, user_id, name, created_at
		FROM asset_groups
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset groups: %w", err)
	}
	defer rows.Close()

	var groups []*asset.Group
	for rows.Next() {
		var g asset.Group
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan asset group: %w", err)
		}
		groups = append(groups, &g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset groups: %w", err)
	}

	return groups, nil
}

// RenameGroup updates a group's name
func (r *AssetRepository) RenameGroup(ctx context.Context, id int64, name string) (*asset.Group, error) {
	query := `
		UPDATE asset_groups
		SET name = $2
		WHERE id = $1
		RETURNING id, user_id, name, created_at
	`

	var g asset.Group
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(&g.ID, &g.UserID, &g.Name, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, asset.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to rename asset group: %w", err)
	}

	return &g, nil
}

// DeleteGroup removes a group, cascading to items and valuations
func (r *AssetRepository) DeleteGroup(ctx context.Context, id int64) error {
	query := `DELETE FROM asset_groups WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset group: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return asset.ErrGroupNotFound
	}

	return nil
}

const itemColumns = `
	i.id, i.group_id, g.user_id, i.parent_item_id, i.name, i.description,
	i.hidden, i.depreciation_amount, i.created_at
`

func scanItem(scanner interface{ Scan(...any) error }) (*asset.Item, error) {
	var it asset.Item
	var parentID sql.NullInt64
	var description sql.NullString
	var depreciation decimal.NullDecimal

	err := scanner.Scan(
		&it.ID, &it.GroupID, &it.UserID, &parentID, &it.Name, &description,
		&it.Hidden, &depreciation, &it.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		it.ParentID = &parentID.Int64
	}
	if description.Valid {
		it.Description = &description.String
	}
	if depreciation.Valid {
		it.DepreciationAmount = &depreciation.Decimal
	}

	return &it, nil
}

// CreateItem creates an item; a nil ParentID makes it a root of its group
func (r *AssetRepository) CreateItem(ctx context.Context, params asset.CreateItemParams) (*asset.Item, error) {
	query := `
		INSERT INTO asset_items (group_id, parent_item_id, name, description, depreciation_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(
		ctx, query,
		params.GroupID, params.ParentID, params.Name, params.Description, params.DepreciationAmount,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("failed to create asset item: %w", err)
	}

	return r.GetItem(ctx, id)
}

// GetItem retrieves an item with its owning user resolved through the group
func (r *AssetRepository) GetItem(ctx context.Context, id int64) (*asset.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM asset_items i
		JOIN asset_groups g ON g.id = i.group_id
		WHERE i.id = $1
	`

	it, err := scanItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, asset.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset item: %w", err)
	}

	return it, nil
}

// ListItems retrieves every item across the user's groups
func (r *AssetRepository) ListItems(ctx context.Context, userID int64) ([]*asset.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM asset_items i
		JOIN asset_groups g ON g.id = i.group_id
		WHERE g.user_id = $1
		ORDER BY i.created_at
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list asset items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// ListChildren retrieves the direct children of the given parents
func (r *AssetRepository) ListChildren(ctx context.Context, parentIDs []int64) ([]*asset.Item, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM asset_items i
		JOIN asset_groups g ON g.id = i.group_id
		WHERE i.parent_item_id = ANY($1)
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(parentIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list child items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

func collectItems(rows *sql.Rows) ([]*asset.Item, error) {
	var items []*asset.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset items: %w", err)
	}

	return items, nil
}

// UpdateItem applies a partial update. ClearDepreciation nulls the
// depreciation amount regardless of the COALESCE fallback.
func (r *AssetRepository) UpdateItem(ctx context.Context, id int64, params asset.UpdateItemParams) (*asset.Item, error) {
	query := `
		UPDATE asset_items
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    hidden = COALESCE($4, hidden),
		    depreciation_amount = CASE WHEN $6 THEN NULL ELSE COALESCE($5, depreciation_amount) END
		WHERE id = $1
		RETURNING id
	`

	var updatedID int64
	err := r.db.QueryRowContext(
		ctx, query,
		id, params.Name, params.Description, params.Hidden, params.DepreciationAmount, params.ClearDepreciation,
	).Scan(&updatedID)
	if err == sql.ErrNoRows {
		return nil, asset.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update asset item: %w", err)
	}

	return r.GetItem(ctx, updatedID)
}

// DeleteItem removes an item, cascading to children and valuations
func (r *AssetRepository) DeleteItem(ctx context.Context, id int64) error {
	query := `DELETE FROM asset_items WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return asset.ErrItemNotFound
	}

	return nil
}

// HasChildren reports whether the item has at least one child
func (r *AssetRepository) HasChildren(ctx context.Context, itemID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM asset_items WHERE parent_item_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, itemID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for child items: %w", err)
	}

	return exists, nil
}

// SetHidden bulk-updates the hidden flag and returns the rows touched
func (r *AssetRepository) SetHidden(ctx context.Context, itemIDs []int64, hidden bool) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, nil
	}

	query := `UPDATE asset_items SET hidden = $2 WHERE id = ANY($1)`

	result, err := r.db.ExecContext(ctx, query, pq.Array(itemIDs), hidden)
	if err != nil {
		return 0, fmt.Errorf("failed to set hidden flag: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

// ListValuations retrieves every valuation across the user's items
func (r *AssetRepository) ListValuations(ctx context.Context, userID int64) ([]*asset.Valuation, error) {
	query := `
		SELECT v.id, v.item_id, v.month, v.value
		FROM asset_valuations v
		JOIN asset_items i ON i.id = v.item_id
		JOIN asset_groups g ON g.id = i.group_id
		WHERE g.user_id = $1
		ORDER BY v.month
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuations: %w", err)
	}
	defer rows.Close()

	var valuations []*asset.Valuation
	for rows.Next() {
		var v asset.Valuation
		if err := rows.Scan(&v.ID, &v.ItemID, &v.Month, &v.Value); err != nil {
			return nil, fmt.Errorf("failed to scan valuation: %w", err)
		}
		v.Month = v.Month.UTC()
		valuations = append(valuations, &v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuations: %w", err)
	}

	return valuations, nil
}

// UpsertValuation writes the value for (item, month), replacing any existing
// row for that month
func (r *AssetRepository) UpsertValuation(ctx context.Context, itemID int64, month time.Time, value decimal.Decimal) (*asset.Valuation, error) {
	query := `
		INSERT INTO asset_valuations (item_id, month, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id, month)
		DO UPDATE SET value = EXCLUDED.value
		RETURNING id, item_id, month, value
	`

	var v asset.Valuation
	err := r.db.QueryRowContext(ctx, query, itemID, month, value).Scan(&v.ID, &v.ItemID, &v.Month, &v.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert valuation: %w", err)
	}
	v.Month = v.Month.UTC()

	return &v, nil
}

// DeleteValuationsForMonth removes the month's valuations scoped to the
// user's groups and returns the count deleted
func (r *AssetRepository) DeleteValuationsForMonth(ctx context.Context, userID int64, month time.Time) (int64, error) {
	query := `
		DELETE FROM asset_valuations v
		USING asset_items i, asset_groups g
		WHERE v.item_id = i.id
		  AND i.group_id = g.id
		  AND g.user_id = $1
		  AND v.month = $2
	`

	result, err := r.db.ExecContext(ctx, query, userID, month)
	if err != nil {
		return 0, fmt.Errorf("failed to delete valuations: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}

// ListDepreciableLeaves retrieves the user's leaf items carrying a
// depreciation amount
func (r *AssetRepository) ListDepreciableLeaves(ctx context.Context, userID int64) ([]*asset.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM asset_items i
		JOIN asset_groups g ON g.id = i.group_id
		WHERE g.user_id = $1
		  AND i.depreciation_amount IS NOT NULL
		  AND NOT EXISTS (SELECT 1 FROM asset_items c WHERE c.parent_item_id = i.id)
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list depreciable leaves: %w", err)
	}
	defer rows.Close()

	return collectItems(rows)
}

// LatestValuationsBefore returns, per item, the most recent value strictly
// before the month
func (r *AssetRepository) LatestValuationsBefore(ctx context.Context, itemIDs []int64, month time.Time) (map[int64]decimal.Decimal, error) {
	if len(itemIDs) == 0 {
		return map[int64]decimal.Decimal{}, nil
	}

	query := `
		SELECT DISTINCT ON (item_id) item_id, value
		FROM asset_valuations
		WHERE item_id = ANY($1) AND month < $2
		ORDER BY item_id, month DESC
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(itemIDs), month)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prior valuations: %w", err)
	}
	defer rows.Close()

	latest := make(map[int64]decimal.Decimal)
	for rows.Next() {
		var itemID int64
		var value decimal.Decimal
		if err := rows.Scan(&itemID, &value); err != nil {
			return nil, fmt.Errorf("failed to scan prior valuation: %w", err)
		}
		latest[itemID] = value
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prior valuations: %w", err)
	}

	return latest, nil
}

// InsertValuations batch-inserts rows inside one transaction, skipping
// (item, month) duplicates, and returns the count actually inserted
func (r *AssetRepository) InsertValuations(ctx context.Context, entries []asset.DepreciationEntry) (int64, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO asset_valuations (item_id, month, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id, month) DO NOTHING
	`

	var inserted int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to prepare valuation insert: %w", err)
		}
		defer stmt.Close()

		for _, e := range entries {
			result, err := stmt.ExecContext(ctx, e.ItemID, e.Month, e.Value)
			if err != nil {
				return fmt.Errorf("failed to insert valuation: %w", err)
			}
			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to get affected rows: %w", err)
			}
			inserted += rows
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}
