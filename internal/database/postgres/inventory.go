package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// InventoryRepository implements the inventory repository for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) repository.Inventory {
	return &InventoryRepository{db: db}
}

// AddItem upserts the (user, item) row. A second add of the same item
// increments the existing quantity instead of creating a duplicate row.
func (r *InventoryRepository) AddItem(ctx context.Context, userID string, itemID, quantity int) (*domain.InventoryItem, error) {
	query := `
		INSERT INTO inventory_items (user_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, item_id) DO UPDATE
		SET quantity = inventory_items.quantity + EXCLUDED.quantity
		RETURNING inventory_item_id, user_id, item_id, quantity, added_at
	`

	var row domain.InventoryItem
	err := r.db.QueryRow(ctx, query, userID, itemID, quantity).Scan(
		&row.ID, &row.UserID, &row.ItemID, &row.Quantity, &row.AddedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAddInventoryItem, err)
	}

	return &row, nil
}

// RemoveItem deletes an inventory row scoped to its owner. A row that
// does not exist or belongs to another user reports
// domain.ErrInventoryRowNotFound either way.
func (r *InventoryRepository) RemoveItem(ctx context.Context, userID string, rowID int) error {
	query := `
		DELETE FROM inventory_items
		WHERE inventory_item_id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query, rowID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToRemoveInventoryItem, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrInventoryRowNotFound
	}

	return nil
}

// ListByUser returns a user's inventory with item details joined in,
// newest additions first.
func (r *InventoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	query := `
		SELECT inv.inventory_item_id, inv.user_id, inv.item_id, inv.quantity, inv.added_at,` +
		itemColumns + `
		FROM inventory_items inv
		JOIN items i ON inv.item_id = i.item_id
		JOIN categories c ON i.category_id = c.category_id
		WHERE inv.user_id = $1
		ORDER BY inv.added_at DESC, inv.inventory_item_id DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventory, err)
	}
	defer rows.Close()

	var entries []domain.InventoryItem
	for rows.Next() {
		var entry domain.InventoryItem
		var item domain.Item
		var category domain.Category

		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.ItemID, &entry.Quantity, &entry.AddedAt,
			&item.ID, &item.Name, &item.Slug, &item.CategoryID, &item.ItemType,
			&item.Rarity, &item.Value, &item.Demand, &item.Trend, &item.IsLimited,
			&item.Featured, &item.ObtainedFrom, &item.ImageURL, &item.Notes,
			&item.CreatedAt, &item.UpdatedAt,
			&category.ID, &category.Name, &category.Slug, &category.Description, &category.Color,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventory, err)
		}

		item.Category = &category
		entry.Item = &item
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListInventory, err)
	}

	return entries, nil
}
