package repository

import (
	"context"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// Inventory defines the interface for per-user inventory persistence
type Inventory interface {
	// AddItem upserts the (user, item) row, incrementing quantity when
	// the row already exists, and returns the resulting row.
	AddItem(ctx context.Context, userID string, itemID, quantity int) (*domain.InventoryItem, error)

	// RemoveItem deletes a row only when it belongs to userID; a miss on
	// either id or ownership reports domain.ErrInventoryRowNotFound.
	RemoveItem(ctx context.Context, userID string, rowID int) error

	ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error)
}
