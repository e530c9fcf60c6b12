package domain

import "time"

// InventoryItem is a quantity-counted (user, item) ownership row.
// At most one row exists per pair; re-adding increments quantity.
type InventoryItem struct {
	ID       int       `json:"id"`
	UserID   string    `json:"user_id"`
	ItemID   int       `json:"item_id"`
	Item     *Item     `json:"item,omitempty"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}
