package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Inventory for integration-style unit tests.
type FakeRepository struct {
	rows   map[int]*domain.InventoryItem
	nextID int
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		rows:   make(map[int]*domain.InventoryItem),
		nextID: 1,
	}
}

func (f *FakeRepository) AddItem(ctx context.Context, userID string, itemID, quantity int) (*domain.InventoryItem, error) {
	for _, row := range f.rows {
		if row.UserID == userID && row.ItemID == itemID {
			row.Quantity += quantity
			copied := *row
			return &copied, nil
		}
	}

	row := &domain.InventoryItem{
		ID:       f.nextID,
		UserID:   userID,
		ItemID:   itemID,
		Quantity: quantity,
		AddedAt:  time.Now(),
	}
	f.nextID++
	f.rows[row.ID] = row
	copied := *row
	return &copied, nil
}

func (f *FakeRepository) RemoveItem(ctx context.Context, userID string, rowID int) error {
	row, ok := f.rows[rowID]
	if !ok || row.UserID != userID {
		return domain.ErrInventoryRowNotFound
	}
	delete(f.rows, rowID)
	return nil
}

func (f *FakeRepository) ListByUser(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	for _, row := range f.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}
