package inventory

import (
	"context"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// Service defines the interface for per-user inventory operations
type Service interface {
	// AddItem adds quantity of the item named by slug to the user's
	// inventory. Quantities below 1 are coerced to 1.
	AddItem(ctx context.Context, userID, itemSlug string, quantity int) (*domain.InventoryItem, error)

	// RemoveItem deletes one of the user's own inventory rows. Rows
	// belonging to other users are indistinguishable from missing ones.
	RemoveItem(ctx context.Context, userID string, rowID int) error

	ListItems(ctx context.Context, userID string) ([]domain.InventoryItem, error)
}

type service struct {
	repo    repository.Inventory
	catalog repository.Catalog
}

// NewService creates a new inventory service
func NewService(repo repository.Inventory, catalog repository.Catalog) Service {
	return &service{repo: repo, catalog: catalog}
}

func (s *service) AddItem(ctx context.Context, userID, itemSlug string, quantity int) (*domain.InventoryItem, error) {
	log := logger.FromContext(ctx)

	item, err := s.catalog.GetItemBySlug(ctx, itemSlug)
	if err != nil {
		return nil, err
	}

	if quantity < 1 {
		quantity = 1
	}

	entry, err := s.repo.AddItem(ctx, userID, item.ID, quantity)
	if err != nil {
		return nil, err
	}
	entry.Item = item

	log.Info("Inventory item added", "user_id", userID, "item_id", item.ID, "quantity", entry.Quantity)
	return entry, nil
}

func (s *service) RemoveItem(ctx context.Context, userID string, rowID int) error {
	log := logger.FromContext(ctx)

	if err := s.repo.RemoveItem(ctx, userID, rowID); err != nil {
		return err
	}

	log.Info("Inventory item removed", "user_id", userID, "row_id", rowID)
	return nil
}

func (s *service) ListItems(ctx context.Context, userID string) ([]domain.InventoryItem, error) {
	return s.repo.ListByUser(ctx, userID)
}
