package repository

import (
	"context"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// Catalog defines the interface for category and item persistence
type Catalog interface {
	// Category operations
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, id int) (*domain.Category, error)
	InsertCategory(ctx context.Context, category *domain.Category) (int, error)
	DeleteCategory(ctx context.Context, id int) error

	// Item operations
	ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int, error)
	PickerItems(ctx context.Context, filter domain.PickerFilter) ([]domain.Item, error)
	GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error)
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	InsertItem(ctx context.Context, item *domain.Item) (int, error)
	UpdateItem(ctx context.Context, itemID int, item *domain.Item) error
	DeleteItem(ctx context.Context, itemID int) error

	// Landing summary
	CountItems(ctx context.Context) (int, error)
	FeaturedItems(ctx context.Context, limit int) ([]domain.Item, error)
}
