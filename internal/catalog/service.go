package catalog

import (
	"context"
	"fmt"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/logger"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// ItemPage is one page of a catalog listing
type ItemPage struct {
	Items     []domain.Item `json:"items"`
	Total     int           `json:"total"`
	Page      int           `json:"page"`
	PageCount int           `json:"page_count"`
}

// Summary is the landing-page aggregate
type Summary struct {
	TotalItems int               `json:"total_items"`
	Categories []domain.Category `json:"categories"`
	Featured   []domain.Item     `json:"featured"`
}

// CategoryInput carries the fields for creating a category
type CategoryInput struct {
	Name        string
	Description string
	Color       string
}

// ItemInput carries the editable fields of an item
type ItemInput struct {
	Name         string
	CategoryID   int
	ItemType     domain.ItemType
	Rarity       domain.Rarity
	Value        int
	Demand       int
	Trend        domain.Trend
	IsLimited    bool
	Featured     bool
	ObtainedFrom string
	ImageURL     string
	Notes        string
}

// Service defines the interface for catalog operations
type Service interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id int) error

	BrowseItems(ctx context.Context, filter domain.ItemFilter) (*ItemPage, error)
	PickerItems(ctx context.Context, filter domain.PickerFilter) ([]domain.Item, error)
	GetItem(ctx context.Context, slug string) (*domain.Item, error)
	CreateItem(ctx context.Context, input ItemInput) (*domain.Item, error)
	UpdateItem(ctx context.Context, itemID int, input ItemInput) (*domain.Item, error)
	DeleteItem(ctx context.Context, itemID int) error

	GetSummary(ctx context.Context) (*Summary, error)
}

type service struct {
	repo repository.Catalog
}

// NewService creates a new catalog service
func NewService(repo repository.Catalog) Service {
	return &service{repo: repo}
}

func (s *service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	log := logger.FromContext(ctx)

	category := &domain.Category{
		Name:        input.Name,
		Slug:        domain.Slugify(input.Name),
		Description: input.Description,
		Color:       input.Color,
	}
	if category.Color == "" {
		category.Color = domain.DefaultCategoryColor
	}
	if category.Slug == "" {
		return nil, fmt.Errorf("%w: name produces an empty slug", domain.ErrInvalidInput)
	}

	id, err := s.repo.InsertCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	category.ID = id

	log.Info("Category created", "category_id", id, "slug", category.Slug)
	return category, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int) error {
	log := logger.FromContext(ctx)

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	log.Info("Category deleted", "category_id", id)
	return nil
}

func (s *service) BrowseItems(ctx context.Context, filter domain.ItemFilter) (*ItemPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}

	items, total, err := s.repo.ListItems(ctx, filter)
	if err != nil {
		return nil, err
	}

	pageCount := (total + domain.PageSize - 1) / domain.PageSize
	if pageCount < 1 {
		pageCount = 1
	}

	return &ItemPage{
		Items:     items,
		Total:     total,
		Page:      filter.Page,
		PageCount: pageCount,
	}, nil
}

func (s *service) PickerItems(ctx context.Context, filter domain.PickerFilter) ([]domain.Item, error) {
	return s.repo.PickerItems(ctx, filter)
}

func (s *service) GetItem(ctx context.Context, slug string) (*domain.Item, error) {
	return s.repo.GetItemBySlug(ctx, slug)
}

func (s *service) CreateItem(ctx context.Context, input ItemInput) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	item := itemFromInput(input)
	item.Slug = domain.Slugify(input.Name)
	if item.Slug == "" {
		return nil, fmt.Errorf("%w: name produces an empty slug", domain.ErrInvalidInput)
	}

	id, err := s.repo.InsertItem(ctx, item)
	if err != nil {
		return nil, err
	}

	log.Info("Item created", "item_id", id, "slug", item.Slug)
	return s.repo.GetItemByID(ctx, id)
}

func (s *service) UpdateItem(ctx context.Context, itemID int, input ItemInput) (*domain.Item, error) {
	log := logger.FromContext(ctx)

	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	item := itemFromInput(input)
	item.Slug = domain.Slugify(input.Name)

	if err := s.repo.UpdateItem(ctx, itemID, item); err != nil {
		return nil, err
	}

	log.Info("Item updated", "item_id", itemID)
	return s.repo.GetItemByID(ctx, itemID)
}

func (s *service) DeleteItem(ctx context.Context, itemID int) error {
	log := logger.FromContext(ctx)

	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return err
	}

	log.Info("Item deleted", "item_id", itemID)
	return nil
}

func (s *service) GetSummary(ctx context.Context) (*Summary, error) {
	total, err := s.repo.CountItems(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	featured, err := s.repo.FeaturedItems(ctx, FeaturedSummaryLimit)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalItems: total,
		Categories: categories,
		Featured:   featured,
	}, nil
}

// validateInput checks enum fields and value ranges, plus that the
// target category exists.
func (s *service) validateInput(ctx context.Context, input ItemInput) error {
	if !domain.ValidItemTypes[input.ItemType] {
		return fmt.Errorf("%w: unknown item type %q", domain.ErrInvalidInput, input.ItemType)
	}
	if !domain.ValidRarities[input.Rarity] {
		return fmt.Errorf("%w: unknown rarity %q", domain.ErrInvalidInput, input.Rarity)
	}
	if !domain.ValidTrends[input.Trend] {
		return fmt.Errorf("%w: unknown trend %q", domain.ErrInvalidInput, input.Trend)
	}
	if input.Value < 0 {
		return fmt.Errorf("%w: value must not be negative", domain.ErrInvalidInput)
	}
	if input.Demand < 1 || input.Demand > 10 {
		return fmt.Errorf("%w: demand must be between 1 and 10", domain.ErrInvalidInput)
	}

	if _, err := s.repo.GetCategoryByID(ctx, input.CategoryID); err != nil {
		return err
	}
	return nil
}

func itemFromInput(input ItemInput) *domain.Item {
	return &domain.Item{
		Name:         input.Name,
		CategoryID:   input.CategoryID,
		ItemType:     input.ItemType,
		Rarity:       input.Rarity,
		Value:        input.Value,
		Demand:       input.Demand,
		Trend:        input.Trend,
		IsLimited:    input.IsLimited,
		Featured:     input.Featured,
		ObtainedFrom: input.ObtainedFrom,
		ImageURL:     input.ImageURL,
		Notes:        input.Notes,
	}
}
