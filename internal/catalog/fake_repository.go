package catalog

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/lunarbyte/tradevalues/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Catalog for integration-style unit tests. It must remain
// in this package to avoid import cycles.
type FakeRepository struct {
	categories map[int]*domain.Category
	items      map[int]*domain.Item
	nextCatID  int
	nextItemID int
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		categories: make(map[int]*domain.Category),
		items:      make(map[int]*domain.Item),
		nextCatID:  1,
		nextItemID: 1,
	}
}

func (f *FakeRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (f *FakeRepository) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	if c, ok := f.categories[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (f *FakeRepository) InsertCategory(ctx context.Context, category *domain.Category) (int, error) {
	for _, c := range f.categories {
		if c.Name == category.Name || c.Slug == category.Slug {
			return 0, domain.ErrNameTaken
		}
	}
	category.ID = f.nextCatID
	f.nextCatID++
	stored := *category
	f.categories[category.ID] = &stored
	return category.ID, nil
}

func (f *FakeRepository) DeleteCategory(ctx context.Context, id int) error {
	if _, ok := f.categories[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	for _, item := range f.items {
		if item.CategoryID == id {
			return domain.ErrCategoryInUse
		}
	}
	delete(f.categories, id)
	return nil
}

func (f *FakeRepository) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int, error) {
	matched := f.filtered(filter, true)
	sortItems(matched, filter.Sort)

	total := len(matched)
	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * domain.PageSize
	if start > total {
		start = total
	}
	end := start + domain.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (f *FakeRepository) PickerItems(ctx context.Context, filter domain.PickerFilter) ([]domain.Item, error) {
	matched := f.filtered(domain.ItemFilter{
		Query:        filter.Query,
		CategorySlug: filter.CategorySlug,
		Rarity:       filter.Rarity,
	}, false)
	sortKey := filter.Sort
	if sortKey == "" {
		sortKey = domain.SortName
	}
	sortItems(matched, sortKey)
	if len(matched) > domain.PickerLimit {
		matched = matched[:domain.PickerLimit]
	}
	return matched, nil
}

// filtered applies the conjunctive filter set. The picker's free text
// search skips the obtained_from column; the catalog listing includes it.
func (f *FakeRepository) filtered(filter domain.ItemFilter, searchObtained bool) []domain.Item {
	var matched []domain.Item
	for _, item := range f.items {
		if filter.Query != "" {
			hit := containsFold(item.Name, filter.Query) ||
				containsFold(item.Notes, filter.Query) ||
				(searchObtained && containsFold(item.ObtainedFrom, filter.Query))
			if !hit {
				continue
			}
		}
		if filter.CategorySlug != "" {
			category, ok := f.categories[item.CategoryID]
			if !ok || category.Slug != filter.CategorySlug {
				continue
			}
		}
		if filter.Rarity != "" && string(item.Rarity) != filter.Rarity {
			continue
		}
		if filter.ItemType != "" && string(item.ItemType) != filter.ItemType {
			continue
		}
		if filter.Trend != "" && string(item.Trend) != filter.Trend {
			continue
		}
		if filter.MinValue != nil && item.Value < *filter.MinValue {
			continue
		}
		if filter.MaxValue != nil && item.Value > *filter.MaxValue {
			continue
		}

		copied := *item
		if category, ok := f.categories[item.CategoryID]; ok {
			copied.Category = category
		}
		matched = append(matched, copied)
	}
	return matched
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func sortItems(items []domain.Item, key string) {
	switch key {
	case domain.SortValueAsc:
		sort.Slice(items, func(i, j int) bool {
			if items[i].Value != items[j].Value {
				return items[i].Value < items[j].Value
			}
			return items[i].Name < items[j].Name
		})
	case domain.SortValueDesc:
		sort.Slice(items, func(i, j int) bool {
			if items[i].Value != items[j].Value {
				return items[i].Value > items[j].Value
			}
			return items[i].Name < items[j].Name
		})
	case domain.SortName:
		sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	case domain.SortRarity:
		sort.Slice(items, func(i, j int) bool {
			if items[i].Rarity.Rank() != items[j].Rarity.Rank() {
				return items[i].Rarity.Rank() < items[j].Rarity.Rank()
			}
			return items[i].Name < items[j].Name
		})
	default:
		sort.Slice(items, func(i, j int) bool {
			if items[i].Featured != items[j].Featured {
				return items[i].Featured
			}
			if items[i].Value != items[j].Value {
				return items[i].Value > items[j].Value
			}
			return items[i].Name < items[j].Name
		})
	}
}

func (f *FakeRepository) GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error) {
	for _, item := range f.items {
		if item.Slug == slug {
			copied := *item
			if category, ok := f.categories[item.CategoryID]; ok {
				copied.Category = category
			}
			return &copied, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (f *FakeRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	if item, ok := f.items[id]; ok {
		copied := *item
		if category, ok := f.categories[item.CategoryID]; ok {
			copied.Category = category
		}
		return &copied, nil
	}
	return nil, domain.ErrItemNotFound
}

func (f *FakeRepository) InsertItem(ctx context.Context, item *domain.Item) (int, error) {
	for _, existing := range f.items {
		if existing.Name == item.Name || existing.Slug == item.Slug {
			return 0, domain.ErrNameTaken
		}
	}
	item.ID = f.nextItemID
	f.nextItemID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	stored := *item
	f.items[item.ID] = &stored
	return item.ID, nil
}

func (f *FakeRepository) UpdateItem(ctx context.Context, itemID int, item *domain.Item) error {
	existing, ok := f.items[itemID]
	if !ok {
		return domain.ErrItemNotFound
	}
	for id, other := range f.items {
		if id != itemID && (other.Name == item.Name || other.Slug == item.Slug) {
			return domain.ErrNameTaken
		}
	}
	updated := *item
	updated.ID = itemID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	f.items[itemID] = &updated
	return nil
}

func (f *FakeRepository) DeleteItem(ctx context.Context, itemID int) error {
	if _, ok := f.items[itemID]; !ok {
		return domain.ErrItemNotFound
	}
	delete(f.items, itemID)
	return nil
}

func (f *FakeRepository) CountItems(ctx context.Context) (int, error) {
	return len(f.items), nil
}

func (f *FakeRepository) FeaturedItems(ctx context.Context, limit int) ([]domain.Item, error) {
	var featured []domain.Item
	for _, item := range f.items {
		if item.Featured {
			featured = append(featured, *item)
		}
	}
	sort.Slice(featured, func(i, j int) bool {
		if featured[i].Value != featured[j].Value {
			return featured[i].Value > featured[j].Value
		}
		return featured[i].Name < featured[j].Name
	})
	if len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}
