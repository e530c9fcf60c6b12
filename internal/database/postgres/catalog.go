package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunarbyte/tradevalues/internal/domain"
	"github.com/lunarbyte/tradevalues/internal/repository"
)

// itemColumns is the shared select list for item queries; every item
// row is fetched with its category joined in.
const itemColumns = `
	i.item_id, i.item_name, i.slug, i.category_id, i.item_type, i.rarity,
	i.item_value, i.demand, i.trend, i.is_limited, i.featured,
	i.obtained_from, i.image_url, i.notes, i.created_at, i.updated_at,
	c.category_id, c.category_name, c.slug, c.description, c.color`

// rarityRankSQL mirrors domain.Rarity.Rank for in-database ordering
const rarityRankSQL = `CASE i.rarity
	WHEN 'unobtainable' THEN 0
	WHEN 'special_grade' THEN 1
	WHEN 'rare' THEN 2
	WHEN 'uncommon' THEN 3
	WHEN 'common' THEN 4
	ELSE 5 END`

// CatalogRepository implements the catalog repository for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) repository.Catalog {
	return &CatalogRepository{db: db}
}

// ListCategories returns all categories ordered by name
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
		SELECT category_id, category_name, slug, description, color
		FROM categories
		ORDER BY category_name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCategories, err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCategories, err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCategories, err)
	}

	return categories, nil
}

// GetCategoryBySlug finds a category by its slug
func (r *CatalogRepository) GetCategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return r.getCategory(ctx, "slug = $1", slug)
}

// GetCategoryByID finds a category by its id
func (r *CatalogRepository) GetCategoryByID(ctx context.Context, id int) (*domain.Category, error) {
	return r.getCategory(ctx, "category_id = $1", id)
}

func (r *CatalogRepository) getCategory(ctx context.Context, where string, arg interface{}) (*domain.Category, error) {
	query := `
		SELECT category_id, category_name, slug, description, color
		FROM categories
		WHERE ` + where

	var c domain.Category
	err := r.db.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.Color)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCategory, err)
	}

	return &c, nil
}

// InsertCategory stores a new category and returns its id.
// A name or slug collision reports domain.ErrNameTaken.
func (r *CatalogRepository) InsertCategory(ctx context.Context, category *domain.Category) (int, error) {
	query := `
		INSERT INTO categories (category_name, slug, description, color)
		VALUES ($1, $2, $3, $4)
		RETURNING category_id
	`

	var id int
	err := r.db.QueryRow(ctx, query, category.Name, category.Slug, category.Description, category.Color).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrNameTaken
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertCategory, err)
	}

	return id, nil
}

// DeleteCategory removes a category. A category still referenced by
// items reports domain.ErrCategoryInUse.
func (r *CatalogRepository) DeleteCategory(ctx context.Context, id int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE category_id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeForeignKeyViolation {
			return domain.ErrCategoryInUse
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteCategory, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// ListItems returns one page of items matching the filter plus the
// total match count. All supplied filters combine with AND.
func (r *CatalogRepository) ListItems(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, int, error) {
	var where strings.Builder
	where.WriteString(" WHERE 1=1")

	args := []interface{}{}
	argNum := 1

	if filter.Query != "" {
		// Free text matches any of name, notes or obtained source
		fmt.Fprintf(&where, " AND (i.item_name ILIKE $%d OR i.notes ILIKE $%d OR i.obtained_from ILIKE $%d)", argNum, argNum, argNum)
		args = append(args, "%"+filter.Query+"%")
		argNum++
	}

	if filter.CategorySlug != "" {
		fmt.Fprintf(&where, " AND c.slug = $%d", argNum)
		args = append(args, filter.CategorySlug)
		argNum++
	}

	if filter.Rarity != "" {
		fmt.Fprintf(&where, " AND i.rarity = $%d", argNum)
		args = append(args, filter.Rarity)
		argNum++
	}

	if filter.ItemType != "" {
		fmt.Fprintf(&where, " AND i.item_type = $%d", argNum)
		args = append(args, filter.ItemType)
		argNum++
	}

	if filter.Trend != "" {
		fmt.Fprintf(&where, " AND i.trend = $%d", argNum)
		args = append(args, filter.Trend)
		argNum++
	}

	if filter.MinValue != nil {
		fmt.Fprintf(&where, " AND i.item_value >= $%d", argNum)
		args = append(args, *filter.MinValue)
		argNum++
	}

	if filter.MaxValue != nil {
		fmt.Fprintf(&where, " AND i.item_value <= $%d", argNum)
		args = append(args, *filter.MaxValue)
		argNum++
	}

	fromClause := ` FROM items i JOIN categories c ON i.category_id = c.category_id`

	countQuery := "SELECT COUNT(*)" + fromClause + where.String()
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountItems, err)
	}

	var query strings.Builder
	query.WriteString("SELECT" + itemColumns + fromClause + where.String())
	query.WriteString(orderClause(filter.Sort))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	fmt.Fprintf(&query, " LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, domain.PageSize, (page-1)*domain.PageSize)

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}

	return items, total, nil
}

// orderClause maps a sort key to its ORDER BY. Unknown keys fall back
// to the default ordering.
func orderClause(sort string) string {
	switch sort {
	case domain.SortValueAsc:
		return " ORDER BY i.item_value ASC, i.item_name ASC"
	case domain.SortValueDesc:
		return " ORDER BY i.item_value DESC, i.item_name ASC"
	case domain.SortName:
		return " ORDER BY i.item_name ASC"
	case domain.SortRarity:
		return " ORDER BY " + rarityRankSQL + ", i.item_name ASC"
	default:
		return " ORDER BY i.featured DESC, i.item_value DESC, i.item_name ASC"
	}
}

// PickerItems returns an unpaginated capped listing for the item picker
func (r *CatalogRepository) PickerItems(ctx context.Context, filter domain.PickerFilter) ([]domain.Item, error) {
	var query strings.Builder
	query.WriteString("SELECT" + itemColumns + `
		FROM items i JOIN categories c ON i.category_id = c.category_id
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.Query != "" {
		fmt.Fprintf(&query, " AND (i.item_name ILIKE $%d OR i.notes ILIKE $%d)", argNum, argNum)
		args = append(args, "%"+filter.Query+"%")
		argNum++
	}

	if filter.CategorySlug != "" {
		fmt.Fprintf(&query, " AND c.slug = $%d", argNum)
		args = append(args, filter.CategorySlug)
		argNum++
	}

	if filter.Rarity != "" {
		fmt.Fprintf(&query, " AND i.rarity = $%d", argNum)
		args = append(args, filter.Rarity)
		argNum++
	}

	// The picker defaults to alphabetical, not the catalog ordering
	sortKey := filter.Sort
	if sortKey == "" {
		sortKey = domain.SortName
	}
	query.WriteString(orderClause(sortKey))
	fmt.Fprintf(&query, " LIMIT $%d", argNum)
	args = append(args, domain.PickerLimit)

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}

	return items, nil
}

// GetItemBySlug finds an item by its slug
func (r *CatalogRepository) GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error) {
	return r.getItem(ctx, "i.slug = $1", slug)
}

// GetItemByID finds an item by its id
func (r *CatalogRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	return r.getItem(ctx, "i.item_id = $1", id)
}

func (r *CatalogRepository) getItem(ctx context.Context, where string, arg interface{}) (*domain.Item, error) {
	query := "SELECT" + itemColumns + `
		FROM items i JOIN categories c ON i.category_id = c.category_id
		WHERE ` + where

	row := r.db.QueryRow(ctx, query, arg)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItem, err)
	}

	return item, nil
}

// InsertItem stores a new item and returns its id.
// A name or slug collision reports domain.ErrNameTaken.
func (r *CatalogRepository) InsertItem(ctx context.Context, item *domain.Item) (int, error) {
	query := `
		INSERT INTO items (
			item_name, slug, category_id, item_type, rarity, item_value,
			demand, trend, is_limited, featured, obtained_from, image_url, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING item_id
	`

	var id int
	err := r.db.QueryRow(ctx, query,
		item.Name, item.Slug, item.CategoryID, item.ItemType, item.Rarity,
		item.Value, item.Demand, item.Trend, item.IsLimited, item.Featured,
		item.ObtainedFrom, item.ImageURL, item.Notes,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrNameTaken
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToInsertItem, err)
	}

	return id, nil
}

// UpdateItem rewrites every editable field of an item
func (r *CatalogRepository) UpdateItem(ctx context.Context, itemID int, item *domain.Item) error {
	query := `
		UPDATE items
		SET item_name = $1, slug = $2, category_id = $3, item_type = $4,
			rarity = $5, item_value = $6, demand = $7, trend = $8,
			is_limited = $9, featured = $10, obtained_from = $11,
			image_url = $12, notes = $13, updated_at = NOW()
		WHERE item_id = $14
	`

	result, err := r.db.Exec(ctx, query,
		item.Name, item.Slug, item.CategoryID, item.ItemType, item.Rarity,
		item.Value, item.Demand, item.Trend, item.IsLimited, item.Featured,
		item.ObtainedFrom, item.ImageURL, item.Notes, itemID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameTaken
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateItem, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// DeleteItem removes an item; inventory rows and value requests cascade
func (r *CatalogRepository) DeleteItem(ctx context.Context, itemID int) error {
	result, err := r.db.Exec(ctx, `DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteItem, err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

// CountItems returns the total number of catalog items
func (r *CatalogRepository) CountItems(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCountItems, err)
	}
	return count, nil
}

// FeaturedItems returns the top featured items by value
func (r *CatalogRepository) FeaturedItems(ctx context.Context, limit int) ([]domain.Item, error) {
	query := "SELECT" + itemColumns + `
		FROM items i JOIN categories c ON i.category_id = c.category_id
		WHERE i.featured = TRUE
		ORDER BY i.item_value DESC, i.item_name ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListItems, err)
	}

	return items, nil
}

// scanItem scans a single item row with its joined category
func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var category domain.Category

	err := row.Scan(
		&item.ID, &item.Name, &item.Slug, &item.CategoryID, &item.ItemType,
		&item.Rarity, &item.Value, &item.Demand, &item.Trend, &item.IsLimited,
		&item.Featured, &item.ObtainedFrom, &item.ImageURL, &item.Notes,
		&item.CreatedAt, &item.UpdatedAt,
		&category.ID, &category.Name, &category.Slug, &category.Description, &category.Color,
	)
	if err != nil {
		return nil, err
	}

	item.Category = &category
	return &item, nil
}

// scanItems scans item rows with their joined categories
func scanItems(rows pgx.Rows) ([]domain.Item, error) {
	var items []domain.Item

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// isUniqueViolation reports whether err is a unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}
