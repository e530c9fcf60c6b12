package domain

// DefaultCategoryColor is the badge color used when none is supplied
const DefaultCategoryColor = "#6366F1"

// Category groups catalog items; deleting one is blocked while items
// still reference it.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Color       string `json:"color"`
}
