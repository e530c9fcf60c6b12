package domain

// PageSize is the fixed page length for catalog listings
const PageSize = 20

// PickerLimit caps the unpaginated picker lookup
const PickerLimit = 200

// Sort options for the catalog listing
const (
	SortDefault   = ""          // featured desc, value desc, name asc
	SortValueAsc  = "value_asc" // value asc, name asc
	SortName      = "name"      // name asc
	SortValueDesc = "value_desc"
	SortRarity    = "rarity" // picker only: rarity rank asc
)

// ItemFilter carries the optional catalog filters. All supplied
// filters combine with logical AND. Nil value bounds mean unbounded.
type ItemFilter struct {
	Query        string
	CategorySlug string
	Rarity       string
	ItemType     string
	Trend        string
	MinValue     *int
	MaxValue     *int
	Sort         string
	Page         int
}

// PickerFilter carries the item-picker lookup parameters
type PickerFilter struct {
	Query        string
	CategorySlug string
	Rarity       string
	Sort         string
}
