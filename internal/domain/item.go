package domain

import "time"

// ItemType classifies what kind of collectible an item is
type ItemType string

const (
	ItemTypeItem     ItemType = "item"
	ItemTypeTitle    ItemType = "title"
	ItemTypeGamepass ItemType = "gamepass"
	ItemTypeEvent    ItemType = "event"
)

// ValidItemTypes maps every accepted item type value
var ValidItemTypes = map[ItemType]bool{
	ItemTypeItem:     true,
	ItemTypeTitle:    true,
	ItemTypeGamepass: true,
	ItemTypeEvent:    true,
}

// Rarity is the scarcity tier of an item
type Rarity string

const (
	RarityUnobtainable Rarity = "unobtainable"
	RaritySpecialGrade Rarity = "special_grade"
	RarityRare         Rarity = "rare"
	RarityUncommon     Rarity = "uncommon"
	RarityCommon       Rarity = "common"
)

// ValidRarities maps every accepted rarity value
var ValidRarities = map[Rarity]bool{
	RarityUnobtainable: true,
	RaritySpecialGrade: true,
	RarityRare:         true,
	RarityUncommon:     true,
	RarityCommon:       true,
}

// rarityRank orders rarities for the picker endpoint: lower = rarer.
// Unmapped rarities sort last.
var rarityRank = map[Rarity]int{
	RarityUnobtainable: 0,
	RaritySpecialGrade: 1,
	RarityRare:         2,
	RarityUncommon:     3,
	RarityCommon:       4,
}

// Rank returns the picker sort ordinal for a rarity (lower = rarer)
func (r Rarity) Rank() int {
	if rank, ok := rarityRank[r]; ok {
		return rank
	}
	return len(rarityRank)
}

// Trend describes market-perceived price movement
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendStable  Trend = "stable"
	TrendFalling Trend = "falling"
)

// ValidTrends maps every accepted trend value
var ValidTrends = map[Trend]bool{
	TrendRising:  true,
	TrendStable:  true,
	TrendFalling: true,
}

// Item is a collectible catalog entry with its trade-value metadata
type Item struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	CategoryID   int       `json:"category_id"`
	Category     *Category `json:"category,omitempty"`
	ItemType     ItemType  `json:"item_type"`
	Rarity       Rarity    `json:"rarity"`
	Value        int       `json:"value"` // trade value points, never negative
	Demand       int       `json:"demand"`
	Trend        Trend     `json:"trend"`
	IsLimited    bool      `json:"is_limited"`
	Featured     bool      `json:"featured"`
	ObtainedFrom string    `json:"obtained_from"`
	ImageURL     string    `json:"image_url"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StarCount converts the 1-10 demand scale to a 1-5 star rating,
// rounding up at odd demand values.
func (i Item) StarCount() int {
	stars := (i.Demand + 1) / 2
	if stars < 1 {
		return 1
	}
	if stars > 5 {
		return 5
	}
	return stars
}
