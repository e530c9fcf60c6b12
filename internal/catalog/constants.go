package catalog

// FeaturedSummaryLimit caps the featured items in the landing summary
const FeaturedSummaryLimit = 6
