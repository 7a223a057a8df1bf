package models

import "github.com/shopspring/decimal"

// FilterMetadata represents all filter data for the storefront
type FilterMetadata struct {
	Availability *AvailabilityData `json:"availability"`
	Categories   []FacetOption     `json:"categories"`
	Brands       []FacetOption     `json:"brands"`
	Colors       []FacetOption     `json:"colors"`
	Sizes        []FacetOption     `json:"sizes"`
	PriceRange   *PriceRangeData   `json:"priceRange"`
	SortOptions  []SortOption      `json:"sortOptions"`
}

// AvailabilityData represents product availability counts
type AvailabilityData struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
	OnSale     int `json:"onSale"`
}

// FacetOption is a selectable filter value and how many products carry it
type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PriceRangeData represents the minimum and maximum price in the store
type PriceRangeData struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ═══════════════════════════════════════════════════════════
// Filter Update Models
// ═══════════════════════════════════════════════════════════

// FilterAction is one filter-panel interaction.
type FilterAction struct {
	Op      string           `json:"op" binding:"required"`
	Value   string           `json:"value,omitempty"`
	Kind    string           `json:"kind,omitempty"`
	Min     *decimal.Decimal `json:"min,omitempty"`
	Max     *decimal.Decimal `json:"max,omitempty"`
	Enabled bool             `json:"enabled,omitempty"`
}

type FilterUpdateRequest struct {
	Query    string         `json:"query"`
	Category string         `json:"category"`
	Actions  []FilterAction `json:"actions" binding:"dive"`
}

type FilterUpdateResponse struct {
	Query         string `json:"query"`
	ActiveFilters int    `json:"activeFilters"`
	ResultCount   int    `json:"resultCount"`
}

// ProductListing is the response body of a filtered product listing.
type ProductListing struct {
	Products      []Product `json:"products"`
	Query         string    `json:"query"`
	Category      string    `json:"category,omitempty"`
	ActiveFilters int       `json:"activeFilters"`
	ResultCount   int       `json:"resultCount"`
}
