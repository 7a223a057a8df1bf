package catalog

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// SortKey orders a product listing.
type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price-low"
	SortPriceDesc SortKey = "price-high"
	SortRating    SortKey = "rating"
)

var sortLabels = []struct {
	key   SortKey
	label string
}{
	{SortFeatured, "Featured"},
	{SortNewest, "Newest"},
	{SortPriceAsc, "Price: Low to High"},
	{SortPriceDesc, "Price: High to Low"},
	{SortRating, "Highest Rated"},
}

// ParseSortKey maps a token to a sort key; unknown tokens mean featured.
func ParseSortKey(token string) SortKey {
	k := SortKey(strings.TrimSpace(token))
	for _, s := range sortLabels {
		if s.key == k {
			return k
		}
	}
	return SortFeatured
}

// Config holds the catalog defaults.
type Config struct {
	PriceFloor   decimal.Decimal
	PriceCeiling decimal.Decimal
}

func DefaultConfig() Config {
	return Config{PriceFloor: decimal.Zero, PriceCeiling: decimal.NewFromInt(500)}
}

// Criteria is the full set of filter, sort and search parameters of a
// listing. Brands, Colors and Sizes are ordered sets.
type Criteria struct {
	Brands      []string
	Colors      []string
	Sizes       []string
	PriceMin    decimal.Decimal
	PriceMax    decimal.Decimal
	InStockOnly bool
	OnSaleOnly  bool
	Sort        SortKey
	Search      string
	Special     string

	// Category comes from the listing path, never from the query.
	Category string
}

// NewCriteria returns criteria with every field at its default.
func NewCriteria(cfg Config) Criteria {
	return Criteria{
		Brands:   []string{},
		Colors:   []string{},
		Sizes:    []string{},
		PriceMin: cfg.PriceFloor,
		PriceMax: cfg.PriceCeiling,
		Sort:     SortFeatured,
	}
}

func (c Criteria) Clone() Criteria {
	out := c
	out.Brands = slices.Clone(c.Brands)
	out.Colors = slices.Clone(c.Colors)
	out.Sizes = slices.Clone(c.Sizes)
	return out
}

// PriceIsDefault reports whether both bounds sit at the configured range.
func (c Criteria) PriceIsDefault(cfg Config) bool {
	return c.PriceMin.Equal(cfg.PriceFloor) && c.PriceMax.Equal(cfg.PriceCeiling)
}

// ActiveCount is the number of active filter chips: one per selected brand,
// color and size, plus one each for a narrowed price range, stock and sale.
func (c Criteria) ActiveCount(cfg Config) int {
	n := len(c.Brands) + len(c.Colors) + len(c.Sizes)
	if !c.PriceIsDefault(cfg) {
		n++
	}
	if c.InStockOnly {
		n++
	}
	if c.OnSaleOnly {
		n++
	}
	return n
}

// toggle flips membership of v, keeping the order of the remaining values.
func toggle(set []string, v string) ([]string, bool) {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1), false
	}
	return append(slices.Clone(set), v), true
}

func without(set []string, v string) []string {
	return slices.DeleteFunc(slices.Clone(set), func(s string) bool { return s == v })
}

// normalizeRange swaps inverted bounds.
func normalizeRange(lo, hi decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if lo.GreaterThan(hi) {
		return hi, lo
	}
	return lo, hi
}
