package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/CodeStar86/Bangin-Gear/models"
)

// Special filter tokens.
const (
	SpecialNew         = "new"
	SpecialNewArrivals = "new-arrivals"
	SpecialSale        = "sale"
)

// Apply returns the products matching every active dimension of c, sorted by
// c.Sort. Equal sort keys keep catalog order. An inverted price range matches
// nothing. products is not modified.
func Apply(products []models.Product, c Criteria) []models.Product {
	search := strings.ToLower(strings.TrimSpace(c.Search))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if matches(p, c, search) {
			out = append(out, p)
		}
	}

	sortProducts(out, c.Sort)
	return out
}

func matches(p models.Product, c Criteria, search string) bool {
	if c.Category != "" && !strings.EqualFold(p.Category, c.Category) {
		return false
	}
	if search != "" && !matchesSearch(p, search) {
		return false
	}
	if !matchesSpecial(p, c.Special) {
		return false
	}
	if p.Price.LessThan(c.PriceMin) || p.Price.GreaterThan(c.PriceMax) {
		return false
	}
	if len(c.Brands) > 0 && !slices.Contains(c.Brands, p.Brand) {
		return false
	}
	if len(c.Colors) > 0 && !intersects(p.Colors, c.Colors) {
		return false
	}
	if len(c.Sizes) > 0 && !intersects(p.Sizes, c.Sizes) {
		return false
	}
	if c.InStockOnly && !p.InStock {
		return false
	}
	return !c.OnSaleOnly || p.IsOnSale
}

func matchesSearch(p models.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Brand), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}

// matchesSpecial applies the named shortcut filter. Unknown tokens filter nothing.
func matchesSpecial(p models.Product, token string) bool {
	switch strings.ToLower(token) {
	case SpecialNew, SpecialNewArrivals:
		return p.IsNew
	case SpecialSale:
		return p.IsOnSale
	}
	return true
}

func intersects(available, selected []string) bool {
	for _, s := range selected {
		if slices.Contains(available, s) {
			return true
		}
	}
	return false
}

func sortProducts(products []models.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b models.Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b models.Product) int { return b.Price.Cmp(a.Price) })
	case SortRating:
		slices.SortStableFunc(products, func(a, b models.Product) int { return cmp.Compare(b.Rating, a.Rating) })
	case SortNewest:
		slices.SortStableFunc(products, func(a, b models.Product) int { return newRank(a) - newRank(b) })
	}
}

func newRank(p models.Product) int {
	if p.IsNew {
		return 0
	}
	return 1
}
