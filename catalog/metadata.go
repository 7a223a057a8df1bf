package catalog

import (
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/shopspring/decimal"
)

// BuildMetadata derives the filter panel options from a catalog. Options
// keep the order in which they first appear.
func BuildMetadata(products []models.Product) models.FilterMetadata {
	meta := models.FilterMetadata{
		Availability: &models.AvailabilityData{},
		Categories:   []models.FacetOption{},
		Brands:       []models.FacetOption{},
		Colors:       []models.FacetOption{},
		Sizes:        []models.FacetOption{},
		PriceRange:   &models.PriceRangeData{Min: decimal.Zero, Max: decimal.Zero},
		SortOptions:  make([]models.SortOption, 0, len(sortLabels)),
	}

	categories := newFacetCounter()
	brands := newFacetCounter()
	colors := newFacetCounter()
	sizes := newFacetCounter()

	for i, p := range products {
		categories.add(p.Category)
		brands.add(p.Brand)
		for _, c := range p.Colors {
			colors.add(c)
		}
		for _, s := range p.Sizes {
			sizes.add(s)
		}

		if p.InStock {
			meta.Availability.InStock++
		} else {
			meta.Availability.OutOfStock++
		}
		if p.IsOnSale {
			meta.Availability.OnSale++
		}

		if i == 0 || p.Price.LessThan(meta.PriceRange.Min) {
			meta.PriceRange.Min = p.Price
		}
		if i == 0 || p.Price.GreaterThan(meta.PriceRange.Max) {
			meta.PriceRange.Max = p.Price
		}
	}

	meta.Categories = categories.options()
	meta.Brands = brands.options()
	meta.Colors = colors.options()
	meta.Sizes = sizes.options()
	for _, s := range sortLabels {
		meta.SortOptions = append(meta.SortOptions, models.SortOption{Value: string(s.key), Label: s.label})
	}
	return meta
}

type facetCounter struct {
	order  []string
	counts map[string]int
}

func newFacetCounter() *facetCounter {
	return &facetCounter{counts: make(map[string]int)}
}

func (f *facetCounter) add(v string) {
	if v == "" {
		return
	}
	if _, ok := f.counts[v]; !ok {
		f.order = append(f.order, v)
	}
	f.counts[v]++
}

func (f *facetCounter) options() []models.FacetOption {
	out := make([]models.FacetOption, 0, len(f.order))
	for _, v := range f.order {
		out = append(out, models.FacetOption{Value: v, Count: f.counts[v]})
	}
	return out
}
