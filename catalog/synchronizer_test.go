package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynchronizer_InitializesFromQuery(t *testing.T) {
	state := NewURLQuery("?brands=URBAN&sort=rating")
	s := NewSynchronizer(state, "", DefaultConfig())

	c := s.Criteria()
	assert.Equal(t, []string{"URBAN"}, c.Brands)
	assert.Equal(t, SortRating, c.Sort)
	assert.Equal(t, 0, state.Replacements(), "reading must not rewrite the query")
}

func TestSynchronizer_ToggleMirrorsIntoQuery(t *testing.T) {
	state := NewURLQuery("")
	s := NewSynchronizer(state, "", DefaultConfig())

	assert.True(t, s.ToggleBrand("BANGIN"))
	assert.True(t, s.ToggleBrand("URBAN"))
	assert.Equal(t, "brands=BANGIN%2CURBAN", state.Encode())

	assert.False(t, s.ToggleBrand("BANGIN"))
	assert.Equal(t, "brands=URBAN", state.Encode())

	assert.False(t, s.ToggleBrand("URBAN"))
	assert.Equal(t, "", state.Encode(), "an emptied set removes its key")
	assert.Equal(t, 4, state.Replacements())
}

func TestSynchronizer_ToggleIgnoresBlank(t *testing.T) {
	state := NewURLQuery("")
	s := NewSynchronizer(state, "", DefaultConfig())

	assert.False(t, s.ToggleColor("  "))
	assert.Empty(t, s.Criteria().Colors)
	assert.Equal(t, 0, state.Replacements())
}

func TestSynchronizer_ColorAndSize(t *testing.T) {
	state := NewURLQuery("")
	s := NewSynchronizer(state, "", DefaultConfig())

	s.ToggleColor("Neon Green")
	s.ToggleSize("XL")
	s.ToggleSize("7")

	assert.Equal(t, "colors=Neon+Green&sizes=XL%2C7", state.Encode())
	assert.Equal(t, 3, s.ActiveFilterCount())
}

func TestSynchronizer_PriceRange(t *testing.T) {
	state := NewURLQuery("")
	s := NewSynchronizer(state, "", DefaultConfig())

	s.SetPriceRange(decimal.NewFromInt(150), decimal.NewFromInt(50))
	c := s.Criteria()
	assert.Equal(t, "50", c.PriceMin.String())
	assert.Equal(t, "150", c.PriceMax.String())
	assert.Equal(t, "priceMax=150&priceMin=50", state.Encode())

	s.SetPriceRange(decimal.Zero, decimal.NewFromInt(500))
	assert.Equal(t, "", state.Encode())
}

func TestSynchronizer_FlagsSortSearch(t *testing.T) {
	state := NewURLQuery("")
	s := NewSynchronizer(state, "", DefaultConfig())

	s.SetInStockOnly(true)
	s.SetOnSaleOnly(true)
	assert.Equal(t, SortPriceDesc, s.SetSort("price-high"))
	s.SetSearch("hoodie")
	s.SetSpecialFilter("sale")
	assert.Equal(t, "filter=sale&inStock=true&onSale=true&search=hoodie&sort=price-high", state.Encode())

	assert.Equal(t, SortFeatured, s.SetSort("cheapest"))
	s.SetInStockOnly(false)
	assert.Equal(t, "filter=sale&onSale=true&search=hoodie", state.Encode())
}

func TestSynchronizer_RemoveFilter(t *testing.T) {
	state := NewURLQuery("brands=BANGIN,URBAN&priceMin=10&inStock=true&onSale=true&search=x&filter=new&colors=Blue&sizes=M")
	s := NewSynchronizer(state, "", DefaultConfig())

	assert.True(t, s.RemoveFilter(FilterBrand, "BANGIN"))
	assert.False(t, s.RemoveFilter(FilterBrand, "FUTURE"))
	assert.True(t, s.RemoveFilter(FilterColor, "Blue"))
	assert.True(t, s.RemoveFilter(FilterSize, "M"))
	assert.True(t, s.RemoveFilter(FilterPriceRange, ""))
	assert.False(t, s.RemoveFilter(FilterPriceRange, ""))
	assert.True(t, s.RemoveFilter(FilterInStock, ""))
	assert.True(t, s.RemoveFilter(FilterOnSale, ""))
	assert.True(t, s.RemoveFilter(FilterSearch, ""))
	assert.True(t, s.RemoveFilter(FilterSpecial, ""))

	assert.Equal(t, "brands=URBAN", state.Encode())
}

func TestSynchronizer_ClearAll(t *testing.T) {
	state := NewURLQuery("brands=BANGIN&colors=Black&sizes=M&priceMin=20&priceMax=300&inStock=true&onSale=true&sort=rating&search=tee&filter=new&ref=newsletter")
	s := NewSynchronizer(state, "hoodies", DefaultConfig())

	s.ClearAll()

	c := s.Criteria()
	assert.Equal(t, "ref=newsletter", state.Encode())
	assert.Equal(t, "hoodies", c.Category)
	assert.Equal(t, 0, s.ActiveFilterCount())
	assert.Empty(t, s.SerializeToQuery())
}

func TestSynchronizer_SerializeMatchesState(t *testing.T) {
	state := NewURLQuery("page=3")
	s := NewSynchronizer(state, "", DefaultConfig())
	s.ToggleBrand("MINIMAL")
	s.SetSort("newest")

	q := s.SerializeToQuery()
	assert.Equal(t, "brands=MINIMAL&sort=newest", q.Encode())
	assert.Equal(t, "brands=MINIMAL&page=3&sort=newest", state.Encode())
}

func TestSynchronizer_ApplyUsesCategory(t *testing.T) {
	products := seed(t)
	s := NewSynchronizer(NewURLQuery("onSale=true"), "hoodies", DefaultConfig())

	assert.Equal(t, []string{"1", "5", "8"}, ids(s.Apply(products)))

	s.SetSort("price-low")
	require.Equal(t, []string{"1", "8", "5"}, ids(s.Apply(products)))
}

func TestSynchronizer_ReinitializeDiscardsLocalState(t *testing.T) {
	state := NewURLQuery("brands=URBAN")
	s := NewSynchronizer(state, "", DefaultConfig())
	s.ToggleBrand("BANGIN")

	state.Replace(parse(t, "colors=Red"))
	s.InitializeFromQuery()

	c := s.Criteria()
	assert.Empty(t, c.Brands)
	assert.Equal(t, []string{"Red"}, c.Colors)
}
