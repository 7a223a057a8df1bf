package catalog

import (
	"net/url"
	"strings"
	"sync"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/shopspring/decimal"
)

// QueryState is the shareable query of a listing, such as a browser URL.
// Replace overwrites the current entry instead of adding a history entry.
type QueryState interface {
	Query() url.Values
	Replace(q url.Values)
}

// URLQuery is an in-memory QueryState.
type URLQuery struct {
	mu           sync.Mutex
	values       url.Values
	replacements int
}

// NewURLQuery parses raw, with or without a leading "?". Pairs that fail to
// decode are dropped.
func NewURLQuery(raw string) *URLQuery {
	values, _ := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if values == nil {
		values = url.Values{}
	}
	return &URLQuery{values: values}
}

func (u *URLQuery) Query() url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	return cloneValues(u.values)
}

func (u *URLQuery) Replace(q url.Values) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.values = cloneValues(q)
	u.replacements++
}

// Encode returns the query in canonical (key-sorted) form.
func (u *URLQuery) Encode() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.values.Encode()
}

// Replacements counts calls to Replace.
func (u *URLQuery) Replacements() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.replacements
}

func cloneValues(q url.Values) url.Values {
	out := make(url.Values, len(q))
	for k, v := range q {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ═══════════════════════════════════════════════════════════
// Synchronizer
// ═══════════════════════════════════════════════════════════

// FilterKind names a removable filter chip.
type FilterKind string

const (
	FilterBrand      FilterKind = "brand"
	FilterColor      FilterKind = "color"
	FilterSize       FilterKind = "size"
	FilterPriceRange FilterKind = "priceRange"
	FilterInStock    FilterKind = "inStock"
	FilterOnSale     FilterKind = "onSale"
	FilterSearch     FilterKind = "search"
	FilterSpecial    FilterKind = "filter"
)

// Synchronizer keeps the criteria of one listing and mirrors every change
// into its QueryState.
type Synchronizer struct {
	mu       sync.Mutex
	cfg      Config
	state    QueryState
	category string
	criteria Criteria
}

// NewSynchronizer reads the initial criteria from state. category is the
// listing's path constraint, empty for all products.
func NewSynchronizer(state QueryState, category string, cfg Config) *Synchronizer {
	s := &Synchronizer{cfg: cfg, state: state, category: category}
	s.InitializeFromQuery()
	return s
}

// InitializeFromQuery discards local criteria and re-reads the query.
func (s *Synchronizer) InitializeFromQuery() {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := FromQuery(s.state.Query(), s.cfg)
	c.Category = s.category
	s.criteria = c
}

func (s *Synchronizer) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.Clone()
}

// ToggleBrand flips name in the brand selection and reports whether it is
// now selected. Blank names are ignored.
func (s *Synchronizer) ToggleBrand(name string) bool {
	return s.toggle(name, func(c *Criteria) *[]string { return &c.Brands })
}

func (s *Synchronizer) ToggleColor(name string) bool {
	return s.toggle(name, func(c *Criteria) *[]string { return &c.Colors })
}

func (s *Synchronizer) ToggleSize(token string) bool {
	return s.toggle(token, func(c *Criteria) *[]string { return &c.Sizes })
}

func (s *Synchronizer) toggle(value string, field func(*Criteria) *[]string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	var selected bool
	s.update(func(c *Criteria) {
		set := field(c)
		*set, selected = toggle(*set, value)
	})
	return selected
}

// SetPriceRange replaces both bounds; an inverted range is swapped.
func (s *Synchronizer) SetPriceRange(lo, hi decimal.Decimal) {
	s.update(func(c *Criteria) {
		c.PriceMin, c.PriceMax = normalizeRange(lo, hi)
	})
}

func (s *Synchronizer) SetInStockOnly(on bool) {
	s.update(func(c *Criteria) { c.InStockOnly = on })
}

func (s *Synchronizer) SetOnSaleOnly(on bool) {
	s.update(func(c *Criteria) { c.OnSaleOnly = on })
}

// SetSort applies a sort token and returns the key in effect.
func (s *Synchronizer) SetSort(token string) SortKey {
	key := ParseSortKey(token)
	s.update(func(c *Criteria) { c.Sort = key })
	return key
}

func (s *Synchronizer) SetSearch(term string) {
	s.update(func(c *Criteria) { c.Search = term })
}

func (s *Synchronizer) SetSpecialFilter(token string) {
	s.update(func(c *Criteria) { c.Special = strings.TrimSpace(token) })
}

// RemoveFilter drops one active filter chip. value names the brand, color or
// size for set kinds and is ignored otherwise. It reports whether anything
// was active.
func (s *Synchronizer) RemoveFilter(kind FilterKind, value string) bool {
	var removed bool
	s.update(func(c *Criteria) {
		switch kind {
		case FilterBrand:
			before := len(c.Brands)
			c.Brands = without(c.Brands, value)
			removed = len(c.Brands) != before
		case FilterColor:
			before := len(c.Colors)
			c.Colors = without(c.Colors, value)
			removed = len(c.Colors) != before
		case FilterSize:
			before := len(c.Sizes)
			c.Sizes = without(c.Sizes, value)
			removed = len(c.Sizes) != before
		case FilterPriceRange:
			removed = !c.PriceIsDefault(s.cfg)
			c.PriceMin, c.PriceMax = s.cfg.PriceFloor, s.cfg.PriceCeiling
		case FilterInStock:
			removed, c.InStockOnly = c.InStockOnly, false
		case FilterOnSale:
			removed, c.OnSaleOnly = c.OnSaleOnly, false
		case FilterSearch:
			removed, c.Search = c.Search != "", ""
		case FilterSpecial:
			removed, c.Special = c.Special != "", ""
		}
	})
	return removed
}

// ClearAll resets every criterion to its default and removes their keys
// from the query. The category path constraint is kept.
func (s *Synchronizer) ClearAll() {
	s.update(func(c *Criteria) {
		*c = NewCriteria(s.cfg)
		c.Category = s.category
	})
}

// SerializeToQuery returns the criteria as a fresh query, defaults omitted.
func (s *Synchronizer) SerializeToQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ToQuery(s.criteria, s.cfg)
}

// Apply filters and sorts products with the current criteria.
func (s *Synchronizer) Apply(products []models.Product) []models.Product {
	return Apply(products, s.Criteria())
}

func (s *Synchronizer) ActiveFilterCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria.ActiveCount(s.cfg)
}

func (s *Synchronizer) update(fn func(*Criteria)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.criteria.Clone()
	fn(&next)
	s.criteria = next

	q := s.state.Query()
	WriteQuery(q, next, s.cfg)
	s.state.Replace(q)
}
