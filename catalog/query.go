package catalog

import (
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Query keys.
const (
	KeyBrands   = "brands"
	KeyColors   = "colors"
	KeySizes    = "sizes"
	KeyPriceMin = "priceMin"
	KeyPriceMax = "priceMax"
	KeyInStock  = "inStock"
	KeyOnSale   = "onSale"
	KeySort     = "sort"
	KeySearch   = "search"
	KeyFilter   = "filter"
)

// FromQuery parses every recognized key independently. Missing or malformed
// values fall back to defaults and unrecognized keys are ignored. An
// inverted price pair is swapped.
func FromQuery(q url.Values, cfg Config) Criteria {
	c := NewCriteria(cfg)

	c.Brands = parseList(q.Get(KeyBrands))
	c.Colors = parseList(q.Get(KeyColors))
	c.Sizes = parseList(q.Get(KeySizes))

	lo, hasMin := parseDecimal(q.Get(KeyPriceMin))
	if hasMin {
		c.PriceMin = lo
	}
	hi, hasMax := parseDecimal(q.Get(KeyPriceMax))
	if hasMax {
		c.PriceMax = hi
	}
	if hasMin && hasMax {
		c.PriceMin, c.PriceMax = normalizeRange(c.PriceMin, c.PriceMax)
	}

	c.InStockOnly = q.Get(KeyInStock) == "true"
	c.OnSaleOnly = q.Get(KeyOnSale) == "true"
	c.Sort = ParseSortKey(q.Get(KeySort))
	c.Search = q.Get(KeySearch)
	c.Special = strings.TrimSpace(q.Get(KeyFilter))

	return c
}

// ToQuery serializes c into a fresh query, omitting every key whose value
// is the default.
func ToQuery(c Criteria, cfg Config) url.Values {
	q := url.Values{}
	WriteQuery(q, c, cfg)
	return q
}

// WriteQuery sets or deletes the recognized keys of q to express c. Other
// keys in q are left untouched.
func WriteQuery(q url.Values, c Criteria, cfg Config) {
	setOrDelete(q, KeyBrands, strings.Join(c.Brands, ","))
	setOrDelete(q, KeyColors, strings.Join(c.Colors, ","))
	setOrDelete(q, KeySizes, strings.Join(c.Sizes, ","))

	if c.PriceMin.Equal(cfg.PriceFloor) {
		q.Del(KeyPriceMin)
	} else {
		q.Set(KeyPriceMin, c.PriceMin.String())
	}
	if c.PriceMax.Equal(cfg.PriceCeiling) {
		q.Del(KeyPriceMax)
	} else {
		q.Set(KeyPriceMax, c.PriceMax.String())
	}

	setOrDelete(q, KeyInStock, flag(c.InStockOnly))
	setOrDelete(q, KeyOnSale, flag(c.OnSaleOnly))

	if c.Sort == SortFeatured || c.Sort == "" {
		q.Del(KeySort)
	} else {
		q.Set(KeySort, string(c.Sort))
	}

	setOrDelete(q, KeySearch, c.Search)
	setOrDelete(q, KeyFilter, c.Special)
}

func setOrDelete(q url.Values, key, value string) {
	if value == "" {
		q.Del(key)
		return
	}
	q.Set(key, value)
}

func flag(on bool) string {
	if on {
		return "true"
	}
	return ""
}

// parseList splits a comma-joined list, dropping blanks and duplicates and
// keeping first-seen order.
func parseList(raw string) []string {
	out := []string{}
	if raw == "" {
		return out
	}
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		v := strings.TrimSpace(part)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
