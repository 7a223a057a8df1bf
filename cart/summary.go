package cart

import (
	"strings"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/shopspring/decimal"
)

const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"
)

// Rules holds the pricing rules applied on top of the cart lines.
type Rules struct {
	FreeShippingThreshold decimal.Decimal
	Standard              models.ShippingMethod
	Express               models.ShippingMethod
	Coupons               map[string]models.Coupon
}

// DefaultRules returns the storefront's standard pricing rules.
func DefaultRules() Rules {
	return NewRules(decimal.NewFromInt(75), decimal.RequireFromString("9.99"), decimal.RequireFromString("9.99"))
}

func NewRules(freeThreshold, standardPrice, expressPrice decimal.Decimal) Rules {
	return Rules{
		FreeShippingThreshold: freeThreshold,
		Standard: models.ShippingMethod{
			ID:          ShippingStandard,
			Name:        "Standard Delivery",
			Description: "3-5 business days",
			Price:       standardPrice,
		},
		Express: models.ShippingMethod{
			ID:          ShippingExpress,
			Name:        "Express Delivery",
			Description: "1-2 business days",
			Price:       expressPrice,
		},
		Coupons: map[string]models.Coupon{
			"BANGIN10":  {Code: "BANGIN10", Percent: decimal.NewFromInt(10)},
			"WELCOME15": {Code: "WELCOME15", Percent: decimal.NewFromInt(15)},
			"SAVE20":    {Code: "SAVE20", Amount: decimal.NewFromInt(20)},
		},
	}
}

// LookupCoupon finds a coupon by code, ignoring case and surrounding spaces.
func (r Rules) LookupCoupon(code string) (models.Coupon, bool) {
	c, ok := r.Coupons[strings.ToUpper(strings.TrimSpace(code))]
	return c, ok
}

// ShippingMethod resolves a method id; an empty id means standard.
func (r Rules) ShippingMethod(id string) (models.ShippingMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "", ShippingStandard:
		return r.Standard, true
	case ShippingExpress:
		return r.Express, true
	}
	return models.ShippingMethod{}, false
}

// Summarize prices a set of cart lines. Shipping is decided on the subtotal
// before any coupon; an empty cart ships for nothing.
func Summarize(items []models.CartItem, coupon *models.Coupon, method models.ShippingMethod, rules Rules) models.OrderSummary {
	sum := models.OrderSummary{
		Subtotal:       decimal.Zero,
		Savings:        decimal.Zero,
		Discount:       decimal.Zero,
		ShippingMethod: method,
		ShippingCost:   decimal.Zero,
		AmountToFree:   decimal.Zero,
	}
	for _, item := range items {
		sum.ItemCount += item.Quantity
		sum.Subtotal = sum.Subtotal.Add(item.LineTotal())
		sum.Savings = sum.Savings.Add(item.LineSavings())
	}

	if coupon != nil {
		c := *coupon
		sum.Coupon = &c
		sum.Discount = couponDiscount(c, sum.Subtotal)
	}

	switch {
	case len(items) == 0:
		sum.FreeShipping = true
	case method.ID == ShippingStandard && sum.Subtotal.GreaterThanOrEqual(rules.FreeShippingThreshold):
		sum.FreeShipping = true
	default:
		sum.ShippingCost = method.Price
		if method.ID == ShippingStandard {
			sum.AmountToFree = rules.FreeShippingThreshold.Sub(sum.Subtotal)
		}
	}

	sum.Total = sum.Subtotal.Sub(sum.Discount).Add(sum.ShippingCost)
	return sum
}

func couponDiscount(c models.Coupon, subtotal decimal.Decimal) decimal.Decimal {
	if c.Amount.IsPositive() {
		return decimal.Min(c.Amount, subtotal)
	}
	return subtotal.Mul(c.Percent).Div(decimal.NewFromInt(100)).Round(2)
}
