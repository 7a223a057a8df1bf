package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingMethod is a delivery option offered at checkout
type ShippingMethod struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

// Coupon is a discount code. Exactly one of Percent or Amount is set.
type Coupon struct {
	Code    string          `json:"code"`
	Percent decimal.Decimal `json:"percent"`
	Amount  decimal.Decimal `json:"amount"`
}

// OrderSummary is the price breakdown of a cart
type OrderSummary struct {
	ItemCount      int             `json:"item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Savings        decimal.Decimal `json:"savings"`
	Coupon         *Coupon         `json:"coupon,omitempty"`
	Discount       decimal.Decimal `json:"discount"`
	ShippingMethod ShippingMethod  `json:"shipping_method"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	FreeShipping   bool            `json:"free_shipping"`
	AmountToFree   decimal.Decimal `json:"amount_to_free_shipping"`
	Total          decimal.Decimal `json:"total"`
}

// ═══════════════════════════════════════════════════════════
// Checkout
// ═══════════════════════════════════════════════════════════

type ContactDetails struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone,omitempty"`
}

type ShippingAddress struct {
	Address1 string `json:"address1" binding:"required"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city" binding:"required"`
	Postcode string `json:"postcode" binding:"required"`
	Country  string `json:"country,omitempty"`
}

type PaymentDetails struct {
	Method     string `json:"method" binding:"required,oneof=card paypal"`
	CardNumber string `json:"card_number,omitempty"`
	CardName   string `json:"card_name,omitempty"`
	Expiry     string `json:"expiry,omitempty"`
	CVC        string `json:"cvc,omitempty"`
}

// CheckoutRequest is the body of a checkout submission
type CheckoutRequest struct {
	Contact        ContactDetails  `json:"contact" binding:"required"`
	Address        ShippingAddress `json:"address" binding:"required"`
	ShippingMethod string          `json:"shipping_method" binding:"required"`
	Payment        PaymentDetails  `json:"payment" binding:"required"`
	CouponCode     string          `json:"coupon_code,omitempty"`
}

// OrderConfirmation is returned after a successful checkout
type OrderConfirmation struct {
	OrderNumber   string          `json:"order_number"`
	Contact       ContactDetails  `json:"contact"`
	Address       ShippingAddress `json:"address"`
	Items         []CartItem      `json:"items"`
	Summary       OrderSummary    `json:"summary"`
	PaymentMethod string          `json:"payment_method"`
	PaymentLast4  string          `json:"payment_last4,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}
