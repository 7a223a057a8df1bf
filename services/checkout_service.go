package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidCheckout = errors.New("invalid checkout details")
	ErrUnknownCoupon   = errors.New("invalid coupon code")
	ErrUnknownShipping = errors.New("unknown shipping method")
	ErrOrderNotFound   = errors.New("order not found")
)

const receiptBacklog = 256

// ValidationError lists the checkout fields that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid checkout details: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidCheckout }

// Cart is the part of a cart store checkout needs.
type Cart interface {
	Items() []models.CartItem
	ClearCart() int
}

// CheckoutService prices carts and places simulated orders. Confirmations
// are kept in memory, newest last, only so receipts can be downloaded.
type CheckoutService struct {
	rules  cart.Rules
	log    *zap.Logger
	now    func() time.Time
	limit  int
	mu     sync.Mutex
	orders map[string]models.OrderConfirmation
	queue  []string
}

func NewCheckoutService(rules cart.Rules, log *zap.Logger) *CheckoutService {
	return &CheckoutService{
		rules:  rules,
		log:    log,
		now:    time.Now,
		limit:  receiptBacklog,
		orders: make(map[string]models.OrderConfirmation),
	}
}

// Quote prices items with an optional coupon code and shipping method id.
func (s *CheckoutService) Quote(items []models.CartItem, couponCode, shippingID string) (models.OrderSummary, error) {
	method, ok := s.rules.ShippingMethod(shippingID)
	if !ok {
		return models.OrderSummary{}, errors.Wrapf(ErrUnknownShipping, "%q", shippingID)
	}

	var coupon *models.Coupon
	if strings.TrimSpace(couponCode) != "" {
		c, ok := s.rules.LookupCoupon(couponCode)
		if !ok {
			return models.OrderSummary{}, errors.Wrapf(ErrUnknownCoupon, "%q", couponCode)
		}
		coupon = &c
	}

	return cart.Summarize(items, coupon, method, s.rules), nil
}

// ShippingMethods lists the delivery options in display order.
func (s *CheckoutService) ShippingMethods() []models.ShippingMethod {
	return []models.ShippingMethod{s.rules.Standard, s.rules.Express}
}

// PlaceOrder validates the request, prices the cart, simulates payment and
// empties the cart.
func (s *CheckoutService) PlaceOrder(ctx context.Context, c Cart, req models.CheckoutRequest) (models.OrderConfirmation, error) {
	if err := ctx.Err(); err != nil {
		return models.OrderConfirmation{}, err
	}
	if err := validateCheckout(req); err != nil {
		return models.OrderConfirmation{}, err
	}

	items := c.Items()
	if len(items) == 0 {
		return models.OrderConfirmation{}, ErrEmptyCart
	}

	summary, err := s.Quote(items, req.CouponCode, req.ShippingMethod)
	if err != nil {
		return models.OrderConfirmation{}, err
	}

	conf := models.OrderConfirmation{
		OrderNumber:   newOrderNumber(),
		Contact:       req.Contact,
		Address:       req.Address,
		Items:         items,
		Summary:       summary,
		PaymentMethod: req.Payment.Method,
		Status:        "confirmed",
		CreatedAt:     s.now().UTC(),
	}
	if req.Payment.Method == "card" {
		conf.PaymentLast4 = last4(req.Payment.CardNumber)
	}

	c.ClearCart()
	s.remember(conf)

	s.log.Info("order placed",
		zap.String("order_number", conf.OrderNumber),
		zap.Int("items", summary.ItemCount),
		zap.String("total", summary.Total.StringFixed(2)),
	)
	return conf, nil
}

// GetOrder returns a recent confirmation by order number.
func (s *CheckoutService) GetOrder(orderNumber string) (models.OrderConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conf, ok := s.orders[orderNumber]
	if !ok {
		return models.OrderConfirmation{}, ErrOrderNotFound
	}
	return conf, nil
}

func (s *CheckoutService) remember(conf models.OrderConfirmation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[conf.OrderNumber] = conf
	s.queue = append(s.queue, conf.OrderNumber)
	for len(s.queue) > s.limit {
		delete(s.orders, s.queue[0])
		s.queue = s.queue[1:]
	}
}

// ═══════════════════════════════════════════════════════════
// Validation
// ═══════════════════════════════════════════════════════════

var (
	emailPattern  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvcPattern    = regexp.MustCompile(`^\d{3,4}$`)
)

func validateCheckout(req models.CheckoutRequest) error {
	fields := map[string]string{}
	require := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = "is required"
		}
	}

	require("contact.email", req.Contact.Email)
	if _, missing := fields["contact.email"]; !missing && !emailPattern.MatchString(req.Contact.Email) {
		fields["contact.email"] = "is not a valid email address"
	}
	require("contact.first_name", req.Contact.FirstName)
	require("contact.last_name", req.Contact.LastName)
	require("address.address1", req.Address.Address1)
	require("address.city", req.Address.City)
	require("address.postcode", req.Address.Postcode)

	switch strings.ToLower(strings.TrimSpace(req.ShippingMethod)) {
	case cart.ShippingStandard, cart.ShippingExpress:
	default:
		fields["shipping_method"] = "must be standard or express"
	}

	switch req.Payment.Method {
	case "paypal":
	case "card":
		digits := strings.ReplaceAll(req.Payment.CardNumber, " ", "")
		if len(digits) < 12 || len(digits) > 19 || strings.Trim(digits, "0123456789") != "" {
			fields["payment.card_number"] = "must be 12 to 19 digits"
		}
		require("payment.card_name", req.Payment.CardName)
		if !expiryPattern.MatchString(req.Payment.Expiry) {
			fields["payment.expiry"] = "must be MM/YY"
		}
		if !cvcPattern.MatchString(req.Payment.CVC) {
			fields["payment.cvc"] = "must be 3 or 4 digits"
		}
	default:
		fields["payment.method"] = "must be card or paypal"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func newOrderNumber() string {
	id := strings.ReplaceAll(uuid.Must(uuid.NewV7()).String(), "-", "")
	return fmt.Sprintf("BG-%s", strings.ToUpper(id[len(id)-8:]))
}

func last4(cardNumber string) string {
	digits := strings.ReplaceAll(cardNumber, " ", "")
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}
