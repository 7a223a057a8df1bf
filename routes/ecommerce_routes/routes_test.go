package ecommerce_routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CodeStar86/Bangin-Gear/cart"
	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/cart_controller"
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/category_controller"
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/checkout_controller"
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/filter_controller"
	"github.com/CodeStar86/Bangin-Gear/controllers/ecommerce/product_controller"
	"github.com/CodeStar86/Bangin-Gear/middleware"
	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/CodeStar86/Bangin-Gear/services"
	"github.com/CodeStar86/Bangin-Gear/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	products, err := catalog.SeedProducts()
	require.NoError(t, err)
	repo := catalog.NewStaticRepository(products)
	cfg := catalog.DefaultConfig()

	sessions := cart.NewSessions(cart.Options{Storage: storage.NewMemoryStore(), Logger: log})
	t.Cleanup(func() { _ = sessions.Close(context.Background()) })
	checkout := services.NewCheckoutService(cart.DefaultRules(), log)

	r := gin.New()
	api := r.Group("/api/v1")
	SetupStorefrontRoutes(api,
		product_controller.New(repo, cfg, log),
		category_controller.New(repo, log),
		filter_controller.New(repo, cfg, log),
	)
	session := middleware.CartSession(time.Hour, false)
	SetupCartRoutes(api, cart_controller.New(sessions, repo, checkout, log), session)
	SetupCheckoutRoutes(api, checkout_controller.New(sessions, checkout, log), session)
	return r
}

// shopper replays the cart session cookie across requests.
type shopper struct {
	t       *testing.T
	r       *gin.Engine
	cookies []*http.Cookie
}

func newShopper(t *testing.T, r *gin.Engine) *shopper {
	return &shopper{t: t, r: r}
}

func (s *shopper) do(method, target, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		s.cookies = cookies
	}
	return w
}

func (s *shopper) cart(w *httptest.ResponseRecorder) models.CartResponse {
	s.t.Helper()
	var resp struct {
		Message string              `json:"message"`
		Data    models.CartResponse `json:"data"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Data
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestCartFlow(t *testing.T) {
	s := newShopper(t, newTestServer(t))

	w := s.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"1","size":"M","color":"Black","quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "Cyber Punk Hoodie added to cart", message(t, w))
	assert.Equal(t, 2, s.cart(w).TotalItems)
	require.NotEmpty(t, s.cookies)

	w = s.do(http.MethodPost, "/api/v1/cart/items", `{"slug":"cyber-punk-hoodie","size":"M","color":"Black","quantity":20}`)
	require.Equal(t, http.StatusCreated, w.Code)
	got := s.cart(w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 10, got.Items[0].Quantity)

	w = s.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"1","size":"M","color":"Black"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cyber Punk Hoodie is already at the maximum quantity", message(t, w))

	w = s.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"1","size":"L","color":"Neon Green"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	got = s.cart(w)
	assert.Len(t, got.Items, 2)
	assert.Equal(t, 11, got.TotalItems)

	w = s.do(http.MethodPatch, "/api/v1/cart/items", `{"id":"1","size":"M","color":"Black","quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)
	got = s.cart(w)
	assert.Equal(t, 4, got.TotalItems)
	assert.Equal(t, "519.96", got.TotalPrice.StringFixed(2))

	w = s.do(http.MethodDelete, "/api/v1/cart/items?id=1&size=L&color=Neon+Green", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cyber Punk Hoodie removed from cart", message(t, w))

	w = s.do(http.MethodDelete, "/api/v1/cart/items?id=1&size=L&color=Neon+Green", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPatch, "/api/v1/cart/items", `{"id":"9","size":"M","color":"Black","quantity":1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	got = s.cart(w)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 3, got.Items[0].Quantity)

	w = s.do(http.MethodPatch, "/api/v1/cart/items", `{"id":"1","size":"M","color":"Black","quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cart item removed", message(t, w))
	assert.Empty(t, s.cart(w).Items)
}

func TestAddCartItem_Rejections(t *testing.T) {
	s := newShopper(t, newTestServer(t))

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"out of stock", `{"productId":"4","size":"One Size","color":"Black"}`, http.StatusConflict},
		{"size not offered", `{"productId":"3","size":"XL","color":"Black"}`, http.StatusBadRequest},
		{"color not offered", `{"productId":"7","size":"M","color":"Black"}`, http.StatusBadRequest},
		{"unknown product", `{"productId":"99","size":"M","color":"Black"}`, http.StatusNotFound},
		{"no product reference", `{"size":"M","color":"Black"}`, http.StatusBadRequest},
		{"missing size", `{"productId":"1","color":"Black"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/v1/cart/items", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := s.do(http.MethodGet, "/api/v1/cart", "")
	assert.Empty(t, s.cart(w).Items)
}

func TestCartSessionsAreIsolated(t *testing.T) {
	r := newTestServer(t)
	alice := newShopper(t, r)
	bob := newShopper(t, r)

	w := alice.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"2","size":"M","color":"White"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = bob.do(http.MethodGet, "/api/v1/cart", "")
	assert.Empty(t, bob.cart(w).Items)

	w = alice.do(http.MethodDelete, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cart cleared", message(t, w))
	assert.Empty(t, alice.cart(w).Items)
}

func TestCartSummary(t *testing.T) {
	s := newShopper(t, newTestServer(t))
	w := s.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"2","size":"M","color":"White","quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	summary := func(target string) models.OrderSummary {
		w := s.do(http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp struct {
			Data models.OrderSummary `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Data
	}

	got := summary("/api/v1/cart/summary?coupon=BANGIN10")
	assert.Equal(t, "99.98", got.Subtotal.StringFixed(2))
	assert.Equal(t, "10.00", got.Discount.StringFixed(2))
	assert.True(t, got.FreeShipping)
	assert.Equal(t, "89.98", got.Total.StringFixed(2))

	got = summary("/api/v1/cart/summary?shipping=express")
	assert.Equal(t, "9.99", got.ShippingCost.StringFixed(2))
	assert.Equal(t, "109.97", got.Total.StringFixed(2))

	w = s.do(http.MethodGet, "/api/v1/cart/summary?coupon=FREESTUFF", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodGet, "/api/v1/cart/summary?shipping=drone", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

const checkoutBody = `{
	"contact": {"email": "neo@example.com", "first_name": "Thomas", "last_name": "Anderson"},
	"address": {"address1": "101 Main St", "city": "London", "postcode": "E1 6AN"},
	"shipping_method": "standard",
	"payment": {"method": "card", "card_number": "4242 4242 4242 4242", "card_name": "T Anderson", "expiry": "12/29", "cvc": "123"},
	"coupon_code": "BANGIN10"
}`

func TestCheckoutFlow(t *testing.T) {
	s := newShopper(t, newTestServer(t))

	w := s.do(http.MethodPost, "/api/v1/checkout", checkoutBody)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Your cart is empty", message(t, w))

	w = s.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"2","size":"M","color":"White"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(http.MethodPost, "/api/v1/checkout", checkoutBody)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		Data models.OrderConfirmation `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))
	conf := placed.Data
	assert.Regexp(t, `^BG-[0-9A-F]{8}$`, conf.OrderNumber)
	assert.Equal(t, "4242", conf.PaymentLast4)
	assert.Equal(t, "54.98", conf.Summary.Total.StringFixed(2))

	w = s.do(http.MethodGet, "/api/v1/cart", "")
	assert.Empty(t, s.cart(w).Items)

	w = s.do(http.MethodGet, "/api/v1/checkout/orders/"+conf.OrderNumber+"/receipt", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), conf.OrderNumber)
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = s.do(http.MethodGet, "/api/v1/checkout/orders/BG-00000000/receipt", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutValidation(t *testing.T) {
	s := newShopper(t, newTestServer(t))
	w := s.do(http.MethodPost, "/api/v1/cart/items", `{"productId":"2","size":"M","color":"White"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	body := `{
		"contact": {"email": "neo@example.com", "first_name": "Thomas", "last_name": "Anderson"},
		"address": {"address1": "101 Main St", "city": "London", "postcode": "E1 6AN"},
		"shipping_method": "standard",
		"payment": {"method": "card", "card_number": "42", "card_name": "T Anderson", "expiry": "13/29", "cvc": "1"}
	}`
	w = s.do(http.MethodPost, "/api/v1/checkout", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data, "payment.card_number")
	assert.Contains(t, resp.Data, "payment.expiry")
	assert.Contains(t, resp.Data, "payment.cvc")

	w = s.do(http.MethodGet, "/api/v1/cart", "")
	assert.Len(t, s.cart(w).Items, 1)
}

func TestShippingMethodsAndCategories(t *testing.T) {
	s := newShopper(t, newTestServer(t))

	w := s.do(http.MethodGet, "/api/v1/checkout/shipping-methods", "")
	require.Equal(t, http.StatusOK, w.Code)
	var methods struct {
		Data []models.ShippingMethod `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &methods))
	require.Len(t, methods.Data, 2)
	assert.Equal(t, "standard", methods.Data[0].ID)
	assert.Equal(t, "express", methods.Data[1].ID)

	w = s.do(http.MethodGet, "/api/v1/store/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	var categories struct {
		Data []models.FacetOption `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &categories))
	assert.Equal(t, []models.FacetOption{
		{Value: "hoodies", Count: 4},
		{Value: "tees", Count: 2},
		{Value: "sneakers", Count: 1},
		{Value: "accessories", Count: 1},
	}, categories.Data)
}
