package models

import (
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CartKey identifies a cart line. Two items with the same product, size and
// color are the same line.
type CartKey struct {
	ProductID string `json:"id" form:"id" binding:"required"`
	Size      string `json:"size" form:"size"`
	Color     string `json:"color" form:"color"`
}

func (k CartKey) String() string {
	return strings.Join([]string{k.ProductID, k.Size, k.Color}, "|")
}

// CartItem is one line of the cart. The JSON field names are the persisted
// payload format and must stay stable.
type CartItem struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Size          string           `json:"size"`
	Color         string           `json:"color"`
	Quantity      int              `json:"quantity"`
	Image         string           `json:"image"`
	Slug          string           `json:"slug"`
	Brand         string           `json:"brand"`
	MaxQuantity   int              `json:"maxQuantity,omitempty"`
}

func (i CartItem) Key() CartKey {
	return CartKey{ProductID: i.ID, Size: i.Size, Color: i.Color}
}

// LineTotal is price × quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineSavings is (originalPrice − price) × quantity, zero for full-price lines.
func (i CartItem) LineSavings() decimal.Decimal {
	if i.OriginalPrice == nil || !i.OriginalPrice.GreaterThan(i.Price) {
		return decimal.Zero
	}
	return i.OriginalPrice.Sub(i.Price).Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewCartItem snapshots a catalog product into a line for the chosen options.
func NewCartItem(p Product, size, color string, quantity int) CartItem {
	item := CartItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Size:     size,
		Color:    color,
		Quantity: quantity,
		Image:    p.Image,
		Slug:     p.Slug,
		Brand:    p.Brand,
	}
	if p.OriginalPrice != nil {
		orig := *p.OriginalPrice
		item.OriginalPrice = &orig
	}
	return item
}

// ═══════════════════════════════════════════════════════════
// Request / Response Models
// ═══════════════════════════════════════════════════════════

type AddCartItemRequest struct {
	ProductID string `json:"productId"`
	Slug      string `json:"slug"`
	Size      string `json:"size" binding:"required"`
	Color     string `json:"color" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	CartKey
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItem      `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	IsLoading  bool            `json:"isLoading"`
}

// CartSnapshot is a persisted cart payload (GORM).
type CartSnapshot struct {
	Key       string         `gorm:"primaryKey;size:191"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	UpdatedAt int64          `gorm:"autoUpdateTime:milli"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
