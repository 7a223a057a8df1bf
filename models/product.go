package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// Catalog Product
// ═══════════════════════════════════════════════════════════

// Product is a catalog entry as the storefront sees it. OriginalPrice is
// set only when the product is discounted.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Brand         string           `json:"brand"`
	Category      string           `json:"category"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Image         string           `json:"image"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"reviewCount"`
	Colors        []string         `json:"colors"`
	Sizes         []string         `json:"sizes"`
	IsNew         bool             `json:"isNew"`
	IsOnSale      bool             `json:"isOnSale"`
	InStock       bool             `json:"inStock"`
}

// Savings is the per-unit discount, zero when the product is not reduced.
func (p Product) Savings() decimal.Decimal {
	if p.OriginalPrice == nil || !p.OriginalPrice.GreaterThan(p.Price) {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}

// OffersSize reports whether size is one of the product's sizes.
func (p Product) OffersSize(size string) bool {
	return containsString(p.Sizes, size)
}

// OffersColor reports whether color is one of the product's colors.
func (p Product) OffersColor(color string) bool {
	return containsString(p.Colors, color)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ═══════════════════════════════════════════════════════════
// JSONB Type Definitions
// ═══════════════════════════════════════════════════════════

type StringList []string

func (s *StringList) Scan(value interface{}) error {
	if value == nil {
		*s = make(StringList, 0)
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("failed to scan StringList")
	}
	return json.Unmarshal(raw, s)
}

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(s)
}

// ═══════════════════════════════════════════════════════════
// Product Record (GORM)
// ═══════════════════════════════════════════════════════════

type ProductRecord struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	ExternalID    string              `gorm:"uniqueIndex;not null"`
	Name          string              `gorm:"not null;index"`
	Slug          string              `gorm:"uniqueIndex;not null"`
	Brand         string              `gorm:"not null;index"`
	Category      string              `gorm:"not null;index"`
	Price         decimal.Decimal     `gorm:"type:numeric(12,2);not null;check:price >= 0"`
	OriginalPrice decimal.NullDecimal `gorm:"type:numeric(12,2)"`
	Image         string              `gorm:"not null;default:''"`
	Rating        float64             `gorm:"not null;default:0"`
	ReviewCount   int                 `gorm:"not null;default:0"`
	Colors        StringList          `gorm:"type:jsonb;not null;default:'[]'"`
	Sizes         StringList          `gorm:"type:jsonb;not null;default:'[]'"`
	IsNew         bool                `gorm:"not null;default:false"`
	IsOnSale      bool                `gorm:"not null;default:false"`
	InStock       bool                `gorm:"not null;default:true"`
	Position      int                 `gorm:"not null;default:0;index"`
	CreatedAt     time.Time           `gorm:"autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (r *ProductRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (ProductRecord) TableName() string {
	return "products"
}

// ToProduct converts a stored row into a catalog product.
func (r ProductRecord) ToProduct() Product {
	p := Product{
		ID:          r.ExternalID,
		Name:        r.Name,
		Slug:        r.Slug,
		Brand:       r.Brand,
		Category:    r.Category,
		Price:       r.Price,
		Image:       r.Image,
		Rating:      r.Rating,
		ReviewCount: r.ReviewCount,
		Colors:      append([]string(nil), r.Colors...),
		Sizes:       append([]string(nil), r.Sizes...),
		IsNew:       r.IsNew,
		IsOnSale:    r.IsOnSale,
		InStock:     r.InStock,
	}
	if r.OriginalPrice.Valid {
		orig := r.OriginalPrice.Decimal
		p.OriginalPrice = &orig
	}
	return p
}

// NewProductRecord builds a row for p; position keeps the catalog's display order.
func NewProductRecord(p Product, position int) ProductRecord {
	r := ProductRecord{
		ExternalID:  p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price,
		Image:       p.Image,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Colors:      StringList(p.Colors),
		Sizes:       StringList(p.Sizes),
		IsNew:       p.IsNew,
		IsOnSale:    p.IsOnSale,
		InStock:     p.InStock,
		Position:    position,
	}
	if p.OriginalPrice != nil {
		r.OriginalPrice = decimal.NewNullDecimal(*p.OriginalPrice)
	}
	return r
}
