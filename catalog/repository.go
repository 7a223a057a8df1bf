package catalog

import (
	"context"
	_ "embed"
	"slices"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

// Repository reads the product catalog. List returns products in featured order.
type Repository interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetBySlug(ctx context.Context, slug string) (models.Product, error)
}

// ═══════════════════════════════════════════════════════════
// Seed data
// ═══════════════════════════════════════════════════════════

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID            string   `yaml:"id"`
	Slug          string   `yaml:"slug"`
	Name          string   `yaml:"name"`
	Brand         string   `yaml:"brand"`
	Category      string   `yaml:"category"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"originalPrice"`
	Rating        float64  `yaml:"rating"`
	ReviewCount   int      `yaml:"reviewCount"`
	Image         string   `yaml:"image"`
	Colors        []string `yaml:"colors"`
	Sizes         []string `yaml:"sizes"`
	IsNew         bool     `yaml:"isNew"`
	IsOnSale      bool     `yaml:"isOnSale"`
	InStock       bool     `yaml:"inStock"`
}

// SeedProducts decodes the embedded seed catalog.
func SeedProducts() ([]models.Product, error) {
	return ParseSeed(seedYAML)
}

// ParseSeed decodes a YAML catalog document.
func ParseSeed(raw []byte) ([]models.Product, error) {
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decode seed catalog")
	}

	products := make([]models.Product, 0, len(doc.Products))
	for _, sp := range doc.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return nil, errors.Wrapf(err, "product %s: price", sp.ID)
		}
		p := models.Product{
			ID:          sp.ID,
			Name:        sp.Name,
			Slug:        sp.Slug,
			Brand:       sp.Brand,
			Category:    sp.Category,
			Price:       price,
			Image:       sp.Image,
			Rating:      sp.Rating,
			ReviewCount: sp.ReviewCount,
			Colors:      sp.Colors,
			Sizes:       sp.Sizes,
			IsNew:       sp.IsNew,
			IsOnSale:    sp.IsOnSale,
			InStock:     sp.InStock,
		}
		if sp.OriginalPrice != "" {
			orig, err := decimal.NewFromString(sp.OriginalPrice)
			if err != nil {
				return nil, errors.Wrapf(err, "product %s: originalPrice", sp.ID)
			}
			p.OriginalPrice = &orig
		}
		products = append(products, p)
	}
	return products, nil
}

// ═══════════════════════════════════════════════════════════
// Static repository
// ═══════════════════════════════════════════════════════════

// StaticRepository serves a fixed in-memory catalog.
type StaticRepository struct {
	products []models.Product
}

func NewStaticRepository(products []models.Product) *StaticRepository {
	return &StaticRepository{products: slices.Clone(products)}
}

func (r *StaticRepository) List(_ context.Context) ([]models.Product, error) {
	return slices.Clone(r.products), nil
}

func (r *StaticRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *StaticRepository) GetBySlug(_ context.Context, slug string) (models.Product, error) {
	for _, p := range r.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// ═══════════════════════════════════════════════════════════
// GORM repository
// ═══════════════════════════════════════════════════════════

// GormRepository reads the products table.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context) ([]models.Product, error) {
	var records []models.ProductRecord
	if err := r.db.WithContext(ctx).Order("position ASC, created_at ASC").Find(&records).Error; err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, rec.ToProduct())
	}
	return products, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	return r.first(ctx, "external_id = ?", id)
}

func (r *GormRepository) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	return r.first(ctx, "slug = ?", slug)
}

func (r *GormRepository) first(ctx context.Context, where, arg string) (models.Product, error) {
	var rec models.ProductRecord
	err := r.db.WithContext(ctx).Where(where, arg).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, errors.Wrap(err, "get product")
	}
	return rec.ToProduct(), nil
}

// Upsert writes products in order, keyed by their catalog id.
func (r *GormRepository) Upsert(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, p := range products {
			rec := models.NewProductRecord(p, i)
			var existing models.ProductRecord
			err := tx.Where("external_id = ?", p.ID).First(&existing).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if err := tx.Create(&rec).Error; err != nil {
					return errors.Wrapf(err, "create product %s", p.ID)
				}
			case err != nil:
				return errors.Wrapf(err, "lookup product %s", p.ID)
			default:
				rec.ID = existing.ID
				rec.CreatedAt = existing.CreatedAt
				if err := tx.Save(&rec).Error; err != nil {
					return errors.Wrapf(err, "update product %s", p.ID)
				}
			}
		}
		return nil
	})
}

// Migrate creates the products table.
func (r *GormRepository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&models.ProductRecord{}); err != nil {
		return errors.Wrap(err, "migrate products")
	}
	return nil
}
