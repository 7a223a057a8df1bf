package catalog_cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/CodeStar86/Bangin-Gear/catalog"
	"github.com/CodeStar86/Bangin-Gear/models"
)

const TTL = 5 * time.Minute

// ── Product list cache ───────────────────────────────────────────────────────
// Listings, filter metadata and product lookups all read from the cached list.

type listEntry struct {
	products  []models.Product
	fetchedAt time.Time
}

// Repository wraps a catalog.Repository with a TTL cache of the full list.
type Repository struct {
	next catalog.Repository
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	cache *listEntry
}

func New(next catalog.Repository, ttl time.Duration) *Repository {
	if ttl <= 0 {
		ttl = TTL
	}
	return &Repository{next: next, ttl: ttl, now: time.Now}
}

func (r *Repository) get() ([]models.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cache != nil && r.now().Sub(r.cache.fetchedAt) < r.ttl {
		return r.cache.products, true
	}
	return nil, false
}

func (r *Repository) set(products []models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = &listEntry{products: products, fetchedAt: r.now()}
}

// List returns the cached list, loading it on a miss.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	if products, ok := r.get(); ok {
		return slices.Clone(products), nil
	}
	products, err := r.next.List(ctx)
	if err != nil {
		return nil, err
	}
	r.set(products)
	return slices.Clone(products), nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (models.Product, error) {
	return r.find(ctx, func(p models.Product) bool { return p.ID == id })
}

func (r *Repository) GetBySlug(ctx context.Context, slug string) (models.Product, error) {
	return r.find(ctx, func(p models.Product) bool { return p.Slug == slug })
}

func (r *Repository) find(ctx context.Context, match func(models.Product) bool) (models.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return models.Product{}, err
	}
	if i := slices.IndexFunc(products, match); i >= 0 {
		return products[i], nil
	}
	return models.Product{}, catalog.ErrProductNotFound
}

// ── Invalidate (call after reseeding the catalog) ────────────────────────────

func (r *Repository) Invalidate() {
	r.mu.Lock()
	r.cache = nil
	r.mu.Unlock()
}
