package cart

import (
	"context"
	"sync"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Options configures a Store. A nil Storage disables persistence.
type Options struct {
	Limits     Limits
	Storage    Storage
	StorageKey string
	Notifier   Notifier
	Logger     *zap.Logger
}

// Store owns one shopper's cart. All methods are safe for concurrent use;
// mutations are applied one at a time in arrival order.
type Store struct {
	mu      sync.Mutex
	state   State
	version uint64

	limits    Limits
	storage   Storage
	key       string
	persister *persister
	notifier  Notifier
	logger    *zap.Logger

	loadOnce sync.Once
}

func NewStore(opts Options) *Store {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	key := opts.StorageKey
	if key == "" {
		key = DefaultStorageKey
	}

	s := &Store{
		state:    State{Items: []models.CartItem{}},
		limits:   opts.Limits,
		storage:  opts.Storage,
		key:      key,
		notifier: opts.Notifier,
		logger:   logger.With(zap.String("cart", key)),
	}
	if s.storage != nil {
		s.persister = newPersister(s.storage, key, s.logger)
	}
	return s
}

// ═══════════════════════════════════════════════════════════
// Mutations
// ═══════════════════════════════════════════════════════════

// AddItem merges item into the cart. It returns the resulting line and
// whether the cart changed; an add onto a line already at its maximum
// changes nothing.
func (s *Store) AddItem(item models.CartItem) (models.CartItem, bool) {
	out := s.dispatch(AddItem{Item: item})
	s.notify(Added(out.Item, out.Changed))
	return out.Item, out.Changed
}

// RemoveItem deletes the line with the given identity and reports whether it existed.
func (s *Store) RemoveItem(key models.CartKey) (models.CartItem, bool) {
	out := s.dispatch(RemoveItem{Key: key})
	if out.Found {
		s.notify(Removed(out.Item))
	}
	return out.Item, out.Found
}

// UpdateQuantity sets the quantity of a line; zero or less removes it.
// It reports whether the line existed.
func (s *Store) UpdateQuantity(key models.CartKey, quantity int) bool {
	out := s.dispatch(UpdateQuantity{Key: key, Quantity: quantity})
	return out.Found
}

// ClearCart empties the cart and returns how many lines were removed.
func (s *Store) ClearCart() int {
	out := s.dispatch(ClearCart{})
	s.notify(Cleared())
	return out.Removed
}

func (s *Store) dispatch(a Action) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, out := Reduce(s.state, a, s.limits)
	s.state = next
	s.version++
	s.persistLocked()
	return out
}

func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	payload, err := encodeItems(s.state.Items)
	if err != nil {
		s.logger.Error("cart snapshot not persisted", zap.Error(err))
		return
	}
	s.persister.enqueue(payload)
}

func (s *Store) notify(n Notification) {
	if s.notifier != nil {
		s.notifier.Notify(n)
	}
}

// ═══════════════════════════════════════════════════════════
// Reads
// ═══════════════════════════════════════════════════════════

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Items: cloneItems(s.state.Items), IsLoading: s.state.IsLoading}
}

func (s *Store) Items() []models.CartItem {
	return s.Snapshot().Items
}

func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalItems()
}

func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.TotalPrice()
}

func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsLoading
}

// Limits returns the quantity limits the store enforces.
func (s *Store) Limits() Limits {
	return s.limits
}

// ═══════════════════════════════════════════════════════════
// Persistence
// ═══════════════════════════════════════════════════════════

// LoadFromPersistence replaces the cart with the persisted payload. An absent
// or invalid payload leaves an empty cart; neither is reported as an error.
// If the cart is mutated while the payload is being read, the in-memory cart
// wins and the payload is ignored.
func (s *Store) LoadFromPersistence(ctx context.Context) {
	if s.storage == nil {
		return
	}

	s.mu.Lock()
	s.state, _ = Reduce(s.state, SetLoading{Loading: true}, s.limits)
	startVersion := s.version
	s.mu.Unlock()

	items := s.readPersisted(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.version != startVersion {
		s.logger.Warn("cart mutated during hydration, persisted payload ignored")
	} else {
		s.state, _ = Reduce(s.state, LoadCart{Items: items}, s.limits)
	}
	s.state, _ = Reduce(s.state, SetLoading{Loading: false}, s.limits)
}

// EnsureLoaded hydrates the store once; later calls return immediately.
func (s *Store) EnsureLoaded(ctx context.Context) {
	s.loadOnce.Do(func() { s.LoadFromPersistence(ctx) })
}

func (s *Store) readPersisted(ctx context.Context) []models.CartItem {
	payload, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.logger.Warn("cart persistence read failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	items, err := decodeItems(payload, s.limits)
	if err != nil {
		s.logger.Warn("discarding persisted cart", zap.Error(err))
		return nil
	}
	return items
}

// Flush waits until every mutation made so far has been written to storage.
func (s *Store) Flush(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.flush(ctx)
}

// Close drains pending writes and stops the background writer. The store
// must not be mutated afterwards.
func (s *Store) Close(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.close(ctx)
}
