package cart

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sessions keeps one Store per shopper session. Each store persists under
// "<StorageKey>:<session id>".
type Sessions struct {
	opts Options

	mu      sync.Mutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

type sessionEntry struct {
	store    *Store
	lastUsed time.Time
	leases   int
}

func NewSessions(opts Options) *Sessions {
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Sessions{
		opts:    opts,
		entries: make(map[string]*sessionEntry),
		now:     time.Now,
	}
}

// Get returns the hydrated store of a session, creating it on first use.
// The store may be swept once idle; callers that mutate it should use Acquire.
func (s *Sessions) Get(ctx context.Context, sessionID string) *Store {
	store, release := s.Acquire(ctx, sessionID)
	release()
	return store
}

// Acquire is Get with a lease: Sweep leaves the store alone until release is
// called. release is safe to call more than once.
func (s *Sessions) Acquire(ctx context.Context, sessionID string) (*Store, func()) {
	s.mu.Lock()
	entry, ok := s.entries[sessionID]
	if !ok {
		opts := s.opts
		opts.StorageKey = s.opts.StorageKey + ":" + sessionID
		entry = &sessionEntry{store: NewStore(opts)}
		s.entries[sessionID] = entry
	}
	entry.lastUsed = s.now()
	entry.leases++
	s.mu.Unlock()

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			entry.leases--
			entry.lastUsed = s.now()
			s.mu.Unlock()
		})
	}

	entry.store.EnsureLoaded(ctx)
	return entry.store, release
}

// Len is the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep closes and forgets stores idle for longer than idle. Leased stores
// are skipped. Their carts stay in storage and are hydrated again on the
// next Get.
func (s *Sessions) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	var stale []*Store
	for id, entry := range s.entries {
		if entry.leases == 0 && entry.lastUsed.Before(cutoff) {
			stale = append(stale, entry.store)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, store := range stale {
		if err := store.Close(ctx); err != nil {
			s.opts.Logger.Warn("closing idle cart", zap.Error(err))
		}
	}
	return len(stale)
}

// Close flushes and stops every store.
func (s *Sessions) Close(ctx context.Context) error {
	s.mu.Lock()
	stores := make([]*Store, 0, len(s.entries))
	for _, entry := range s.entries {
		stores = append(stores, entry.store)
	}
	s.entries = make(map[string]*sessionEntry)
	s.mu.Unlock()

	var firstErr error
	for _, store := range stores {
		if err := store.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
