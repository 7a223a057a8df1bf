package cart

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// DefaultStorageKey is the key a cart is persisted under.
const DefaultStorageKey = "bangin-gear-cart"

const writeTimeout = 5 * time.Second

// Storage is a string key-value store. A missing key is reported as
// ("", false, nil), not as an error.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// persistedItem writes prices as bare JSON numbers. decodeItems reads both
// numbers and strings.
type persistedItem struct {
	models.CartItem
	Price         json.Number  `json:"price"`
	OriginalPrice *json.Number `json:"originalPrice,omitempty"`
}

// encodeItems serializes the cart lines in order.
func encodeItems(items []models.CartItem) (string, error) {
	lines := make([]persistedItem, 0, len(items))
	for _, item := range items {
		line := persistedItem{CartItem: item, Price: json.Number(item.Price.String())}
		if item.OriginalPrice != nil {
			orig := json.Number(item.OriginalPrice.String())
			line.OriginalPrice = &orig
		}
		lines = append(lines, line)
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return "", errors.Wrap(err, "encode cart")
	}
	return string(raw), nil
}

// decodeItems parses a persisted payload and rejects it as a whole when any
// line breaks a cart invariant.
func decodeItems(payload string, limits Limits) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, errors.Wrap(err, "parse cart payload")
	}
	if items == nil {
		return nil, errors.New("cart payload is not an array")
	}

	seen := make(map[models.CartKey]struct{}, len(items))
	for i, item := range items {
		switch {
		case item.ID == "":
			return nil, errors.Errorf("line %d: missing id", i)
		case item.Quantity < 1:
			return nil, errors.Errorf("line %d: quantity %d below 1", i, item.Quantity)
		case item.Quantity > limits.MaxFor(item):
			return nil, errors.Errorf("line %d: quantity %d above max %d", i, item.Quantity, limits.MaxFor(item))
		case item.Price.IsNegative():
			return nil, errors.Errorf("line %d: negative price", i)
		}
		if _, dup := seen[item.Key()]; dup {
			return nil, errors.Errorf("line %d: duplicate line %s", i, item.Key())
		}
		seen[item.Key()] = struct{}{}
	}
	return items, nil
}

// ═══════════════════════════════════════════════════════════
// Background writer
// ═══════════════════════════════════════════════════════════

// persister writes snapshots on a single goroutine. Only the newest pending
// snapshot is kept, so writes land in mutation order and a stale snapshot
// never overwrites a newer one.
type persister struct {
	storage Storage
	key     string
	logger  *zap.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending *string
	seq     uint64
	written uint64
	closed  bool
	done    chan struct{}
}

func newPersister(storage Storage, key string, logger *zap.Logger) *persister {
	p := &persister{
		storage: storage,
		key:     key,
		logger:  logger,
		done:    make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)
	go p.run()
	return p
}

func (p *persister) enqueue(payload string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.logger.Warn("cart persister closed, snapshot dropped", zap.String("key", p.key))
		return
	}
	p.pending = &payload
	p.seq++
	p.cond.Broadcast()
}

func (p *persister) run() {
	defer close(p.done)

	p.mu.Lock()
	for {
		for p.pending == nil && !p.closed {
			p.cond.Wait()
		}
		if p.pending == nil {
			p.mu.Unlock()
			return
		}
		payload, seq := *p.pending, p.seq
		p.pending = nil
		p.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		if err := p.storage.Set(ctx, p.key, payload); err != nil {
			p.logger.Warn("cart persistence write failed", zap.String("key", p.key), zap.Error(err))
		}
		cancel()

		p.mu.Lock()
		p.written = seq
		p.cond.Broadcast()
	}
}

// flush blocks until every snapshot enqueued before the call has been written.
func (p *persister) flush(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		p.cond.Broadcast()
		p.mu.Unlock()
	})
	defer stop()

	p.mu.Lock()
	defer p.mu.Unlock()
	target := p.seq
	for p.written < target {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.cond.Wait()
	}
	return nil
}

// close drains pending writes and stops the writer.
func (p *persister) close(ctx context.Context) error {
	p.mu.Lock()
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
