package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/CodeStar86/Bangin-Gear/models"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_MutationsArePersisted(t *testing.T) {
	storage := newFakeStorage()
	s := NewStore(Options{Storage: storage, StorageKey: "cart"})
	ctx := context.Background()

	s.AddItem(hoodie("M", "Black", 2))
	s.AddItem(tee(1))
	s.UpdateQuantity(tee(0).Key(), 3)
	require.NoError(t, s.Flush(ctx))

	payload, ok := storage.value("cart")
	require.True(t, ok)
	want, err := encodeItems(s.Items())
	require.NoError(t, err)
	assert.JSONEq(t, want, payload)

	s.ClearCart()
	require.NoError(t, s.Close(ctx))
	payload, _ = storage.value("cart")
	assert.Equal(t, "[]", payload)
}

func TestStore_HydratesFromStorage(t *testing.T) {
	storage := newFakeStorage()
	payload, err := encodeItems([]models.CartItem{hoodie("L", "Black", 2), tee(1)})
	require.NoError(t, err)
	storage.data[DefaultStorageKey] = payload

	s := NewStore(Options{Storage: storage})
	s.LoadFromPersistence(context.Background())

	assert.False(t, s.IsLoading())
	assert.Equal(t, 3, s.TotalItems())
	assert.Equal(t, "309.97", s.TotalPrice().StringFixed(2))
}

func TestStore_InvalidOrMissingPayloadLeavesEmptyCart(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeStorage)
	}{
		{"absent", func(*fakeStorage) {}},
		{"garbage", func(f *fakeStorage) { f.data[DefaultStorageKey] = "not json" }},
		{"bad line", func(f *fakeStorage) { f.data[DefaultStorageKey] = `[{"id":"1","price":"1","quantity":-2}]` }},
		{"read error", func(f *fakeStorage) { f.getErr = errors.New("connection refused") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newFakeStorage()
			tt.setup(storage)

			s := NewStore(Options{Storage: storage})
			s.LoadFromPersistence(context.Background())

			assert.False(t, s.IsLoading())
			assert.Empty(t, s.Items())
			assert.Equal(t, 0, s.TotalItems())
		})
	}
}

func TestStore_MutationDuringHydrationWins(t *testing.T) {
	storage := newFakeStorage()
	payload, err := encodeItems([]models.CartItem{hoodie("L", "Black", 2)})
	require.NoError(t, err)
	storage.data[DefaultStorageKey] = payload
	storage.getting = make(chan struct{})
	storage.release = make(chan struct{})

	s := NewStore(Options{Storage: storage})
	done := make(chan struct{})
	go func() {
		defer close(done)
		s.LoadFromPersistence(context.Background())
	}()

	<-storage.getting
	assert.True(t, s.IsLoading())
	s.AddItem(tee(1))
	close(storage.release)
	<-done

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
	assert.False(t, s.IsLoading())
}

func TestStore_EnsureLoadedRunsOnce(t *testing.T) {
	storage := newFakeStorage()
	s := NewStore(Options{Storage: storage})
	ctx := context.Background()

	s.EnsureLoaded(ctx)
	s.AddItem(tee(2))

	storage.mu.Lock()
	storage.data[DefaultStorageKey] = "[]"
	storage.mu.Unlock()
	s.EnsureLoaded(ctx)

	assert.Equal(t, 2, s.TotalItems())
}

func TestStore_Signals(t *testing.T) {
	s := NewStore(Options{})

	item, changed := s.AddItem(tee(10))
	assert.True(t, changed)
	assert.Equal(t, 10, item.Quantity)

	_, changed = s.AddItem(tee(1))
	assert.False(t, changed, "line already at maximum")

	assert.False(t, s.UpdateQuantity(models.CartKey{ProductID: "nope"}, 2))
	assert.True(t, s.UpdateQuantity(tee(0).Key(), 4))

	_, found := s.RemoveItem(models.CartKey{ProductID: "nope"})
	assert.False(t, found)

	removed, found := s.RemoveItem(tee(0).Key())
	assert.True(t, found)
	assert.Equal(t, 4, removed.Quantity)

	s.AddItem(tee(1))
	s.AddItem(hoodie("S", "Black", 1))
	assert.Equal(t, 2, s.ClearCart())
	assert.Equal(t, 0, s.ClearCart())
}

func TestStore_Notifications(t *testing.T) {
	var got []Notification
	s := NewStore(Options{Notifier: NotifierFunc(func(n Notification) { got = append(got, n) })})

	s.AddItem(tee(10))
	s.AddItem(tee(1))
	s.RemoveItem(tee(0).Key())
	s.RemoveItem(tee(0).Key())
	s.ClearCart()

	require.Len(t, got, 4)
	assert.Equal(t, ItemAdded, got[0].Kind)
	assert.Equal(t, "Neon Future Tee added to cart", got[0].Message)
	assert.Equal(t, ItemAtMaximum, got[1].Kind)
	assert.Equal(t, ItemRemoved, got[2].Kind)
	assert.Equal(t, "Neon Future Tee removed from cart", got[2].Message)
	assert.Equal(t, CartCleared, got[3].Kind)
}

func TestStore_ConcurrentAddsAreNotLost(t *testing.T) {
	s := NewStore(Options{Limits: Limits{DefaultMaxQuantity: 1000}, Storage: newFakeStorage()})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.AddItem(tee(1))
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.TotalItems())
	require.NoError(t, s.Close(context.Background()))
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := NewStore(Options{})
	s.AddItem(tee(1))

	snap := s.Snapshot()
	snap.Items[0].Quantity = 9

	assert.Equal(t, 1, s.TotalItems())
}
