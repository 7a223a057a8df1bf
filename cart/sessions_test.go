package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessions_OneStorePerSession(t *testing.T) {
	storage := newFakeStorage()
	sessions := NewSessions(Options{Storage: storage, StorageKey: "bg"})
	ctx := context.Background()

	a := sessions.Get(ctx, "alice")
	b := sessions.Get(ctx, "bob")
	assert.Same(t, a, sessions.Get(ctx, "alice"))
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, sessions.Len())

	a.AddItem(tee(2))
	b.AddItem(hoodie("M", "Black", 1))
	require.NoError(t, sessions.Close(ctx))

	_, ok := storage.value("bg:alice")
	assert.True(t, ok)
	_, ok = storage.value("bg:bob")
	assert.True(t, ok)
	assert.Equal(t, 0, sessions.Len())
}

func TestSessions_SweepReleasesIdleStores(t *testing.T) {
	storage := newFakeStorage()
	sessions := NewSessions(Options{Storage: storage})
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	sessions.Get(ctx, "idle").AddItem(tee(3))
	now = now.Add(time.Hour)
	sessions.Get(ctx, "active")

	assert.Equal(t, 1, sessions.Sweep(ctx, 30*time.Minute))
	assert.Equal(t, 1, sessions.Len())

	// the idle cart is hydrated again from storage
	revived := sessions.Get(ctx, "idle")
	assert.Equal(t, 3, revived.TotalItems())
	require.NoError(t, sessions.Close(ctx))
}

func TestSessions_SweepSkipsLeasedStores(t *testing.T) {
	storage := newFakeStorage()
	sessions := NewSessions(Options{Storage: storage, StorageKey: "bg"})
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions.now = func() time.Time { return now }

	store, release := sessions.Acquire(ctx, "busy")
	now = now.Add(time.Hour)
	assert.Equal(t, 0, sessions.Sweep(ctx, 30*time.Minute))

	store.AddItem(tee(2))
	release()
	release()

	// released just now, so still fresh
	assert.Equal(t, 0, sessions.Sweep(ctx, 30*time.Minute))
	assert.Same(t, store, sessions.Get(ctx, "busy"))

	now = now.Add(time.Hour)
	assert.Equal(t, 1, sessions.Sweep(ctx, 30*time.Minute))

	payload, ok := storage.value("bg:busy")
	require.True(t, ok)
	items, err := decodeItems(payload, Limits{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}
