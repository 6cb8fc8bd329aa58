package kds

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/redis"
)

func testLoggerForCache() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

type fakeBoardStore struct {
	values map[string]string
	ttls   map[string]time.Duration
}

func newFakeBoardStore() *fakeBoardStore {
	return &fakeBoardStore{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeBoardStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := f.values[key]
	if !ok {
		return "", redis.ErrCacheMiss
	}
	return value, nil
}

func (f *fakeBoardStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	f.values[key] = string(value.([]byte))
	f.ttls[key] = ttl
	return nil
}

func (f *fakeBoardStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeBoardStore) BoardKey(locationID string) string {
	return "comanda:kds_board:" + locationID
}

func TestBoardCache_RoundTrip(t *testing.T) {
	store := newFakeBoardStore()
	cache := NewBoardCache(store, 2*time.Second, testLoggerForCache())
	ctx := context.Background()
	locationID := uuid.New()

	if _, ok := cache.Get(ctx, locationID); ok {
		t.Fatal("expected cold cache miss")
	}

	board := []BoardOrder{{ID: uuid.New(), DisplayID: 12}}
	cache.Set(ctx, locationID, board)

	got, ok := cache.Get(ctx, locationID)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, board[0].ID, got[0].ID)
	assert.Equal(t, 2*time.Second, store.ttls[store.BoardKey(locationID.String())])

	cache.InvalidateBoard(ctx, locationID)
	if _, ok := cache.Get(ctx, locationID); ok {
		t.Fatal("expected miss after invalidation")
	}
}

func TestBoardCache_CorruptPayloadIsDropped(t *testing.T) {
	store := newFakeBoardStore()
	cache := NewBoardCache(store, time.Second, testLoggerForCache())
	ctx := context.Background()
	locationID := uuid.New()

	store.values[store.BoardKey(locationID.String())] = "{not json"

	if _, ok := cache.Get(ctx, locationID); ok {
		t.Fatal("expected corrupt payload to read as miss")
	}
	if _, present := store.values[store.BoardKey(locationID.String())]; present {
		t.Fatal("expected corrupt payload to be evicted")
	}
}

func TestBoardCache_NilIsSafe(t *testing.T) {
	var cache *BoardCache
	ctx := context.Background()

	if _, ok := cache.Get(ctx, uuid.New()); ok {
		t.Fatal("nil cache should always miss")
	}
	cache.Set(ctx, uuid.New(), nil)
	cache.InvalidateBoard(ctx, uuid.New())
}
