package kds

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lacomanda/comanda-backend/pkg/logger"
	"github.com/lacomanda/comanda-backend/pkg/redis"
)

type boardStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	BoardKey(locationID string) string
}

// BoardCache keeps a short-lived per-location snapshot of the board so
// a wall of polling displays does not hammer the database. Every cache
// failure degrades to a plain read.
type BoardCache struct {
	store boardStore
	ttl   time.Duration
	logg  *logger.Logger
}

// NewBoardCache wires a board cache over the shared redis client.
func NewBoardCache(store boardStore, ttl time.Duration, logg *logger.Logger) *BoardCache {
	if store == nil {
		return nil
	}
	return &BoardCache{store: store, ttl: ttl, logg: logg}
}

func (c *BoardCache) Get(ctx context.Context, locationID uuid.UUID) ([]BoardOrder, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, c.store.BoardKey(locationID.String()))
	if err != nil {
		if !errors.Is(err, redis.ErrCacheMiss) && c.logg != nil {
			c.logg.Warn(ctx, "board cache read failed: "+err.Error())
		}
		return nil, false
	}
	var orders []BoardOrder
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		if c.logg != nil {
			c.logg.Warn(ctx, "board cache payload corrupt, dropping")
		}
		c.InvalidateBoard(ctx, locationID)
		return nil, false
	}
	return orders, true
}

func (c *BoardCache) Set(ctx context.Context, locationID uuid.UUID, orders []BoardOrder) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(orders)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, c.store.BoardKey(locationID.String()), payload, c.ttl); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "board cache write failed: "+err.Error())
	}
}

// InvalidateBoard drops the snapshot after a lifecycle transition so
// the next poll reflects the new state immediately.
func (c *BoardCache) InvalidateBoard(ctx context.Context, locationID uuid.UUID) {
	if c == nil {
		return
	}
	if err := c.store.Del(ctx, c.store.BoardKey(locationID.String())); err != nil && c.logg != nil {
		c.logg.Warn(ctx, "board cache invalidation failed: "+err.Error())
	}
}
