package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aouiniamine/bookmarks/internal/cache"
	"github.com/aouiniamine/bookmarks/internal/features/status/view"
)

const keyPrefix = "status-view:"

// Redis keeps snapshots as JSON strings that expire with the view.
type Redis struct {
	cache *cache.Redis
	ttl   time.Duration
}

var _ Store = (*Redis)(nil)

func NewRedis(c *cache.Redis, ttl time.Duration) *Redis {
	return &Redis{cache: c, ttl: ttl}
}

func (r *Redis) Save(ctx context.Context, id string, snap view.Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return r.cache.Set(ctx, keyPrefix+id, raw, r.ttl)
}

func (r *Redis) Load(ctx context.Context, id string) (view.Snapshot, error) {
	raw, err := r.cache.Get(ctx, keyPrefix+id)
	if errors.Is(err, cache.ErrMiss) {
		return view.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return view.Snapshot{}, err
	}

	var snap view.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return view.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (r *Redis) Delete(ctx context.Context, id string) error {
	return r.cache.Delete(ctx, keyPrefix+id)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.cache.Ping(ctx)
}
