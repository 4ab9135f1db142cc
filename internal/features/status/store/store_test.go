package store

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aouiniamine/bookmarks/internal/cache"
	"github.com/aouiniamine/bookmarks/internal/features/status/view"
)

var done = view.Snapshot{
	State: view.DisplayState{Message: "pong"},
	Phase: view.PhaseSuccess,
}

func TestMemory_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(time.Minute)

	_, err := m.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, "a", done))
	got, err := m.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, done, got)

	require.NoError(t, m.Delete(ctx, "a"))
	_, err = m.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, m.Ping(ctx))
}

func TestMemory_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(time.Minute)
	m.now = func() time.Time { return now }

	require.NoError(t, m.Save(ctx, "old", done))
	now = now.Add(2 * time.Minute)

	_, err := m.Load(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Save(ctx, "a", done))
	now = now.Add(2 * time.Minute)
	require.NoError(t, m.Save(ctx, "b", done))
	assert.Equal(t, 1, m.Len())
}

// Runs against a real server when REDIS_TEST_ADDR is set, e.g. localhost:6379.
func TestRedis_SaveLoadDelete(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	host, port, err := net.SplitHostPort(addr)
	require.NoError(t, err)

	ctx := context.Background()
	c, err := cache.NewRedis(ctx, cache.RedisConfig{Host: host, Port: port, Prefix: "bookmarks-test:"})
	require.NoError(t, err)
	defer c.Close()

	r := NewRedis(c, time.Minute)
	id := uuid.NewString()

	require.NoError(t, r.Ping(ctx))
	require.NoError(t, r.Save(ctx, id, done))

	got, err := r.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, done, got)

	require.NoError(t, r.Delete(ctx, id))
	_, err = r.Load(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}
