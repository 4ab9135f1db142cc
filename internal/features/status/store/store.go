// Package store mirrors status view snapshots by view id so that any web
// replica can render a view it did not mount.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aouiniamine/bookmarks/internal/features/status/view"
)

var ErrNotFound = errors.New("view snapshot not found")

type Store interface {
	Save(ctx context.Context, id string, snap view.Snapshot) error
	Load(ctx context.Context, id string) (view.Snapshot, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

type memoryEntry struct {
	snap      view.Snapshot
	expiresAt time.Time
}

type Memory struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]memoryEntry
}

var _ Store = (*Memory)(nil)

func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]memoryEntry),
	}
}

func (m *Memory) Save(_ context.Context, id string, snap view.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[id] = memoryEntry{snap: snap, expiresAt: m.now().Add(m.ttl)}
	m.evictLocked()
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (view.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return view.Snapshot{}, ErrNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return view.Snapshot{}, ErrNotFound
	}
	return e.snap, nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, id)
	return nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) evictLocked() {
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}
