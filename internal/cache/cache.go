// Package cache provides the keyed query cache shared by the TUI and CLI.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// WebsiteOptionsKey is the cache key of the website list.
const WebsiteOptionsKey = "websiteOptions"

// Entry is a stored cache value.
type Entry struct {
	StoredAt time.Time
	Value    []byte
}

// Store persists cache entries.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, key string, entry Entry) error
	Delete(ctx context.Context, key string) error
}

// Cache layers a TTL over a Store. Values are stored as JSON.
type Cache struct {
	store Store
	now   func() time.Time
	ttl   time.Duration
}

// New creates a cache. A ttl <= 0 disables expiry.
func New(store Store, ttl time.Duration) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Cache{
		store: store,
		ttl:   ttl,
		now:   time.Now,
	}
}

// SetClock replaces the clock used for expiry checks.
func (c *Cache) SetClock(now func() time.Time) {
	c.now = now
}

// TTL returns the configured time to live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get decodes the entry for key into out. It reports false for missing or expired entries.
func (c *Cache) Get(ctx context.Context, key string, out any) (bool, error) {
	entry, ok, err := c.lookup(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(entry.Value, out); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

// Put stores v under key.
func (c *Cache) Put(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	return c.store.Put(ctx, key, Entry{Value: data, StoredAt: c.now()})
}

// Invalidate removes key.
func (c *Cache) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}

// StoredAt returns when the live entry for key was written.
func (c *Cache) StoredAt(ctx context.Context, key string) (time.Time, bool) {
	entry, ok, err := c.lookup(ctx, key)
	if err != nil || !ok {
		return time.Time{}, false
	}
	return entry.StoredAt, true
}

func (c *Cache) lookup(ctx context.Context, key string) (Entry, bool, error) {
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	if !ok || c.expired(entry) {
		return Entry{}, false, nil
	}
	return entry, true, nil
}

func (c *Cache) expired(entry Entry) bool {
	if c.ttl <= 0 {
		return false
	}
	return c.now().Sub(entry.StoredAt) >= c.ttl
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	entries map[string]Entry
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return e, ok, nil
}

// Put implements Store.
func (m *MemoryStore) Put(_ context.Context, key string, entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry
	return nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
