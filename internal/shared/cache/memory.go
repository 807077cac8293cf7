package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory is an in-process Cache used when Redis is not configured and in tests.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry

	// now is swappable so tests can control TTL expiry.
	now func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemory constructs an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// NewMemoryWithClock constructs a Memory whose TTL expiry follows the given clock.
func NewMemoryWithClock(now func() time.Time) *Memory {
	m := NewMemory()
	if now != nil {
		m.now = now
	}
	return m
}

// GetJSON unmarshals the entry for key into out. Expired entries count as misses.
func (m *Memory) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return false, nil
	}
	if err := json.Unmarshal(entry.data, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key with the given TTL. A non-positive TTL means no expiry.
func (m *Memory) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	entry := memoryEntry{data: b}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes the entry for key.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

var _ Cache = (*Memory)(nil)
