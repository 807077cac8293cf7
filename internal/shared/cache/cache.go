package cache

import (
	"context"
	"time"
)

// Cache is a key-value store holding serialized read results with TTL expiry
// and explicit invalidation. It is never authoritative: the database is the
// source of truth and every entry is an expendable projection of it.
type Cache interface {
	// GetJSON unmarshals the entry for key into out. The boolean reports a hit.
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	// SetJSON marshals value and stores it under key with the given TTL.
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes the entry for key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
