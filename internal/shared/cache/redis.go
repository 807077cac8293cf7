package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomlhennessy/job-tracker/internal/shared/telemetry"
)

// Redis implements Cache on a Redis server. If the server is unreachable at
// construction time the instance degrades to a permanent bypass: every read
// is a miss and writes are dropped, so callers fall through to the database.
type Redis struct {
	client *redis.Client

	warnedUnavailable atomic.Bool
}

// NewRedis connects to the given address and verifies connectivity.
// A nil-client (bypassing) instance is returned when Redis is unreachable.
func NewRedis(addr, password string) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		telemetry.Warn("cache.unavailable", map[string]any{"addr": addr, "error": err.Error()})
		_ = client.Close()
		return &Redis{client: nil}
	}

	return &Redis{client: client}
}

func (r *Redis) isUnavailable() bool {
	return r == nil || r.client == nil
}

func (r *Redis) warnUnavailableOnce(err error) {
	if r == nil {
		return
	}
	if r.warnedUnavailable.CompareAndSwap(false, true) {
		telemetry.Warn("cache.unavailable", map[string]any{"error": err.Error()})
	}
}

// GetJSON unmarshals the entry for key into out.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.isUnavailable() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		r.warnUnavailableOnce(err)
		return false, err
	}
	if len(b) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key with the given TTL.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.isUnavailable() {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

// Delete removes the entry for key.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.isUnavailable() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.warnUnavailableOnce(err)
		return err
	}
	return nil
}

var _ Cache = (*Redis)(nil)
