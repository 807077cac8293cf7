package middleware

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsBurstThenBlocks(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 2}

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("user-1|AI", rule)
		if !allowed {
			t.Fatalf("request %d within burst should be allowed", i)
		}
	}

	allowed, retryAfter := limiter.Allow("user-1|AI", rule)
	if allowed {
		t.Fatal("request beyond burst should be blocked")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %v", retryAfter)
	}
}

func TestRateLimiterRefillsOverTime(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("user-1|AI", rule); !allowed {
		t.Fatal("first request should be allowed")
	}
	if allowed, _ := limiter.Allow("user-1|AI", rule); allowed {
		t.Fatal("second immediate request should be blocked")
	}

	now = now.Add(2 * time.Second)
	if allowed, _ := limiter.Allow("user-1|AI", rule); !allowed {
		t.Fatal("request after refill should be allowed")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 1, Burst: 1}

	if allowed, _ := limiter.Allow("user-1|AI", rule); !allowed {
		t.Fatal("user-1 first request should be allowed")
	}
	if allowed, _ := limiter.Allow("user-2|AI", rule); !allowed {
		t.Fatal("user-2 should not be affected by user-1's bucket")
	}
}
