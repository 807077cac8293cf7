package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySetGetRoundTrip(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	type payload struct {
		Company string `json:"company"`
		Count   int    `json:"count"`
	}

	require.NoError(t, c.SetJSON(ctx, "jobs:user-1", payload{Company: "Acme", Count: 3}, time.Minute))

	var got payload
	hit, err := c.GetJSON(ctx, "jobs:user-1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, payload{Company: "Acme", Count: 3}, got)
}

func TestMemoryMissOnAbsentKey(t *testing.T) {
	c := NewMemory()

	var got map[string]any
	hit, err := c.GetJSON(context.Background(), "jobs:nobody", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestMemoryEntryExpiresAfterTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "resumes:user-1", []string{"v1"}, 10*time.Minute))

	var got []string
	hit, err := c.GetJSON(ctx, "resumes:user-1", &got)
	require.NoError(t, err)
	assert.True(t, hit, "entry should be fresh before TTL")

	now = now.Add(10*time.Minute + time.Second)
	hit, err = c.GetJSON(ctx, "resumes:user-1", &got)
	require.NoError(t, err)
	assert.False(t, hit, "entry should be gone after TTL")
}

func TestMemoryDeleteInvalidates(t *testing.T) {
	c := NewMemory()
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "jobs:user-1", []string{"a"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "jobs:user-1"))

	var got []string
	hit, err := c.GetJSON(ctx, "jobs:user-1", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	// Deleting an absent key is not an error.
	require.NoError(t, c.Delete(ctx, "jobs:user-1"))
}
