package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestLimiterStore_ReusesBucketPerKey(t *testing.T) {
	store := NewLimiterStore(rate.Limit(1), 1)

	a := store.limiter("EURUSD")
	b := store.limiter("EURUSD")
	c := store.limiter("GBPUSD")
	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestLimiterStore_AllowDrainsBurst(t *testing.T) {
	store := NewLimiterStore(rate.Limit(0.001), 2)

	assert.True(t, store.Allow("EURUSD"))
	assert.True(t, store.Allow("EURUSD"))
	assert.False(t, store.Allow("EURUSD"), "burst spent, refill is far away")
	assert.True(t, store.Allow("GBPUSD"), "keys do not share buckets")
}
