package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedRateLimiterPerKey(t *testing.T) {
	// Arrange
	limiter := NewKeyedRateLimiter(RateLimitConfig{RequestsPerMinute: 6, Burst: 2})
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	// Act / Assert
	ok, _ := limiter.Allow("alice")
	assert.True(t, ok)
	ok, _ = limiter.Allow("alice")
	assert.True(t, ok)

	ok, wait := limiter.Allow("alice")
	assert.False(t, ok)
	assert.InDelta(t, 10*time.Second, wait, float64(time.Second))

	ok, _ = limiter.Allow("bob")
	assert.True(t, ok, "buckets are independent per key")

	now = now.Add(10 * time.Second)
	ok, _ = limiter.Allow("alice")
	assert.True(t, ok, "one token refills every ten seconds")
}

func TestKeyedRateLimiterDisabled(t *testing.T) {
	limiter := NewKeyedRateLimiter(RateLimitConfig{})

	for i := 0; i < 100; i++ {
		ok, _ := limiter.Allow("alice")
		assert.True(t, ok)
	}
}

func TestKeyedRateLimiterEvictsIdleBuckets(t *testing.T) {
	limiter := NewKeyedRateLimiter(RateLimitConfig{RequestsPerMinute: 1, Burst: 1, IdleTTL: time.Minute})
	now := time.Now()
	limiter.now = func() time.Time { return now }

	limiter.Allow("alice")
	assert.Len(t, limiter.buckets, 1)

	now = now.Add(2 * time.Minute)
	limiter.Allow("bob")

	assert.Len(t, limiter.buckets, 1)
	assert.Contains(t, limiter.buckets, "bob")
}
