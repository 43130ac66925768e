package security

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig defines a token bucket per key
type RateLimitConfig struct {
	RequestsPerMinute int
	Burst             int
	// IdleTTL is how long an unused bucket is kept before it is dropped
	IdleTTL time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedRateLimiter keeps one limiter per key, typically a user id
type KeyedRateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	now     func() time.Time
}

// NewKeyedRateLimiter creates a limiter. A non-positive rate disables limiting.
func NewKeyedRateLimiter(cfg RateLimitConfig) *KeyedRateLimiter {
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	idle := cfg.IdleTTL
	if idle <= 0 {
		idle = 10 * time.Minute
	}

	return &KeyedRateLimiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		burst:   burst,
		idleTTL: idle,
		now:     time.Now,
	}
}

// Allow reports whether the key may proceed now and, if not, how long to wait
func (l *KeyedRateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	reservation := b.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, 0
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// evict drops idle buckets; callers hold the lock
func (l *KeyedRateLimiter) evict(now time.Time) {
	for key, b := range l.buckets {
		if now.Sub(b.lastSeen) > l.idleTTL {
			delete(l.buckets, key)
		}
	}
}
