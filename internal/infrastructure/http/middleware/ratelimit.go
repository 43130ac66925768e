package middleware

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Limiter decides whether a key may proceed
type Limiter interface {
	Allow(key string) (bool, time.Duration)
}

// RateLimit throttles per authenticated user, falling back to the remote
// address. It must run after Authenticate to see the user.
func RateLimit(limiter Limiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ip:" + r.RemoteAddr
			if userID, ok := UserIDFromContext(r.Context()); ok {
				key = "user:" + userID.String()
			}

			ok, wait := limiter.Allow(key)
			if !ok {
				if wait > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				}
				logger.Warn("Rate limit exceeded",
					zap.String("key", key),
					zap.String("path", r.URL.Path),
				)
				writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
