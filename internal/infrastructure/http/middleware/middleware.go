// Package middleware provides HTTP middleware components
// following the Chain of Responsibility pattern
package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/infrastructure/monitoring"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// quietPaths are probed constantly and not worth a log line
var quietPaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/metrics": true,
}

// Logger provides structured logging for requests
func Logger(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			if quietPaths[r.URL.Path] {
				return
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote_addr", r.RemoteAddr),
			}
			if userID, ok := UserIDFromContext(r.Context()); ok {
				fields = append(fields, zap.String("user_id", userID.String()))
			}

			switch {
			case status >= 500:
				logger.Error("Server error", fields...)
			case status >= 400:
				logger.Warn("Client error", fields...)
			default:
				logger.Info("Request completed", fields...)
			}
		})
	}
}

// Metrics records request counts and latencies by route pattern
func Metrics(metrics *monitoring.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			metrics.InFlight().Inc()
			defer metrics.InFlight().Dec()

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			metrics.RecordHTTPRequest(r.Method, route, status, time.Since(start))
		})
	}
}

// Recovery recovers from panics and returns a JSON 500
func Recovery(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					logger.Error("Panic recovered",
						zap.String("request_id", chimiddleware.GetReqID(r.Context())),
						zap.Any("error", rec),
						zap.String("stack", string(debug.Stack())),
					)
					writeError(w, http.StatusInternalServerError, "Internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// Security adds security headers for API responses
func Security() func(next http.Handler) http.Handler {
	csp := strings.Join([]string{
		"default-src 'none'",
		"frame-ancestors 'none'",
		"base-uri 'none'",
	}, "; ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", csp)
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CORS adds CORS headers for the configured origins. "*" allows any origin.
func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	allowAny := false
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAny = true
		}
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowAny || allowed[origin]) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError emits the API error body; middleware cannot depend on handlers
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
