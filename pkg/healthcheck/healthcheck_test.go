// Package healthcheck unit tests
package healthcheck

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func healthy(ctx context.Context) error { return nil }

func TestNew(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())

	assert.NotNil(t, hc)
	assert.Equal(t, "1.0.0", hc.version)
	assert.Empty(t, hc.checkers)
	assert.Equal(t, 5*time.Second, hc.cacheTTL)
}

func TestHealthCheck_Check_NoCheckers(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())

	response := hc.Check(context.Background())

	assert.Equal(t, StatusHealthy, response.Status)
	assert.Equal(t, "1.0.0", response.Version)
	assert.Empty(t, response.Checks)
}

func TestHealthCheck_Check_AggregatesStatus(t *testing.T) {
	tests := []struct {
		name     string
		checkers map[string]Checker
		expected Status
	}{
		{
			name: "all healthy",
			checkers: map[string]Checker{
				"database": NewPingChecker(healthy),
				"cache":    NewPingChecker(healthy),
			},
			expected: StatusHealthy,
		},
		{
			name: "one degraded",
			checkers: map[string]Checker{
				"database": NewPingChecker(healthy),
				"extractor": NewCustomChecker(func(ctx context.Context) (Status, string) {
					return StatusDegraded, "mock extractor in use"
				}),
			},
			expected: StatusDegraded,
		},
		{
			name: "one unhealthy wins over degraded",
			checkers: map[string]Checker{
				"database": NewPingChecker(func(ctx context.Context) error { return errors.New("connection refused") }),
				"extractor": NewCustomChecker(func(ctx context.Context) (Status, string) {
					return StatusDegraded, ""
				}),
			},
			expected: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := New("1.0.0", zap.NewNop())
			for name, checker := range tt.checkers {
				hc.Register(name, checker)
			}

			response := hc.Check(context.Background())

			assert.Equal(t, tt.expected, response.Status)
			assert.Len(t, response.Checks, len(tt.checkers))
		})
	}
}

func TestHealthCheck_Check_SortedAndNamed(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.Register("redis", NewPingChecker(healthy))
	hc.Register("database", NewPingChecker(func(ctx context.Context) error { return errors.New("down") }))

	response := hc.Check(context.Background())

	require.Len(t, response.Checks, 2)
	assert.Equal(t, "database", response.Checks[0].Name)
	assert.Equal(t, "down", response.Checks[0].Message)
	assert.Equal(t, "redis", response.Checks[1].Name)
}

func TestHealthCheck_Check_Caches(t *testing.T) {
	var calls int32
	hc := New("1.0.0", zap.NewNop())
	hc.Register("database", NewPingChecker(func(ctx context.Context) error {
		atomic.AddInt32(&calls, 1)
		return nil
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	hc.SetCacheTTL(0)
	hc.Check(context.Background())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestReadinessHandler(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.Register("database", NewPingChecker(func(ctx context.Context) error { return errors.New("down") }))

	rec := httptest.NewRecorder()
	hc.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body["status"])
	assert.Contains(t, body, "total_duration_ms")
	checks := body["checks"].([]interface{})
	require.Len(t, checks, 1)
	assert.Contains(t, checks[0], "duration_ms")
}

func TestLivenessHandler(t *testing.T) {
	hc := New("1.0.0", zap.NewNop())
	hc.Register("database", NewPingChecker(func(ctx context.Context) error { return errors.New("down") }))

	rec := httptest.NewRecorder()
	hc.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"alive"`)
}
