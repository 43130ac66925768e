// Package healthcheck provides health and readiness check functionality
// Following the Health Check API pattern for cloud-native applications
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check represents a health check
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"-"`
}

// Response represents the health check response
type Response struct {
	Status        Status        `json:"status"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"-"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// HealthCheck manages health checks
type HealthCheck struct {
	version  string
	checkers map[string]Checker
	logger   *zap.Logger
	mu       sync.RWMutex
	cache    *Response
	cacheTTL time.Duration
	timeout  time.Duration
}

// New creates a new health check instance
func New(version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		version:  version,
		checkers: make(map[string]Checker),
		logger:   logger,
		cacheTTL: 5 * time.Second,
		timeout:  5 * time.Second,
	}
}

// Register registers a health checker
func (h *HealthCheck) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
	h.cache = nil
}

// SetCacheTTL sets the cache TTL for health check responses
func (h *HealthCheck) SetCacheTTL(ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheTTL = ttl
}

// LivenessHandler answers as long as the process can serve HTTP
func (h *HealthCheck) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "alive",
			"version":   h.version,
			"timestamp": time.Now().UTC(),
		})
	}
}

// ReadinessHandler runs every checker. Degraded dependencies still count as
// ready; an unhealthy one does not.
func (h *HealthCheck) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := h.Check(r.Context())

		status := http.StatusOK
		if response.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
			h.logger.Warn("Readiness check failed", zap.Any("checks", response.Checks))
		}
		writeJSON(w, status, response)
	}
}

// Check performs all health checks
func (h *HealthCheck) Check(ctx context.Context) Response {
	h.mu.RLock()
	if h.cache != nil && time.Since(h.cache.Timestamp) < h.cacheTTL {
		cached := *h.cache
		h.mu.RUnlock()
		return cached
	}
	checkers := make(map[string]Checker, len(h.checkers))
	for name, checker := range h.checkers {
		checkers[name] = checker
	}
	h.mu.RUnlock()

	start := time.Now()
	response := Response{
		Version:   h.version,
		Timestamp: start,
		Status:    StatusHealthy,
		Checks:    make([]Check, 0, len(checkers)),
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var wg sync.WaitGroup
	checksChan := make(chan Check, len(checkers))
	for name, checker := range checkers {
		wg.Add(1)
		go func(n string, c Checker) {
			defer wg.Done()
			check := c.Check(checkCtx)
			check.Name = n
			checksChan <- check
		}(name, checker)
	}
	wg.Wait()
	close(checksChan)

	for check := range checksChan {
		response.Checks = append(response.Checks, check)

		if check.Status == StatusUnhealthy {
			response.Status = StatusUnhealthy
		} else if check.Status == StatusDegraded && response.Status == StatusHealthy {
			response.Status = StatusDegraded
		}
	}
	sort.Slice(response.Checks, func(i, j int) bool {
		return response.Checks[i].Name < response.Checks[j].Name
	})

	response.TotalDuration = time.Since(start)

	h.mu.Lock()
	h.cache = &response
	h.mu.Unlock()

	return response
}

// PingChecker reports a dependency healthy when its ping succeeds
type PingChecker struct {
	ping func(ctx context.Context) error
}

// NewPingChecker creates a checker around a ping function
func NewPingChecker(ping func(ctx context.Context) error) *PingChecker {
	return &PingChecker{ping: ping}
}

// Check performs the ping
func (p *PingChecker) Check(ctx context.Context) Check {
	start := time.Now()
	err := p.ping(ctx)

	check := Check{
		Status:      StatusHealthy,
		LastChecked: start,
		Duration:    time.Since(start),
	}
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
	}
	return check
}

// CustomChecker allows for custom health check logic
type CustomChecker struct {
	check func(ctx context.Context) (Status, string)
}

// NewCustomChecker creates a new custom checker
func NewCustomChecker(check func(ctx context.Context) (Status, string)) *CustomChecker {
	return &CustomChecker{check: check}
}

// Check performs custom health check
func (c *CustomChecker) Check(ctx context.Context) Check {
	start := time.Now()
	status, message := c.check(ctx)

	return Check{
		Status:      status,
		Message:     message,
		LastChecked: start,
		Duration:    time.Since(start),
	}
}

// MarshalJSON customizes JSON marshaling for duration
func (c Check) MarshalJSON() ([]byte, error) {
	type Alias Check
	return json.Marshal(&struct {
		Duration float64 `json:"duration_ms"`
		Alias
	}{
		Duration: float64(c.Duration.Microseconds()) / 1000,
		Alias:    Alias(c),
	})
}

// MarshalJSON customizes JSON marshaling for response
func (r Response) MarshalJSON() ([]byte, error) {
	type Alias Response
	return json.Marshal(&struct {
		TotalDuration float64 `json:"total_duration_ms"`
		Alias
	}{
		TotalDuration: float64(r.TotalDuration.Microseconds()) / 1000,
		Alias:         Alias(r),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
