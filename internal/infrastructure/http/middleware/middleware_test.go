package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/internal/infrastructure/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubValidator struct {
	principal *security.Principal
	err       error
}

func (s stubValidator) ValidateToken(ctx context.Context, token string) (*security.Principal, error) {
	if token != "good" {
		if s.err != nil {
			return nil, s.err
		}
		return nil, security.ErrInvalidToken
	}
	return s.principal, nil
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	validator := stubValidator{principal: &security.Principal{UserID: userID}}

	var seen uuid.UUID
	handler := Authenticate(validator, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name    string
		header  string
		status  int
		message string
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized, message: "Authorization header required"},
		{name: "wrong scheme", header: "Basic abc", status: http.StatusUnauthorized, message: "Invalid authorization header format"},
		{name: "bad token", header: "Bearer nope", status: http.StatusUnauthorized, message: "Invalid or expired token"},
		{name: "good token", header: "Bearer good", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.message != "" {
				assert.Equal(t, tt.message, errorBody(t, rec))
			}
		})
	}

	assert.Equal(t, userID, seen)
}

func TestAuthenticateRevoked(t *testing.T) {
	handler := Authenticate(stubValidator{err: security.ErrTokenRevoked}, zap.NewNop())(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer revoked")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token has been revoked", errorBody(t, rec))
}

type fixedLimiter struct {
	allow bool
	keys  []string
}

func (l *fixedLimiter) Allow(key string) (bool, time.Duration) {
	l.keys = append(l.keys, key)
	if l.allow {
		return true, 0
	}
	return false, 1500 * time.Millisecond
}

func TestRateLimit(t *testing.T) {
	// Arrange
	userID := uuid.New()
	limiter := &fixedLimiter{}
	handler := RateLimit(limiter, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/import", nil)
	req = req.WithContext(WithPrincipal(req.Context(), &security.Principal{UserID: userID}))
	rec := httptest.NewRecorder()

	// Act
	handler.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, "Rate limit exceeded", errorBody(t, rec))
	assert.Equal(t, []string{"user:" + userID.String()}, limiter.keys)

	limiter.allow = true
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecovery(t *testing.T) {
	handler := Recovery(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", errorBody(t, rec))
}

func TestCORS(t *testing.T) {
	handler := CORS([]string{"https://kitchen.example"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recipes", nil)
	req.Header.Set("Origin", "https://kitchen.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://kitchen.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
