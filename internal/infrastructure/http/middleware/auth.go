package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/alchemorsel/kitchen/internal/infrastructure/security"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey string

const principalKey contextKey = "principal"

// TokenValidator verifies a bearer token
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (*security.Principal, error)
}

// Authenticate requires a valid bearer token and stores the caller in the context
func Authenticate(validator TokenValidator, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "Authorization header required")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			principal, err := validator.ValidateToken(r.Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Info("Token validation failed",
					zap.Error(err),
					zap.String("remote_addr", r.RemoteAddr),
				)
				message := "Invalid or expired token"
				if errors.Is(err, security.ErrTokenRevoked) {
					message = "Token has been revoked"
				}
				writeError(w, http.StatusUnauthorized, message)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
		})
	}
}

// WithPrincipal stores the authenticated caller in the context
func WithPrincipal(ctx context.Context, principal *security.Principal) context.Context {
	return context.WithValue(ctx, principalKey, principal)
}

// PrincipalFromContext returns the authenticated caller
func PrincipalFromContext(ctx context.Context) (*security.Principal, bool) {
	principal, ok := ctx.Value(principalKey).(*security.Principal)
	return principal, ok && principal != nil
}

// UserIDFromContext extracts the user ID from the request context
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return principal.UserID, true
}
