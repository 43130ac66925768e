// Package security verifies bearer tokens issued by the identity provider
package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrInvalidToken covers malformed, expired and badly signed tokens
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrTokenRevoked is returned for tokens on the revocation list
	ErrTokenRevoked = errors.New("token has been revoked")
)

// TokenType represents different types of JWT tokens
type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

// Claims represents JWT claims structure
type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// Principal is the authenticated caller
type Principal struct {
	UserID  uuid.UUID
	Email   string
	Roles   []string
	TokenID string
}

// AuthConfig holds token verification settings
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
	Leeway    time.Duration
}

// TokenVerifier validates HS256 access tokens. Revocation is checked against
// the cache when one is configured.
type TokenVerifier struct {
	secret     []byte
	parser     *jwt.Parser
	revocation outbound.CacheRepository
	logger     *zap.Logger
}

// NewTokenVerifier creates a new verifier
func NewTokenVerifier(cfg AuthConfig, revocation outbound.CacheRepository, logger *zap.Logger) *TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &TokenVerifier{
		secret:     []byte(cfg.JWTSecret),
		parser:     jwt.NewParser(opts...),
		revocation: revocation,
		logger:     logger.Named("auth"),
	}
}

// ValidateToken validates and parses an access token
func (v *TokenVerifier) ValidateToken(ctx context.Context, tokenString string) (*Principal, error) {
	claims := &Claims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.TokenType != "" && claims.TokenType != AccessToken {
		return nil, fmt.Errorf("%w: expected %s token, got %s", ErrInvalidToken, AccessToken, claims.TokenType)
	}

	subject := claims.UserID
	if subject == "" {
		subject = claims.Subject
	}
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
	}

	if revoked, err := v.isTokenRevoked(ctx, claims.ID); err != nil {
		v.logger.Warn("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, ErrTokenRevoked
	}

	return &Principal{
		UserID:  userID,
		Email:   claims.Email,
		Roles:   claims.Roles,
		TokenID: claims.ID,
	}, nil
}

// RevokeToken puts a token id on the revocation list until it would have expired anyway
func (v *TokenVerifier) RevokeToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	if v.revocation == nil {
		return errors.New("token revocation is not configured")
	}
	return v.revocation.Set(ctx, revokedKey(tokenID), []byte("revoked"), ttl)
}

func (v *TokenVerifier) isTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	if v.revocation == nil || tokenID == "" {
		return false, nil
	}
	return v.revocation.Exists(ctx, revokedKey(tokenID))
}

func revokedKey(tokenID string) string {
	return "revoked_token:" + tokenID
}
