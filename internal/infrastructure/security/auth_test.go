package security

import (
	"context"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/internal/infrastructure/persistence/memory"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const testSecret = "test-secret-key-for-testing-only-32-bytes"

// TokenVerifierTestSuite provides a test suite for TokenVerifier
type TokenVerifierTestSuite struct {
	suite.Suite
	cache    *memory.CacheRepository
	verifier *TokenVerifier
	userID   uuid.UUID
}

func (s *TokenVerifierTestSuite) SetupTest() {
	s.cache = memory.NewCacheRepository(time.Minute)
	s.verifier = NewTokenVerifier(AuthConfig{
		JWTSecret: testSecret,
		Issuer:    "kitchen-idp",
	}, s.cache, zap.NewNop())
	s.userID = uuid.New()
}

func (s *TokenVerifierTestSuite) TearDownTest() {
	s.cache.Close()
}

func (s *TokenVerifierTestSuite) sign(claims *Claims, secret string) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	s.Require().NoError(err)
	return token
}

func (s *TokenVerifierTestSuite) claims(expiresIn time.Duration) *Claims {
	now := time.Now()
	return &Claims{
		UserID:    s.userID.String(),
		Email:     "cook@example.com",
		Roles:     []string{"user"},
		TokenType: AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "kitchen-idp",
			Subject:   s.userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
}

func (s *TokenVerifierTestSuite) TestValidToken() {
	// Arrange
	token := s.sign(s.claims(time.Hour), testSecret)

	// Act
	principal, err := s.verifier.ValidateToken(context.Background(), token)

	// Assert
	s.Require().NoError(err)
	s.Equal(s.userID, principal.UserID)
	s.Equal("cook@example.com", principal.Email)
	s.Equal([]string{"user"}, principal.Roles)
}

func (s *TokenVerifierTestSuite) TestRejectedTokens() {
	wrongIssuer := s.claims(time.Hour)
	wrongIssuer.Issuer = "someone-else"

	refresh := s.claims(time.Hour)
	refresh.TokenType = RefreshToken

	noExpiry := s.claims(time.Hour)
	noExpiry.ExpiresAt = nil

	badSubject := s.claims(time.Hour)
	badSubject.UserID = "not-a-uuid"

	cases := map[string]string{
		"expired":       s.sign(s.claims(-time.Hour), testSecret),
		"wrong secret":  s.sign(s.claims(time.Hour), "another-secret-another-secret-123"),
		"wrong issuer":  s.sign(wrongIssuer, testSecret),
		"refresh token": s.sign(refresh, testSecret),
		"no expiry":     s.sign(noExpiry, testSecret),
		"bad subject":   s.sign(badSubject, testSecret),
		"garbage":       "not.a.token",
	}

	for name, token := range cases {
		s.Run(name, func() {
			_, err := s.verifier.ValidateToken(context.Background(), token)
			s.ErrorIs(err, ErrInvalidToken)
		})
	}
}

func (s *TokenVerifierTestSuite) TestRejectsOtherAlgorithms() {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, s.claims(time.Hour)).SignedString([]byte(testSecret))
	s.Require().NoError(err)

	_, err = s.verifier.ValidateToken(context.Background(), token)

	s.ErrorIs(err, ErrInvalidToken)
}

func (s *TokenVerifierTestSuite) TestRevokedToken() {
	// Arrange
	claims := s.claims(time.Hour)
	token := s.sign(claims, testSecret)
	s.Require().NoError(s.verifier.RevokeToken(context.Background(), claims.ID, time.Hour))

	// Act
	_, err := s.verifier.ValidateToken(context.Background(), token)

	// Assert
	s.ErrorIs(err, ErrTokenRevoked)
}

func (s *TokenVerifierTestSuite) TestSubjectFallback() {
	claims := s.claims(time.Hour)
	claims.UserID = ""

	principal, err := s.verifier.ValidateToken(context.Background(), s.sign(claims, testSecret))

	s.Require().NoError(err)
	s.Equal(s.userID, principal.UserID)
}

func TestTokenVerifierTestSuite(t *testing.T) {
	suite.Run(t, new(TokenVerifierTestSuite))
}
