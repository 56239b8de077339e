package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

// DefaultAccessTokenDuration is used when no expiry is configured.
const DefaultAccessTokenDuration = 30 * 24 * time.Hour

const tokenIssuer = "pocket-ledger"

// CustomClaims represents the custom claims for JWT tokens.
type CustomClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// tokenService implements the adapter.TokenService interface.
type tokenService struct {
	secret   []byte
	duration time.Duration
	now      func() time.Time
}

// NewTokenService creates a new token service instance.
func NewTokenService(secret string, duration time.Duration) adapter.TokenService {
	if duration <= 0 {
		duration = DefaultAccessTokenDuration
	}
	return &tokenService{
		secret:   []byte(secret),
		duration: duration,
		now:      time.Now,
	}
}

// GenerateAccessToken issues a signed HS256 token for the user.
func (s *tokenService) GenerateAccessToken(_ context.Context, userID uuid.UUID, username string) (*adapter.AccessToken, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.duration)
	claims := CustomClaims{
		UserID:   userID.String(),
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   userID.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &adapter.AccessToken{
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// ValidateAccessToken validates an access token and returns its claims.
// Expired tokens are reported as domainerror.ErrExpiredToken, anything else
// as domainerror.ErrInvalidToken.
func (s *tokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, err := s.parseJWT(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", domainerror.ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", domainerror.ErrInvalidToken, err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID in token", domainerror.ErrInvalidToken)
	}

	return &adapter.TokenClaims{
		UserID:    userID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// parseJWT parses and validates a JWT token.
func (s *tokenService) parseJWT(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
