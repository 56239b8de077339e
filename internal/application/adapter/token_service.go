// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccessToken is a signed bearer token and its expiry.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// TokenClaims represents the claims contained in a JWT token.
type TokenClaims struct {
	UserID    uuid.UUID
	Username  string
	ExpiresAt time.Time
}

// TokenService defines the interface for JWT token operations.
type TokenService interface {
	// GenerateAccessToken issues a bearer token for the user.
	GenerateAccessToken(ctx context.Context, userID uuid.UUID, username string) (*AccessToken, error)

	// ValidateAccessToken validates an access token and returns its claims.
	ValidateAccessToken(ctx context.Context, token string) (*TokenClaims, error)
}
