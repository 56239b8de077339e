package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 0).(*tokenService)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(ctx, userID, "budi")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if d := time.Until(token.ExpiresAt); d < 29*24*time.Hour {
		t.Errorf("expected a 30 day token, expires in %s", d)
	}

	claims, err := svc.ValidateAccessToken(ctx, token.Token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID || claims.Username != "budi" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestTokenService_Rejections(t *testing.T) {
	ctx := context.Background()
	issuer := NewTokenService("secret", time.Hour).(*tokenService)
	token, err := issuer.GenerateAccessToken(ctx, uuid.New(), "budi")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		svc      *tokenService
		token    string
		expected error
	}{
		{"garbage", issuer, "not-a-token", domainerror.ErrInvalidToken},
		{"other secret", NewTokenService("other", time.Hour).(*tokenService), token.Token, domainerror.ErrInvalidToken},
		{"expired", &tokenService{secret: []byte("secret"), duration: time.Hour, now: func() time.Time { return time.Now().Add(2 * time.Hour) }}, token.Token, domainerror.ErrExpiredToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.svc.ValidateAccessToken(ctx, tt.token)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	hash, err := svc.HashPassword("secret1")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.VerifyPassword(hash, "secret1"); err != nil {
		t.Errorf("expected password to verify: %v", err)
	}
	if err := svc.VerifyPassword(hash, "secret2"); err == nil {
		t.Error("expected mismatch")
	}
	if err := svc.ValidatePasswordStrength("12345"); err == nil {
		t.Error("expected a 5 character password to be rejected")
	}
	if err := svc.ValidatePasswordStrength("123456"); err != nil {
		t.Errorf("expected a 6 character password to pass: %v", err)
	}
}
