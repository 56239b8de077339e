package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/application/session"
)

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID uuid.UUID
}

// DeleteAccountUseCase removes a user and every fact they own.
type DeleteAccountUseCase struct {
	userRepo adapter.UserRepository
	factRepo adapter.FactRepository
	sessions *session.Store
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	userRepo adapter.UserRepository,
	factRepo adapter.FactRepository,
	sessions *session.Store,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userRepo: userRepo,
		factRepo: factRepo,
		sessions: sessions,
	}
}

// Execute performs the account deletion.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if err := uc.factRepo.DeleteAll(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete user facts: %w", err)
	}
	if err := uc.userRepo.Delete(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	uc.sessions.Forget(input.UserID)
	return nil
}
