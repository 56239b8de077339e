package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

// ChangePasswordInput represents the input for a password change.
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// ChangePasswordUseCase replaces a user's password after verifying the old one.
type ChangePasswordUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewChangePasswordUseCase creates a new ChangePasswordUseCase instance.
func NewChangePasswordUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *ChangePasswordUseCase {
	return &ChangePasswordUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute performs the password change.
func (uc *ChangePasswordUseCase) Execute(ctx context.Context, input ChangePasswordInput) error {
	if input.OldPassword == "" || input.NewPassword == "" {
		return domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"old and new password are required",
			domainerror.ErrWeakPassword,
		)
	}
	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"new password must be at least 6 characters",
			domainerror.ErrWeakPassword,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.OldPassword); err != nil {
		return domainerror.NewAuthError(
			domainerror.ErrCodeWrongPassword,
			"current password is incorrect",
			domainerror.ErrWrongPassword,
		)
	}

	hash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
