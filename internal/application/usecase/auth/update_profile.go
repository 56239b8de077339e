package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

// UpdateProfileInput represents the input for a profile update.
type UpdateProfileInput struct {
	UserID   uuid.UUID
	Name     string
	Username string
}

// UpdateProfileOutput carries the updated user and a token for the new username.
type UpdateProfileOutput struct {
	AccessToken *adapter.AccessToken
	User        *entity.User
}

// UpdateProfileUseCase renames a user.
type UpdateProfileUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute performs the profile update.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*UpdateProfileOutput, error) {
	name := strings.TrimSpace(input.Name)
	username := NormalizeUsername(input.Username)
	if name == "" || username == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"name and username are required",
			domainerror.ErrNameRequired,
		)
	}
	if err := validateUsername(username); err != nil {
		return nil, err
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "user not found", err)
	}

	if username != user.Username {
		exists, err := uc.userRepo.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username existence: %w", err)
		}
		if exists {
			return nil, usernameTaken()
		}
	}

	user.Name = name
	user.Username = username
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, domainerror.ErrUsernameAlreadyExists) {
			return nil, usernameTaken()
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &UpdateProfileOutput{
		AccessToken: token,
		User:        user,
	}, nil
}
