package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Username string
	Password string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken *adapter.AccessToken
	User        *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user login. Unknown usernames and wrong passwords
// produce the same error.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	username := NormalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"username and password are required",
			domainerror.ErrInvalidCredentials,
		)
	}

	user, err := uc.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalidCredentials()
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginUserOutput{
		AccessToken: token,
		User:        user,
	}, nil
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid username or password",
		domainerror.ErrInvalidCredentials,
	)
}
