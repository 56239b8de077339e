package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	Name     string
	Username string
	Password string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken *adapter.AccessToken
	User        *entity.User
	Facts       *entity.FactStore
}

// RegisterUserUseCase handles user registration and the bootstrap of the
// new account's default facts.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	now             func() time.Time
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		now:             time.Now,
	}
}

// WithClock overrides the clock used to place the first semester.
func (uc *RegisterUserUseCase) WithClock(now func() time.Time) *RegisterUserUseCase {
	uc.now = now
	return uc
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	name := strings.TrimSpace(input.Name)
	username := NormalizeUsername(input.Username)
	if name == "" || username == "" || input.Password == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"name, username and password are required",
			domainerror.ErrNameRequired,
		)
	}

	if err := validateUsername(username); err != nil {
		return nil, err
	}

	// Validate password strength
	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password must be at least 6 characters",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, usernameTaken()
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, name, passwordHash)
	facts := entity.BootstrapFactStore(user.ID, uc.now())
	if err := uc.userRepo.CreateWithFacts(ctx, user, facts); err != nil {
		// a concurrent registration won the unique index
		if errors.Is(err, domainerror.ErrUsernameAlreadyExists) {
			return nil, usernameTaken()
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &RegisterUserOutput{
		AccessToken: token,
		User:        user,
		Facts:       facts,
	}, nil
}
