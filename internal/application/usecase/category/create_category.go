// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	UserID uuid.UUID
	Emoji  string // Optional, defaults to DefaultCategoryEmoji
	Name   string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	sessions *session.Store
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(sessions *session.Store) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		sessions: sessions,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	if utf8.RuneCountInString(input.Name) > MaxCategoryNameLength {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidRequest,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			nil,
		)
	}

	var created entity.Category
	err := uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		op, err := facts.AddCategory(input.Emoji, input.Name)
		if err != nil {
			return nil, err
		}
		created = op.Category
		return op, nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateCategoryOutput{
		Category: created,
	}, nil
}
