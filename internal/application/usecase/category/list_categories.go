package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID uuid.UUID
}

// ListCategoriesOutput holds the categories in display order.
type ListCategoriesOutput struct {
	Categories []entity.Category
}

// ListCategoriesUseCase lists a user's categories.
type ListCategoriesUseCase struct {
	sessions *session.Store
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(sessions *session.Store) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{sessions: sessions}
}

// Execute lists the categories.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	var out ListCategoriesOutput
	err := uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		out.Categories = append([]entity.Category{}, facts.Categories...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
