package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	UserID     uuid.UUID
	CategoryID uuid.UUID
}

// DeleteCategoryUseCase removes a category. Its historical cells are kept or
// scrubbed according to the configured orphan policy.
type DeleteCategoryUseCase struct {
	sessions *session.Store
	policy   entity.OrphanPolicy
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(sessions *session.Store, policy entity.OrphanPolicy) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		sessions: sessions,
		policy:   policy,
	}
}

// Execute performs the category deletion. Unknown ids are ignored.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	return uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		return facts.DeleteCategory(input.CategoryID, uc.policy), nil
	})
}
