package income

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// DeleteIncomeInput represents the input for removing an income entry.
type DeleteIncomeInput struct {
	UserID   uuid.UUID
	IncomeID uuid.UUID
}

// DeleteIncomeUseCase removes an income entry. Unknown ids are ignored.
type DeleteIncomeUseCase struct {
	sessions *session.Store
}

// NewDeleteIncomeUseCase creates a new DeleteIncomeUseCase instance.
func NewDeleteIncomeUseCase(sessions *session.Store) *DeleteIncomeUseCase {
	return &DeleteIncomeUseCase{sessions: sessions}
}

// Execute performs the deletion.
func (uc *DeleteIncomeUseCase) Execute(ctx context.Context, input DeleteIncomeInput) error {
	return uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		return facts.DeleteIncome(input.IncomeID), nil
	})
}
