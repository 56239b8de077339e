package facts

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// ClearDataInput represents the input for clearing a user's month records.
type ClearDataInput struct {
	UserID uuid.UUID
}

// ClearDataUseCase removes every month record of a user while keeping
// categories, platforms, portfolios and semesters.
type ClearDataUseCase struct {
	sessions *session.Store
}

// NewClearDataUseCase creates a new ClearDataUseCase instance.
func NewClearDataUseCase(sessions *session.Store) *ClearDataUseCase {
	return &ClearDataUseCase{sessions: sessions}
}

// Execute performs the clear.
func (uc *ClearDataUseCase) Execute(ctx context.Context, input ClearDataInput) error {
	return uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		return facts.ClearAllData(), nil
	})
}
