// Package facts contains use cases working on a user's whole fact set.
package facts

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// LoadFactsInput represents the input for loading every fact of a user.
type LoadFactsInput struct {
	UserID uuid.UUID
}

// LoadFactsUseCase returns a snapshot of the user's facts.
type LoadFactsUseCase struct {
	sessions *session.Store
}

// NewLoadFactsUseCase creates a new LoadFactsUseCase instance.
func NewLoadFactsUseCase(sessions *session.Store) *LoadFactsUseCase {
	return &LoadFactsUseCase{sessions: sessions}
}

// Execute returns a private copy the caller may keep.
func (uc *LoadFactsUseCase) Execute(ctx context.Context, input LoadFactsInput) (*entity.FactStore, error) {
	var snapshot *entity.FactStore
	err := uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		snapshot = facts.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
