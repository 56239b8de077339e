// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// FactRepository persists a user's ledger facts.
type FactRepository interface {
	// Load reads every fact owned by the user into a FactStore.
	Load(ctx context.Context, userID uuid.UUID) (*entity.FactStore, error)

	// Apply persists a single operation produced by a FactStore mutation.
	Apply(ctx context.Context, userID uuid.UUID, op entity.Operation) error

	// DeleteAll removes every fact owned by the user.
	DeleteAll(ctx context.Context, userID uuid.UUID) error
}
