package bucket

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// DeleteBucketInput represents the input for deleting a platform or portfolio.
type DeleteBucketInput struct {
	UserID   uuid.UUID
	Kind     entity.BucketKind
	BucketID uuid.UUID
}

// DeleteBucketUseCase removes a saving platform or portfolio.
type DeleteBucketUseCase struct {
	sessions *session.Store
	policy   entity.OrphanPolicy
}

// NewDeleteBucketUseCase creates a new DeleteBucketUseCase instance.
func NewDeleteBucketUseCase(sessions *session.Store, policy entity.OrphanPolicy) *DeleteBucketUseCase {
	return &DeleteBucketUseCase{
		sessions: sessions,
		policy:   policy,
	}
}

// Execute performs the deletion. Unknown ids are ignored.
func (uc *DeleteBucketUseCase) Execute(ctx context.Context, input DeleteBucketInput) error {
	return uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		return facts.DeleteBucket(input.Kind, input.BucketID, uc.policy), nil
	})
}
