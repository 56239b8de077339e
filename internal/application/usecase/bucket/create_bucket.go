// Package bucket contains use cases for saving platforms and investment
// portfolios.
package bucket

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// CreateBucketInput represents the input for creating a platform or portfolio.
type CreateBucketInput struct {
	UserID uuid.UUID
	Kind   entity.BucketKind
	Name   string
}

// CreateBucketOutput represents the output of bucket creation.
type CreateBucketOutput struct {
	Bucket entity.Bucket
}

// CreateBucketUseCase adds a saving platform or portfolio.
type CreateBucketUseCase struct {
	sessions *session.Store
}

// NewCreateBucketUseCase creates a new CreateBucketUseCase instance.
func NewCreateBucketUseCase(sessions *session.Store) *CreateBucketUseCase {
	return &CreateBucketUseCase{sessions: sessions}
}

// Execute performs the bucket creation.
func (uc *CreateBucketUseCase) Execute(ctx context.Context, input CreateBucketInput) (*CreateBucketOutput, error) {
	var created entity.Bucket
	err := uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		op, err := facts.AddBucket(input.Kind, input.Name)
		if err != nil {
			return nil, err
		}
		created = op.Bucket
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateBucketOutput{Bucket: created}, nil
}
