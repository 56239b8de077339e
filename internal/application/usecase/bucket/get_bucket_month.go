package bucket

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// GetBucketMonthInput selects the month and kind of the table.
type GetBucketMonthInput struct {
	UserID uuid.UUID
	Kind   entity.BucketKind
	Month  string
}

// GetBucketMonthUseCase builds the saving or investment page of a month.
type GetBucketMonthUseCase struct {
	sessions *session.Store
}

// NewGetBucketMonthUseCase creates a new GetBucketMonthUseCase instance.
func NewGetBucketMonthUseCase(sessions *session.Store) *GetBucketMonthUseCase {
	return &GetBucketMonthUseCase{sessions: sessions}
}

// Execute builds the table.
func (uc *GetBucketMonthUseCase) Execute(ctx context.Context, input GetBucketMonthInput) (*service.BucketTable, error) {
	if !input.Kind.Valid() {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidRequest, "unknown bucket kind", nil)
	}
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var table service.BucketTable
	err = uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		table = service.NewAggregator(facts).BucketTable(month, input.Kind)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &table, nil
}
