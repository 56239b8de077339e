package bucket

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// SaveAmountsInput carries a batch of saving or investment cells for one month.
type SaveAmountsInput struct {
	UserID  uuid.UUID
	Kind    entity.BucketKind
	Month   string
	Amounts entity.AmountCells
}

// SaveAmountsOutput holds the refreshed table and month totals.
type SaveAmountsOutput struct {
	Table  service.BucketTable
	Totals service.MonthTotals
}

// SaveAmountsUseCase upserts saving or investment cells. The batch is
// rejected as a whole when any amount is invalid.
type SaveAmountsUseCase struct {
	sessions *session.Store
}

// NewSaveAmountsUseCase creates a new SaveAmountsUseCase instance.
func NewSaveAmountsUseCase(sessions *session.Store) *SaveAmountsUseCase {
	return &SaveAmountsUseCase{sessions: sessions}
}

// Execute performs the upsert.
func (uc *SaveAmountsUseCase) Execute(ctx context.Context, input SaveAmountsInput) (*SaveAmountsOutput, error) {
	if !input.Kind.Valid() {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidRequest, "unknown bucket kind", nil)
	}
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var out SaveAmountsOutput
	err = uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		var (
			op  entity.AmountsSet
			err error
		)
		if input.Kind == entity.BucketKindPortfolio {
			op, err = facts.SetInvestments(month, input.Amounts)
		} else {
			op, err = facts.SetSavings(month, input.Amounts)
		}
		if err != nil {
			return nil, err
		}
		agg := service.NewAggregator(facts)
		out.Table = agg.BucketTable(month, input.Kind)
		out.Totals = agg.MonthTotals(month)
		if len(op.Amounts) == 0 {
			return nil, nil
		}
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
