// Package expense contains expense-related use cases.
package expense

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// SetExpenseCellInput addresses one (month, category, period) cell.
type SetExpenseCellInput struct {
	UserID     uuid.UUID
	Month      string
	CategoryID uuid.UUID
	Period     int
	Amount     decimal.Decimal
}

// SetExpenseCellOutput holds the month's derived views after the write.
type SetExpenseCellOutput struct {
	CategoryTotal decimal.Decimal
	PeriodTotal   decimal.Decimal
	Totals        service.MonthTotals
}

// SetExpenseCellUseCase upserts an expense cell. Writing the same value
// twice leaves it unchanged.
type SetExpenseCellUseCase struct {
	sessions *session.Store
}

// NewSetExpenseCellUseCase creates a new SetExpenseCellUseCase instance.
func NewSetExpenseCellUseCase(sessions *session.Store) *SetExpenseCellUseCase {
	return &SetExpenseCellUseCase{sessions: sessions}
}

// Execute performs the upsert.
func (uc *SetExpenseCellUseCase) Execute(ctx context.Context, input SetExpenseCellInput) (*SetExpenseCellOutput, error) {
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}
	period := valueobject.PeriodID(input.Period)

	var out SetExpenseCellOutput
	err = uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		op, err := facts.SetExpenseCell(month, input.CategoryID, period, input.Amount)
		if err != nil {
			return nil, err
		}
		agg := service.NewAggregator(facts)
		out.CategoryTotal = agg.MonthExpenseByCategory(month)[input.CategoryID]
		out.PeriodTotal = agg.PeriodTotal(month, period)
		out.Totals = agg.MonthTotals(month)
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
