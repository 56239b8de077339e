package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// GetBudgetMonthInput selects the month of the budget view.
type GetBudgetMonthInput struct {
	UserID uuid.UUID
	Month  string
}

// GetBudgetMonthUseCase compares ceilings with realized expense for a month.
type GetBudgetMonthUseCase struct {
	sessions *session.Store
}

// NewGetBudgetMonthUseCase creates a new GetBudgetMonthUseCase instance.
func NewGetBudgetMonthUseCase(sessions *session.Store) *GetBudgetMonthUseCase {
	return &GetBudgetMonthUseCase{sessions: sessions}
}

// Execute builds the view.
func (uc *GetBudgetMonthUseCase) Execute(ctx context.Context, input GetBudgetMonthInput) (*service.BudgetView, error) {
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var view service.BudgetView
	err = uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		view = service.NewAggregator(facts).BudgetView(month)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
