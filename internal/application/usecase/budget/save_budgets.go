// Package budget contains budget-related use cases.
package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// SaveBudgetsInput carries the ceilings of several categories for one month.
type SaveBudgetsInput struct {
	UserID  uuid.UUID
	Month   string
	Amounts entity.AmountCells
}

// SaveBudgetsUseCase upserts budget ceilings. One invalid amount rejects the
// whole batch.
type SaveBudgetsUseCase struct {
	sessions *session.Store
}

// NewSaveBudgetsUseCase creates a new SaveBudgetsUseCase instance.
func NewSaveBudgetsUseCase(sessions *session.Store) *SaveBudgetsUseCase {
	return &SaveBudgetsUseCase{sessions: sessions}
}

// Execute performs the upsert and returns the refreshed budget view.
func (uc *SaveBudgetsUseCase) Execute(ctx context.Context, input SaveBudgetsInput) (*service.BudgetView, error) {
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var view service.BudgetView
	err = uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		op, err := facts.SetBudgets(month, input.Amounts)
		if err != nil {
			return nil, err
		}
		view = service.NewAggregator(facts).BudgetView(month)
		if len(op.Amounts) == 0 {
			return nil, nil
		}
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}
