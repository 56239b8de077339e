package income

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// GetIncomeMonthInput selects the month to list.
type GetIncomeMonthInput struct {
	UserID uuid.UUID
	Month  string
}

// GetIncomeMonthUseCase lists a month's income, newest first.
type GetIncomeMonthUseCase struct {
	sessions *session.Store
}

// NewGetIncomeMonthUseCase creates a new GetIncomeMonthUseCase instance.
func NewGetIncomeMonthUseCase(sessions *session.Store) *GetIncomeMonthUseCase {
	return &GetIncomeMonthUseCase{sessions: sessions}
}

// Execute builds the list.
func (uc *GetIncomeMonthUseCase) Execute(ctx context.Context, input GetIncomeMonthInput) (*service.IncomeList, error) {
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var list service.IncomeList
	err = uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		list = service.NewAggregator(facts).IncomeList(month)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &list, nil
}
