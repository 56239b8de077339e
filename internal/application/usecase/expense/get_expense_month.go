package expense

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// GetExpenseMonthInput selects the month of the matrix.
type GetExpenseMonthInput struct {
	UserID uuid.UUID
	Month  string
}

// GetExpenseMonthUseCase builds the category by period matrix of a month.
type GetExpenseMonthUseCase struct {
	sessions *session.Store
}

// NewGetExpenseMonthUseCase creates a new GetExpenseMonthUseCase instance.
func NewGetExpenseMonthUseCase(sessions *session.Store) *GetExpenseMonthUseCase {
	return &GetExpenseMonthUseCase{sessions: sessions}
}

// Execute builds the matrix.
func (uc *GetExpenseMonthUseCase) Execute(ctx context.Context, input GetExpenseMonthInput) (*service.ExpenseMatrix, error) {
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}

	var matrix service.ExpenseMatrix
	err = uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		matrix = service.NewAggregator(facts).ExpenseMatrix(month)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &matrix, nil
}
