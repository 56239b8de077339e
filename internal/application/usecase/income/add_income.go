// Package income contains income-related use cases.
package income

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// DateLayout is the wire format of income dates.
const DateLayout = "2006-01-02"

// AddIncomeInput represents the input for recording income.
type AddIncomeInput struct {
	UserID uuid.UUID
	Month  string
	Name   string
	Amount decimal.Decimal
	Date   string
	Note   string
}

// AddIncomeOutput holds the stored entry and the month totals after it.
type AddIncomeOutput struct {
	Entry  entity.IncomeEntry
	Totals service.MonthTotals
}

// AddIncomeUseCase appends an income entry to a month.
type AddIncomeUseCase struct {
	sessions *session.Store
}

// NewAddIncomeUseCase creates a new AddIncomeUseCase instance.
func NewAddIncomeUseCase(sessions *session.Store) *AddIncomeUseCase {
	return &AddIncomeUseCase{sessions: sessions}
}

// Execute records the income.
func (uc *AddIncomeUseCase) Execute(ctx context.Context, input AddIncomeInput) (*AddIncomeOutput, error) {
	month, err := entity.ParseMonth(input.Month)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(DateLayout, input.Date)
	if err != nil {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidDate, "date must use the YYYY-MM-DD format", domainerror.ErrInvalidDate)
	}

	var out AddIncomeOutput
	err = uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		op, err := facts.AddIncome(month, input.Name, input.Amount, date, input.Note)
		if err != nil {
			return nil, err
		}
		out.Entry = op.Entry
		out.Totals = service.NewAggregator(facts).MonthTotals(month)
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
