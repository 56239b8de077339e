package income

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
)

type stubFactRepository struct {
	facts   *entity.FactStore
	applied []entity.Operation
}

func (r *stubFactRepository) Load(context.Context, uuid.UUID) (*entity.FactStore, error) {
	return r.facts.Clone(), nil
}

func (r *stubFactRepository) Apply(_ context.Context, _ uuid.UUID, op entity.Operation) error {
	r.applied = append(r.applied, op)
	return nil
}

func (r *stubFactRepository) DeleteAll(context.Context, uuid.UUID) error { return nil }

func setup() (*stubFactRepository, *session.Store, uuid.UUID) {
	userID := uuid.New()
	facts := entity.BootstrapFactStore(userID, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	repo := &stubFactRepository{facts: facts}
	return repo, session.NewStore(repo, nil, session.Config{CacheSize: 4, CacheTTL: time.Minute}), userID
}

func TestAddIncome_Validation(t *testing.T) {
	repo, sessions, userID := setup()
	add := NewAddIncomeUseCase(sessions)

	tests := []struct {
		name     string
		input    AddIncomeInput
		expected domainerror.LedgerErrorCode
	}{
		{"zero amount", AddIncomeInput{Month: "2025-06", Name: "Salary", Amount: decimal.Zero, Date: "2025-06-01"}, domainerror.ErrCodeNonPositiveAmount},
		{"negative amount", AddIncomeInput{Month: "2025-06", Name: "Salary", Amount: decimal.NewFromInt(-100), Date: "2025-06-01"}, domainerror.ErrCodeNonPositiveAmount},
		{"blank name", AddIncomeInput{Month: "2025-06", Name: "  ", Amount: decimal.NewFromInt(1), Date: "2025-06-01"}, domainerror.ErrCodeMissingName},
		{"bad date", AddIncomeInput{Month: "2025-06", Name: "Salary", Amount: decimal.NewFromInt(1), Date: "June 1"}, domainerror.ErrCodeInvalidDate},
		{"bad month", AddIncomeInput{Month: "06-2025", Name: "Salary", Amount: decimal.NewFromInt(1), Date: "2025-06-01"}, domainerror.ErrCodeInvalidMonth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UserID = userID
			_, err := add.Execute(context.Background(), tt.input)
			var ledgerErr *domainerror.LedgerError
			if !errors.As(err, &ledgerErr) {
				t.Fatalf("expected LedgerError, got %v", err)
			}
			if ledgerErr.Code != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, ledgerErr.Code)
			}
		})
	}
	if len(repo.applied) != 0 {
		t.Errorf("rejected income must not be persisted, got %d writes", len(repo.applied))
	}
}

func TestAddAndDeleteIncome(t *testing.T) {
	repo, sessions, userID := setup()
	add := NewAddIncomeUseCase(sessions)
	del := NewDeleteIncomeUseCase(sessions)
	get := NewGetIncomeMonthUseCase(sessions)
	ctx := context.Background()

	out, err := add.Execute(ctx, AddIncomeInput{UserID: userID, Month: "2025-06", Name: "Salary", Amount: decimal.NewFromInt(50000), Date: "2025-06-25"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Totals.Income.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("expected month income 50000, got %s", out.Totals.Income)
	}

	list, err := get.Execute(ctx, GetIncomeMonthInput{UserID: userID, Month: "2025-06"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Entries) != 1 || !list.Total.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("unexpected income list: %+v", list)
	}

	if err := del.Execute(ctx, DeleteIncomeInput{UserID: userID, IncomeID: out.Entry.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// A second delete is a silent no-op and persists nothing.
	if err := del.Execute(ctx, DeleteIncomeInput{UserID: userID, IncomeID: out.Entry.ID}); err != nil {
		t.Fatalf("unexpected error on repeated delete: %v", err)
	}
	if len(repo.applied) != 2 {
		t.Errorf("expected 2 persisted writes, got %d", len(repo.applied))
	}

	list, err = get.Execute(ctx, GetIncomeMonthInput{UserID: userID, Month: "2025-06"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Entries) != 0 || !list.Total.IsZero() {
		t.Errorf("expected an empty month, got %+v", list)
	}
}
