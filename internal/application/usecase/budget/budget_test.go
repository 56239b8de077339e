package budget

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
	"github.com/pocket-ledger/backend/internal/domain/service"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
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

func TestSaveBudgets(t *testing.T) {
	userID := uuid.New()
	facts := entity.BootstrapFactStore(userID, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	food, transport := facts.Categories[0].ID, facts.Categories[1].ID
	if _, err := facts.SetExpenseCell("2025-06", food, valueobject.Period2, decimal.NewFromInt(250000)); err != nil {
		t.Fatal(err)
	}
	repo := &stubFactRepository{facts: facts}
	sessions := session.NewStore(repo, nil, session.Config{CacheSize: 2, CacheTTL: time.Minute})
	save := NewSaveBudgetsUseCase(sessions)
	get := NewGetBudgetMonthUseCase(sessions)
	ctx := context.Background()

	_, err := save.Execute(ctx, SaveBudgetsInput{UserID: userID, Month: "2025-06", Amounts: entity.AmountCells{
		food:      decimal.NewFromInt(200000),
		transport: decimal.NewFromInt(-1),
	}})
	var ledgerErr *domainerror.LedgerError
	if !errors.As(err, &ledgerErr) || ledgerErr.Code != domainerror.ErrCodeNegativeAmount {
		t.Fatalf("expected negative amount error, got %v", err)
	}
	if len(repo.applied) != 0 {
		t.Fatalf("rejected batch must not be persisted")
	}

	if _, err := save.Execute(ctx, SaveBudgetsInput{UserID: userID, Month: "2025-07", Amounts: entity.AmountCells{}}); err != nil {
		t.Fatalf("empty batch should be accepted: %v", err)
	}
	if len(repo.applied) != 0 {
		t.Fatalf("empty batch must not be persisted")
	}

	view, err := save.Execute(ctx, SaveBudgetsInput{UserID: userID, Month: "2025-06", Amounts: entity.AmountCells{
		food: decimal.NewFromInt(200000),
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	row := view.Rows[0]
	if !row.Deviation.Equal(decimal.NewFromInt(-50000)) {
		t.Errorf("expected deviation -50000, got %s", row.Deviation)
	}
	if row.Percent == nil || *row.Percent != 125 {
		t.Errorf("expected 125 percent, got %v", row.Percent)
	}
	if row.Status != service.BudgetStatusOver {
		t.Errorf("expected over, got %s", row.Status)
	}

	view, err = get.Execute(ctx, GetBudgetMonthInput{UserID: userID, Month: "2025-06"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.Rows[1].Percent != nil || view.Rows[1].Status != service.BudgetStatusUnmeasured {
		t.Errorf("a category without a ceiling must be unmeasured, got %+v", view.Rows[1])
	}
	if !view.TotalBudget.Equal(decimal.NewFromInt(200000)) {
		t.Errorf("expected total budget 200000, got %s", view.TotalBudget)
	}
}
