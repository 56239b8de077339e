// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/service"
)

// GetDashboardInput selects the semester to summarize. A nil SemesterID, or
// one that no longer exists, falls back to the first semester.
type GetDashboardInput struct {
	UserID     uuid.UUID
	SemesterID uuid.UUID
}

// GetDashboardUseCase builds the semester overview.
type GetDashboardUseCase struct {
	sessions *session.Store
}

// NewGetDashboardUseCase creates a new GetDashboardUseCase instance.
func NewGetDashboardUseCase(sessions *session.Store) *GetDashboardUseCase {
	return &GetDashboardUseCase{sessions: sessions}
}

// Execute builds the dashboard.
func (uc *GetDashboardUseCase) Execute(ctx context.Context, input GetDashboardInput) (*service.Dashboard, error) {
	var dash service.Dashboard
	err := uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		sem, ok := facts.ActiveSemester(input.SemesterID)
		if !ok {
			return domainerror.NewLedgerError(domainerror.ErrCodeNoSemesters, "no semester to summarize", domainerror.ErrNoSemesters)
		}
		dash = service.NewAggregator(facts).Dashboard(sem)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dash, nil
}
