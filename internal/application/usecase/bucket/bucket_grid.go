package bucket

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/service"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// GetBucketGridInput selects the semester and kind of the grid. A nil
// SemesterID, or one that no longer exists, falls back to the first semester.
type GetBucketGridInput struct {
	UserID     uuid.UUID
	Kind       entity.BucketKind
	SemesterID uuid.UUID
}

// GetBucketGridUseCase builds the semester-wide saving or investment grid.
type GetBucketGridUseCase struct {
	sessions *session.Store
}

// NewGetBucketGridUseCase creates a new GetBucketGridUseCase instance.
func NewGetBucketGridUseCase(sessions *session.Store) *GetBucketGridUseCase {
	return &GetBucketGridUseCase{sessions: sessions}
}

// Execute builds the grid.
func (uc *GetBucketGridUseCase) Execute(ctx context.Context, input GetBucketGridInput) (*service.BucketMatrix, error) {
	if !input.Kind.Valid() {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidRequest, "unknown bucket kind", nil)
	}

	var matrix service.BucketMatrix
	err := uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		sem, ok := facts.ActiveSemester(input.SemesterID)
		if !ok {
			return noSemester()
		}
		matrix = service.NewAggregator(facts).BucketMatrix(sem, input.Kind)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &matrix, nil
}

// SaveBucketGridInput carries saving or investment cells for the months of
// one semester, keyed by "YYYY-MM".
type SaveBucketGridInput struct {
	UserID     uuid.UUID
	Kind       entity.BucketKind
	SemesterID uuid.UUID
	Grid       map[string]entity.AmountCells
}

// SaveBucketGridUseCase upserts a semester of saving or investment cells.
// The grid is stored completely or not at all.
type SaveBucketGridUseCase struct {
	sessions *session.Store
}

// NewSaveBucketGridUseCase creates a new SaveBucketGridUseCase instance.
func NewSaveBucketGridUseCase(sessions *session.Store) *SaveBucketGridUseCase {
	return &SaveBucketGridUseCase{sessions: sessions}
}

// Execute performs the upsert and returns the refreshed grid.
func (uc *SaveBucketGridUseCase) Execute(ctx context.Context, input SaveBucketGridInput) (*service.BucketMatrix, error) {
	if !input.Kind.Valid() {
		return nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidRequest, "unknown bucket kind", nil)
	}
	grid := make(map[valueobject.MonthKey]entity.AmountCells, len(input.Grid))
	for raw, cells := range input.Grid {
		month, err := entity.ParseMonth(raw)
		if err != nil {
			return nil, err
		}
		grid[month] = cells
	}

	var matrix service.BucketMatrix
	err := uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		sem, ok := facts.ActiveSemester(input.SemesterID)
		if !ok {
			return nil, noSemester()
		}
		for month := range grid {
			if !sem.Contains(month) {
				return nil, domainerror.NewLedgerError(domainerror.ErrCodeInvalidMonth, "month "+string(month)+" is outside the semester", domainerror.ErrInvalidMonth)
			}
		}
		op, err := facts.SetBucketGrid(input.Kind, grid)
		if err != nil {
			return nil, err
		}
		matrix = service.NewAggregator(facts).BucketMatrix(sem, input.Kind)
		if len(op.Sets) == 0 {
			return nil, nil
		}
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &matrix, nil
}

func noSemester() error {
	return domainerror.NewLedgerError(domainerror.ErrCodeNoSemesters, "no semester to show", domainerror.ErrNoSemesters)
}
