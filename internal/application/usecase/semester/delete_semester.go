package semester

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// DeleteSemesterInput represents the input for semester deletion. ActiveID
// is the semester the client currently shows, if any.
type DeleteSemesterInput struct {
	UserID     uuid.UUID
	SemesterID uuid.UUID
	ActiveID   uuid.UUID
}

// DeleteSemesterOutput reports which semester the client should show next.
type DeleteSemesterOutput struct {
	Active entity.Semester
}

// DeleteSemesterUseCase removes a semester, refusing to remove the last one.
type DeleteSemesterUseCase struct {
	sessions *session.Store
}

// NewDeleteSemesterUseCase creates a new DeleteSemesterUseCase instance.
func NewDeleteSemesterUseCase(sessions *session.Store) *DeleteSemesterUseCase {
	return &DeleteSemesterUseCase{sessions: sessions}
}

// Execute performs the deletion. When the deleted semester was active the
// first remaining semester becomes active.
func (uc *DeleteSemesterUseCase) Execute(ctx context.Context, input DeleteSemesterInput) (*DeleteSemesterOutput, error) {
	active := input.ActiveID
	if active == input.SemesterID {
		active = uuid.Nil
	}

	var out DeleteSemesterOutput
	err := uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		op, err := facts.DeleteSemester(input.SemesterID)
		if err != nil {
			return nil, err
		}
		out.Active, _ = facts.ActiveSemester(active)
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
