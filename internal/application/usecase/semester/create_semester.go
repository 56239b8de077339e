// Package semester contains semester-related use cases.
package semester

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// CreateSemesterInput represents the input for semester creation.
type CreateSemesterInput struct {
	UserID     uuid.UUID
	Name       string
	StartMonth string
	EndMonth   string
}

// CreateSemesterOutput represents the output of semester creation.
type CreateSemesterOutput struct {
	Semester entity.Semester
}

// CreateSemesterUseCase handles semester creation logic.
type CreateSemesterUseCase struct {
	sessions *session.Store
}

// NewCreateSemesterUseCase creates a new CreateSemesterUseCase instance.
func NewCreateSemesterUseCase(sessions *session.Store) *CreateSemesterUseCase {
	return &CreateSemesterUseCase{sessions: sessions}
}

// Execute performs the semester creation.
func (uc *CreateSemesterUseCase) Execute(ctx context.Context, input CreateSemesterInput) (*CreateSemesterOutput, error) {
	start, err := entity.ParseMonth(input.StartMonth)
	if err != nil {
		return nil, err
	}
	end, err := entity.ParseMonth(input.EndMonth)
	if err != nil {
		return nil, err
	}

	var created entity.Semester
	err = uc.sessions.Mutate(ctx, input.UserID, func(facts *entity.FactStore) (entity.Operation, error) {
		op, err := facts.AddSemester(input.Name, start, end)
		if err != nil {
			return nil, err
		}
		created = op.Semester
		return op, nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateSemesterOutput{Semester: created}, nil
}
