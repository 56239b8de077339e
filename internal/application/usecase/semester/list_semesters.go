package semester

import (
	"context"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/application/session"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// ListSemestersInput represents the input for listing semesters.
type ListSemestersInput struct {
	UserID uuid.UUID
}

// ListSemestersOutput holds the semesters ordered by start month.
type ListSemestersOutput struct {
	Semesters []entity.Semester
}

// ListSemestersUseCase lists a user's semesters.
type ListSemestersUseCase struct {
	sessions *session.Store
}

// NewListSemestersUseCase creates a new ListSemestersUseCase instance.
func NewListSemestersUseCase(sessions *session.Store) *ListSemestersUseCase {
	return &ListSemestersUseCase{sessions: sessions}
}

// Execute lists the semesters.
func (uc *ListSemestersUseCase) Execute(ctx context.Context, input ListSemestersInput) (*ListSemestersOutput, error) {
	var out ListSemestersOutput
	err := uc.sessions.Read(ctx, input.UserID, func(facts *entity.FactStore) error {
		out.Semesters = append([]entity.Semester{}, facts.Semesters...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
