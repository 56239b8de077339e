package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// SemesterLength is the number of months covered by the bootstrap semester.
const SemesterLength = 6

// Semester is a user-defined inclusive range of months used as the
// aggregation window for the dashboard and export.
type Semester struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Name       string
	StartMonth valueobject.MonthKey
	EndMonth   valueobject.MonthKey
	CreatedAt  time.Time
}

// NewSemester creates a new Semester entity. Range validation is done by
// FactStore.AddSemester.
func NewSemester(userID uuid.UUID, name string, start, end valueobject.MonthKey) Semester {
	return Semester{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		StartMonth: start,
		EndMonth:   end,
		CreatedAt:  time.Now().UTC(),
	}
}

// Months expands the semester into its ordered month keys.
func (s Semester) Months() []valueobject.MonthKey {
	return valueobject.ExpandRange(s.StartMonth, s.EndMonth)
}

// Contains reports whether k falls inside the semester.
func (s Semester) Contains(k valueobject.MonthKey) bool {
	return valueobject.InRange(k, s.StartMonth, s.EndMonth)
}
