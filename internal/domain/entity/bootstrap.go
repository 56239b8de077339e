package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// DefaultSemesterName is the name of the semester created at registration.
const DefaultSemesterName = "Semester 1"

// DefaultCategories are the emoji/name pairs every new account starts with.
var DefaultCategories = []struct {
	Emoji string
	Name  string
}{
	{"🍽️", "Food"},
	{"🚗", "Transport"},
	{"📱", "Kouta"},
	{"🛒", "Groceries"},
	{"👨‍👩‍👧", "Orang Tua"},
	{"🏠", "Kost"},
	{"💰", "RDPU"},
	{"📦", "ETC"},
}

// DefaultPlatforms are the saving platforms every new account starts with.
var DefaultPlatforms = []string{"JAGO", "BYU", "SEABANK", "BIBIT", "Tunai"}

// DefaultPortfolios are the investment portfolios every new account starts with.
var DefaultPortfolios = []string{"Dana Wisuda", "Dana Tabungan", "Dana Darurat"}

// BootstrapFactStore builds the starting facts for a freshly registered user:
// the default categories, platforms and portfolios plus one semester running
// from the month of now through five months later. No month records exist.
func BootstrapFactStore(userID uuid.UUID, now time.Time) *FactStore {
	s := NewFactStore(userID)

	for i, c := range DefaultCategories {
		s.Categories = append(s.Categories, NewCategory(userID, c.Emoji, c.Name, i))
	}
	for i, name := range DefaultPlatforms {
		s.Platforms = append(s.Platforms, NewBucket(userID, BucketKindPlatform, name, i))
	}
	for i, name := range DefaultPortfolios {
		s.Portfolios = append(s.Portfolios, NewBucket(userID, BucketKindPortfolio, name, i))
	}

	start := valueobject.MonthKeyFromTime(now)
	s.Semesters = append(s.Semesters, NewSemester(userID, DefaultSemesterName, start, start.Shift(SemesterLength-1)))
	return s
}
