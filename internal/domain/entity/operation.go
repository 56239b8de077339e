package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// Operation is a validated change to a FactStore. FactStore methods return
// one after mutating, and persistence applies it to durable storage.
type Operation interface {
	// Kind names the operation for logging.
	Kind() string
}

// OrphanPolicy controls what happens to month cells when the category,
// platform or portfolio they reference is deleted.
type OrphanPolicy string

const (
	// OrphanPolicyKeep leaves historical cells in place. They stop being
	// aggregated because iteration follows the current lists.
	OrphanPolicyKeep OrphanPolicy = "keep"
	// OrphanPolicyCascade scrubs the deleted entity's cells from every month.
	OrphanPolicyCascade OrphanPolicy = "cascade"
)

// ParseOrphanPolicy maps a configuration string to a policy, defaulting to keep.
func ParseOrphanPolicy(s string) OrphanPolicy {
	if OrphanPolicy(s) == OrphanPolicyCascade {
		return OrphanPolicyCascade
	}
	return OrphanPolicyKeep
}

type IncomeAdded struct {
	Entry IncomeEntry
}

type IncomeDeleted struct {
	ID uuid.UUID
}

type ExpenseCellSet struct {
	Month      valueobject.MonthKey
	CategoryID uuid.UUID
	Period     valueobject.PeriodID
	Amount     decimal.Decimal
}

// AmountsSet upserts a batch of budget, saving or investment cells for a month.
type AmountsSet struct {
	Target  AmountTarget
	Month   valueobject.MonthKey
	Amounts AmountCells
}

// AmountsBatchSet upserts saving or investment cells across several months
// in one step.
type AmountsBatchSet struct {
	Target AmountTarget
	Sets   []AmountsSet
}

type CategoryAdded struct {
	Category Category
}

type CategoryDeleted struct {
	ID      uuid.UUID
	Cascade bool
}

type BucketAdded struct {
	Bucket Bucket
}

type BucketDeleted struct {
	BucketKind BucketKind
	ID         uuid.UUID
	Cascade    bool
}

type SemesterAdded struct {
	Semester Semester
}

type SemesterDeleted struct {
	ID uuid.UUID
}

// DataCleared removes every month record of the user.
type DataCleared struct{}

func (IncomeAdded) Kind() string     { return "income_added" }
func (IncomeDeleted) Kind() string   { return "income_deleted" }
func (ExpenseCellSet) Kind() string  { return "expense_cell_set" }
func (o AmountsSet) Kind() string    { return string(o.Target) + "_set" }
func (CategoryAdded) Kind() string   { return "category_added" }
func (CategoryDeleted) Kind() string { return "category_deleted" }
func (BucketAdded) Kind() string     { return "bucket_added" }
func (BucketDeleted) Kind() string   { return "bucket_deleted" }
func (SemesterAdded) Kind() string   { return "semester_added" }
func (SemesterDeleted) Kind() string { return "semester_deleted" }
func (DataCleared) Kind() string     { return "data_cleared" }

func (o AmountsBatchSet) Kind() string {
	return string(o.Target) + "_batch_set"
}

// AmountTarget selects which per-month amount map an AmountsSet writes to.
type AmountTarget string

const (
	TargetBudget     AmountTarget = "budget"
	TargetSavings    AmountTarget = "savings"
	TargetInvestment AmountTarget = "investments"
)
