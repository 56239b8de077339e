package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// Amount tables share the AmountCellModel layout.
const (
	BudgetsTable     = "budgets"
	SavingsTable     = "savings"
	InvestmentsTable = "investments"
)

// IncomeModel represents the income table in the database.
type IncomeModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Month     string          `gorm:"type:varchar(7);not null;index"`
	Name      string          `gorm:"type:varchar(100);not null"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	Date      time.Time       `gorm:"type:date;not null"`
	Note      string          `gorm:"type:text"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for the IncomeModel.
func (IncomeModel) TableName() string {
	return "income"
}

// ToEntity converts an IncomeModel to a domain IncomeEntry.
func (m *IncomeModel) ToEntity() entity.IncomeEntry {
	return entity.IncomeEntry{
		ID:        m.ID,
		Month:     valueobject.MonthKey(m.Month),
		Name:      m.Name,
		Amount:    m.Amount,
		Date:      m.Date,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}

// IncomeFromEntity creates an IncomeModel from a domain IncomeEntry.
func IncomeFromEntity(userID uuid.UUID, e entity.IncomeEntry) *IncomeModel {
	return &IncomeModel{
		ID:        e.ID,
		UserID:    userID,
		Month:     string(e.Month),
		Name:      e.Name,
		Amount:    e.Amount,
		Date:      e.Date,
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

// ExpenseCellModel represents one (month, category, period) expense cell.
type ExpenseCellModel struct {
	UserID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Month      string          `gorm:"type:varchar(7);primaryKey"`
	CategoryID uuid.UUID       `gorm:"type:uuid;primaryKey;index"`
	Period     int             `gorm:"primaryKey;autoIncrement:false"`
	Amount     decimal.Decimal `gorm:"type:numeric;not null"`
	UpdatedAt  time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseCellModel.
func (ExpenseCellModel) TableName() string {
	return "expense_cells"
}

// AmountCellModel is one (month, reference) amount. RefID points at a
// category for budgets, a platform for savings or a portfolio for
// investments.
type AmountCellModel struct {
	UserID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Month     string          `gorm:"type:varchar(7);primaryKey"`
	RefID     uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// BudgetModel represents the budgets table.
type BudgetModel struct {
	AmountCellModel
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return BudgetsTable
}

// SavingModel represents the savings table.
type SavingModel struct {
	AmountCellModel
}

// TableName returns the table name for the SavingModel.
func (SavingModel) TableName() string {
	return SavingsTable
}

// InvestmentModel represents the investments table.
type InvestmentModel struct {
	AmountCellModel
}

// TableName returns the table name for the InvestmentModel.
func (InvestmentModel) TableName() string {
	return InvestmentsTable
}

// AmountTable returns the table storing cells of target.
func AmountTable(target entity.AmountTarget) string {
	switch target {
	case entity.TargetSavings:
		return SavingsTable
	case entity.TargetInvestment:
		return InvestmentsTable
	default:
		return BudgetsTable
	}
}

// AllModels lists every model for AutoMigrate.
func AllModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&CategoryModel{},
		&BucketModel{},
		&SemesterModel{},
		&IncomeModel{},
		&ExpenseCellModel{},
		&BudgetModel{},
		&SavingModel{},
		&InvestmentModel{},
	}
}
