package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// IncomeEntry is a single income line item recorded in a month.
type IncomeEntry struct {
	ID        uuid.UUID
	Month     valueobject.MonthKey
	Name      string
	Amount    decimal.Decimal
	Date      time.Time
	Note      string
	CreatedAt time.Time
}

// ExpenseCells maps category id to per-period amounts.
type ExpenseCells map[uuid.UUID]map[valueobject.PeriodID]decimal.Decimal

// AmountCells maps a category, platform or portfolio id to an amount.
type AmountCells map[uuid.UUID]decimal.Decimal

// MonthRecord holds the facts recorded for one calendar month. Absent map
// entries mean zero; use the accessors rather than indexing directly.
type MonthRecord struct {
	Key         valueobject.MonthKey
	Income      []IncomeEntry
	Expenses    ExpenseCells
	Budget      AmountCells
	Savings     AmountCells
	Investments AmountCells
}

// NewMonthRecord returns an empty record for key.
func NewMonthRecord(key valueobject.MonthKey) *MonthRecord {
	return &MonthRecord{
		Key:         key,
		Income:      []IncomeEntry{},
		Expenses:    ExpenseCells{},
		Budget:      AmountCells{},
		Savings:     AmountCells{},
		Investments: AmountCells{},
	}
}

// ExpenseCell returns the expense for a category and period, zero if unset.
func (m *MonthRecord) ExpenseCell(categoryID uuid.UUID, period valueobject.PeriodID) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Expenses[categoryID][period]
}

// BudgetFor returns the ceiling for a category and whether one is set.
func (m *MonthRecord) BudgetFor(categoryID uuid.UUID) (decimal.Decimal, bool) {
	if m == nil {
		return decimal.Zero, false
	}
	v, ok := m.Budget[categoryID]
	return v, ok
}

// SavingFor returns the saving amount for a platform, zero if unset.
func (m *MonthRecord) SavingFor(platformID uuid.UUID) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Savings[platformID]
}

// InvestmentFor returns the investment amount for a portfolio, zero if unset.
func (m *MonthRecord) InvestmentFor(portfolioID uuid.UUID) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	return m.Investments[portfolioID]
}

// IncomeEntries returns the month's income list, nil-safe.
func (m *MonthRecord) IncomeEntries() []IncomeEntry {
	if m == nil {
		return nil
	}
	return m.Income
}

// Clone returns a deep copy of the record.
func (m *MonthRecord) Clone() *MonthRecord {
	if m == nil {
		return nil
	}
	c := NewMonthRecord(m.Key)
	c.Income = append(c.Income, m.Income...)
	for cat, cells := range m.Expenses {
		row := make(map[valueobject.PeriodID]decimal.Decimal, len(cells))
		for p, v := range cells {
			row[p] = v
		}
		c.Expenses[cat] = row
	}
	for id, v := range m.Budget {
		c.Budget[id] = v
	}
	for id, v := range m.Savings {
		c.Savings[id] = v
	}
	for id, v := range m.Investments {
		c.Investments[id] = v
	}
	return c
}

func (m *MonthRecord) setExpense(categoryID uuid.UUID, period valueobject.PeriodID, amount decimal.Decimal) {
	row, ok := m.Expenses[categoryID]
	if !ok {
		row = map[valueobject.PeriodID]decimal.Decimal{}
		m.Expenses[categoryID] = row
	}
	row[period] = amount
}

func (m *MonthRecord) removeIncome(id uuid.UUID) bool {
	for i, e := range m.Income {
		if e.ID == id {
			m.Income = append(m.Income[:i], m.Income[i+1:]...)
			return true
		}
	}
	return false
}
