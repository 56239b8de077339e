// Package service contains pure domain services that derive views from a
// user's facts.
package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

var hundred = decimal.NewFromInt(100)

// MonthTotals are the headline figures of one month, or of a range of months.
type MonthTotals struct {
	Month      valueobject.MonthKey
	Income     decimal.Decimal
	Expense    decimal.Decimal
	Balance    decimal.Decimal
	Saving     decimal.Decimal
	Investment decimal.Decimal
}

// Aggregator derives totals from a FactStore. It only reads, and only
// iterates the current category, platform and portfolio lists, so cells of
// deleted entities never reach a total. A missing month counts as zero.
type Aggregator struct {
	facts *entity.FactStore
}

// NewAggregator creates a new Aggregator over facts.
func NewAggregator(facts *entity.FactStore) *Aggregator {
	return &Aggregator{facts: facts}
}

// MonthIncome sums the month's income entries.
func (a *Aggregator) MonthIncome(k valueobject.MonthKey) decimal.Decimal {
	total := decimal.Zero
	for _, e := range a.facts.Month(k).IncomeEntries() {
		total = total.Add(e.Amount)
	}
	return total
}

// MonthExpenseByCategory returns each current category's total over all
// periods. Every current category is present, zero when nothing was spent.
func (a *Aggregator) MonthExpenseByCategory(k valueobject.MonthKey) map[uuid.UUID]decimal.Decimal {
	rec := a.facts.Month(k)
	out := make(map[uuid.UUID]decimal.Decimal, len(a.facts.Categories))
	for _, c := range a.facts.Categories {
		out[c.ID] = a.categoryExpense(rec, c.ID)
	}
	return out
}

// MonthExpense sums every expense cell of the current categories.
func (a *Aggregator) MonthExpense(k valueobject.MonthKey) decimal.Decimal {
	rec := a.facts.Month(k)
	total := decimal.Zero
	for _, c := range a.facts.Categories {
		total = total.Add(a.categoryExpense(rec, c.ID))
	}
	return total
}

// PeriodTotal sums one period across the current categories.
func (a *Aggregator) PeriodTotal(k valueobject.MonthKey, period valueobject.PeriodID) decimal.Decimal {
	rec := a.facts.Month(k)
	total := decimal.Zero
	for _, c := range a.facts.Categories {
		total = total.Add(rec.ExpenseCell(c.ID, period))
	}
	return total
}

// MonthSaving sums the month's saving cells over the current platforms.
func (a *Aggregator) MonthSaving(k valueobject.MonthKey) decimal.Decimal {
	rec := a.facts.Month(k)
	total := decimal.Zero
	for _, p := range a.facts.Platforms {
		total = total.Add(rec.SavingFor(p.ID))
	}
	return total
}

// MonthInvestment sums the month's investment cells over the current portfolios.
func (a *Aggregator) MonthInvestment(k valueobject.MonthKey) decimal.Decimal {
	rec := a.facts.Month(k)
	total := decimal.Zero
	for _, p := range a.facts.Portfolios {
		total = total.Add(rec.InvestmentFor(p.ID))
	}
	return total
}

// BudgetDeviation is the ceiling minus the realized expense. A category
// without a ceiling deviates by minus its expense.
func (a *Aggregator) BudgetDeviation(k valueobject.MonthKey, categoryID uuid.UUID) decimal.Decimal {
	rec := a.facts.Month(k)
	budget, _ := rec.BudgetFor(categoryID)
	return budget.Sub(a.categoryExpense(rec, categoryID))
}

// BudgetPercent returns expense/ceiling*100 rounded to the nearest integer.
// ok is false when the category has no positive ceiling, which means
// unmeasured rather than 0% used.
func (a *Aggregator) BudgetPercent(k valueobject.MonthKey, categoryID uuid.UUID) (int64, bool) {
	rec := a.facts.Month(k)
	budget, _ := rec.BudgetFor(categoryID)
	if !budget.IsPositive() {
		return 0, false
	}
	return Percent(a.categoryExpense(rec, categoryID), budget), true
}

// MonthTotals computes the headline figures of month k.
func (a *Aggregator) MonthTotals(k valueobject.MonthKey) MonthTotals {
	income := a.MonthIncome(k)
	expense := a.MonthExpense(k)
	return MonthTotals{
		Month:      k,
		Income:     income,
		Expense:    expense,
		Balance:    income.Sub(expense),
		Saving:     a.MonthSaving(k),
		Investment: a.MonthInvestment(k),
	}
}

// RangeTotals sums MonthTotals over months. The Month field is left empty.
func (a *Aggregator) RangeTotals(months []valueobject.MonthKey) MonthTotals {
	total := MonthTotals{
		Income:     decimal.Zero,
		Expense:    decimal.Zero,
		Balance:    decimal.Zero,
		Saving:     decimal.Zero,
		Investment: decimal.Zero,
	}
	for _, k := range months {
		total = total.add(a.MonthTotals(k))
	}
	return total
}

// SemesterTotals sums MonthTotals over every month of sem.
func (a *Aggregator) SemesterTotals(sem entity.Semester) MonthTotals {
	return a.RangeTotals(sem.Months())
}

// CategoryRangeExpense sums each current category's expense over months.
func (a *Aggregator) CategoryRangeExpense(months []valueobject.MonthKey) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal, len(a.facts.Categories))
	for _, c := range a.facts.Categories {
		out[c.ID] = decimal.Zero
	}
	for _, k := range months {
		rec := a.facts.Month(k)
		if rec == nil {
			continue
		}
		for _, c := range a.facts.Categories {
			out[c.ID] = out[c.ID].Add(a.categoryExpense(rec, c.ID))
		}
	}
	return out
}

// Percent returns part/whole*100 rounded half away from zero. whole must be
// positive.
func Percent(part, whole decimal.Decimal) int64 {
	return part.Mul(hundred).Div(whole).Round(0).IntPart()
}

func (a *Aggregator) categoryExpense(rec *entity.MonthRecord, categoryID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, p := range valueobject.PeriodIDs() {
		total = total.Add(rec.ExpenseCell(categoryID, p))
	}
	return total
}

func (t MonthTotals) add(o MonthTotals) MonthTotals {
	return MonthTotals{
		Month:      t.Month,
		Income:     t.Income.Add(o.Income),
		Expense:    t.Expense.Add(o.Expense),
		Balance:    t.Balance.Add(o.Balance),
		Saving:     t.Saving.Add(o.Saving),
		Investment: t.Investment.Add(o.Investment),
	}
}
