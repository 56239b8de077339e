package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// BudgetStatus classifies how much of a ceiling has been used.
type BudgetStatus string

const (
	BudgetStatusOK         BudgetStatus = "ok"
	BudgetStatusWarn       BudgetStatus = "warn"
	BudgetStatusOver       BudgetStatus = "over"
	BudgetStatusUnmeasured BudgetStatus = "unmeasured"
)

// Budget usage thresholds in percent.
const (
	budgetWarnPercent = 80
	budgetOverPercent = 100
)

// RecapRow is one month of a semester recap.
type RecapRow struct {
	MonthTotals
	Label string
}

// SemesterRecap is the per-month recap of a semester plus its total row.
type SemesterRecap struct {
	Semester entity.Semester
	Rows     []RecapRow
	Total    MonthTotals
}

// ExpenseRow is one category line of the expense matrix.
type ExpenseRow struct {
	Category entity.Category
	Cells    [valueobject.PeriodCount]decimal.Decimal
	Total    decimal.Decimal
}

// ExpenseMatrix is the category by period view of a month.
type ExpenseMatrix struct {
	Month        valueobject.MonthKey
	Periods      []valueobject.Period
	Rows         []ExpenseRow
	PeriodTotals [valueobject.PeriodCount]decimal.Decimal
	Total        decimal.Decimal
	Income       decimal.Decimal
	Balance      decimal.Decimal
}

// BudgetRow compares one category's ceiling with its realized expense.
// Percent is nil when the category is unmeasured.
type BudgetRow struct {
	Category  entity.Category
	Budget    decimal.Decimal
	HasBudget bool
	Expense   decimal.Decimal
	Deviation decimal.Decimal
	Percent   *int64
	Status    BudgetStatus
}

// BudgetView is the budget page of a month.
type BudgetView struct {
	Month        valueobject.MonthKey
	Rows         []BudgetRow
	TotalBudget  decimal.Decimal
	TotalExpense decimal.Decimal
}

// BucketRow is one platform or portfolio amount in a month.
type BucketRow struct {
	Bucket entity.Bucket
	Amount decimal.Decimal
}

// BucketTable lists the saving or investment cells of a month.
type BucketTable struct {
	Month valueobject.MonthKey
	Kind  entity.BucketKind
	Rows  []BucketRow
	Total decimal.Decimal
}

// BucketMatrixRow is one platform or portfolio across the months of a semester.
type BucketMatrixRow struct {
	Bucket entity.Bucket
	// Cells follow BucketMatrix.Months.
	Cells []decimal.Decimal
	Total decimal.Decimal
}

// BucketMatrix is the semester-wide saving or investment grid.
type BucketMatrix struct {
	Semester    entity.Semester
	Kind        entity.BucketKind
	Months      []valueobject.MonthKey
	Rows        []BucketMatrixRow
	MonthTotals []decimal.Decimal
	Total       decimal.Decimal
}

// IncomeList is the income page of a month, newest entries first.
type IncomeList struct {
	Month   valueobject.MonthKey
	Entries []entity.IncomeEntry
	Total   decimal.Decimal
}

// BarPoint is one month of the income versus expense chart.
type BarPoint struct {
	Month   valueobject.MonthKey
	Label   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// PieSlice is one category's share of a semester's expense.
type PieSlice struct {
	Category entity.Category
	Label    string
	Amount   decimal.Decimal
}

// Dashboard is the semester overview.
type Dashboard struct {
	Semester entity.Semester
	Totals   MonthTotals
	Bars     []BarPoint
	Pie      []PieSlice
	Recap    SemesterRecap
}

// StatusForPercent maps a rounded usage percent to a status.
func StatusForPercent(pct int64) BudgetStatus {
	switch {
	case pct < budgetWarnPercent:
		return BudgetStatusOK
	case pct < budgetOverPercent:
		return BudgetStatusWarn
	default:
		return BudgetStatusOver
	}
}

// SemesterRecap builds one recap row per month of sem and the total row.
func (a *Aggregator) SemesterRecap(sem entity.Semester) SemesterRecap {
	months := sem.Months()
	rows := make([]RecapRow, 0, len(months))
	for _, k := range months {
		rows = append(rows, RecapRow{MonthTotals: a.MonthTotals(k), Label: k.Label()})
	}
	return SemesterRecap{
		Semester: sem,
		Rows:     rows,
		Total:    a.RangeTotals(months),
	}
}

// ExpenseMatrix builds the category by period table of month k.
func (a *Aggregator) ExpenseMatrix(k valueobject.MonthKey) ExpenseMatrix {
	rec := a.facts.Month(k)
	m := ExpenseMatrix{
		Month:   k,
		Periods: valueobject.Periods(),
		Rows:    make([]ExpenseRow, 0, len(a.facts.Categories)),
		Total:   decimal.Zero,
	}
	for i := range m.PeriodTotals {
		m.PeriodTotals[i] = decimal.Zero
	}

	for _, c := range a.facts.Categories {
		row := ExpenseRow{Category: c, Total: decimal.Zero}
		for i, p := range valueobject.PeriodIDs() {
			v := rec.ExpenseCell(c.ID, p)
			row.Cells[i] = v
			row.Total = row.Total.Add(v)
			m.PeriodTotals[i] = m.PeriodTotals[i].Add(v)
		}
		m.Total = m.Total.Add(row.Total)
		m.Rows = append(m.Rows, row)
	}

	m.Income = a.MonthIncome(k)
	m.Balance = m.Income.Sub(m.Total)
	return m
}

// BudgetView builds the budget page of month k.
func (a *Aggregator) BudgetView(k valueobject.MonthKey) BudgetView {
	rec := a.facts.Month(k)
	byCat := a.MonthExpenseByCategory(k)
	v := BudgetView{
		Month:        k,
		Rows:         make([]BudgetRow, 0, len(a.facts.Categories)),
		TotalBudget:  decimal.Zero,
		TotalExpense: decimal.Zero,
	}

	for _, c := range a.facts.Categories {
		budget, _ := rec.BudgetFor(c.ID)
		expense := byCat[c.ID]
		row := BudgetRow{
			Category:  c,
			Budget:    budget,
			HasBudget: budget.IsPositive(),
			Expense:   expense,
			Deviation: budget.Sub(expense),
			Status:    BudgetStatusUnmeasured,
		}
		if row.HasBudget {
			pct := Percent(expense, budget)
			row.Percent = &pct
			row.Status = StatusForPercent(pct)
		}
		v.TotalBudget = v.TotalBudget.Add(budget)
		v.TotalExpense = v.TotalExpense.Add(expense)
		v.Rows = append(v.Rows, row)
	}
	return v
}

// BucketTable builds the saving (platform) or investment (portfolio) table
// of month k.
func (a *Aggregator) BucketTable(k valueobject.MonthKey, kind entity.BucketKind) BucketTable {
	rec := a.facts.Month(k)
	buckets := a.facts.Buckets(kind)
	t := BucketTable{
		Month: k,
		Kind:  kind,
		Rows:  make([]BucketRow, 0, len(buckets)),
		Total: decimal.Zero,
	}
	for _, b := range buckets {
		amount := rec.SavingFor(b.ID)
		if kind == entity.BucketKindPortfolio {
			amount = rec.InvestmentFor(b.ID)
		}
		t.Rows = append(t.Rows, BucketRow{Bucket: b, Amount: amount})
		t.Total = t.Total.Add(amount)
	}
	return t
}

// BucketMatrix builds the saving or investment grid of sem: one row per
// bucket, one column per month, with row and column totals.
func (a *Aggregator) BucketMatrix(sem entity.Semester, kind entity.BucketKind) BucketMatrix {
	months := sem.Months()
	buckets := a.facts.Buckets(kind)
	m := BucketMatrix{
		Semester:    sem,
		Kind:        kind,
		Months:      months,
		Rows:        make([]BucketMatrixRow, 0, len(buckets)),
		MonthTotals: make([]decimal.Decimal, len(months)),
		Total:       decimal.Zero,
	}
	for i := range m.MonthTotals {
		m.MonthTotals[i] = decimal.Zero
	}
	for _, b := range buckets {
		row := BucketMatrixRow{Bucket: b, Cells: make([]decimal.Decimal, len(months)), Total: decimal.Zero}
		for i, k := range months {
			rec := a.facts.Month(k)
			amount := rec.SavingFor(b.ID)
			if kind == entity.BucketKindPortfolio {
				amount = rec.InvestmentFor(b.ID)
			}
			row.Cells[i] = amount
			row.Total = row.Total.Add(amount)
			m.MonthTotals[i] = m.MonthTotals[i].Add(amount)
		}
		m.Rows = append(m.Rows, row)
		m.Total = m.Total.Add(row.Total)
	}
	return m
}

// IncomeList returns month k's income entries sorted by date descending.
func (a *Aggregator) IncomeList(k valueobject.MonthKey) IncomeList {
	entries := append([]entity.IncomeEntry{}, a.facts.Month(k).IncomeEntries()...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return IncomeList{
		Month:   k,
		Entries: entries,
		Total:   a.MonthIncome(k),
	}
}

// Dashboard builds the overview of sem: totals, chart series and recap.
func (a *Aggregator) Dashboard(sem entity.Semester) Dashboard {
	months := sem.Months()
	recap := a.SemesterRecap(sem)

	bars := make([]BarPoint, 0, len(months))
	for _, row := range recap.Rows {
		bars = append(bars, BarPoint{
			Month:   row.Month,
			Label:   row.Month.Abbrev(),
			Income:  row.Income,
			Expense: row.Expense,
		})
	}

	byCat := a.CategoryRangeExpense(months)
	pie := make([]PieSlice, 0)
	for _, c := range a.facts.Categories {
		if amount := byCat[c.ID]; amount.IsPositive() {
			pie = append(pie, PieSlice{Category: c, Label: c.DisplayName(), Amount: amount})
		}
	}

	return Dashboard{
		Semester: sem,
		Totals:   recap.Total,
		Bars:     bars,
		Pie:      pie,
		Recap:    recap,
	}
}
