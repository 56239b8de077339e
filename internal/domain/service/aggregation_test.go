package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

const june = valueobject.MonthKey("2025-06")

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newFacts(t *testing.T) *entity.FactStore {
	t.Helper()
	return entity.BootstrapFactStore(uuid.New(), time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
}

func mustExpense(t *testing.T, s *entity.FactStore, k valueobject.MonthKey, cat uuid.UUID, p valueobject.PeriodID, v int64) {
	t.Helper()
	if _, err := s.SetExpenseCell(k, cat, p, d(v)); err != nil {
		t.Fatalf("set expense: %v", err)
	}
}

func TestAggregator_RegistrationScenario(t *testing.T) {
	s := newFacts(t)
	cat := s.Categories[0].ID
	mustExpense(t, s, june, cat, valueobject.Period2, 150000)

	agg := NewAggregator(s)
	if got := agg.MonthExpenseByCategory(june)[cat]; !got.Equal(d(150000)) {
		t.Errorf("expected category expense 150000, got %s", got)
	}
	if got := agg.MonthExpense(june); !got.Equal(d(150000)) {
		t.Errorf("expected month expense 150000, got %s", got)
	}
	if got := agg.PeriodTotal(june, valueobject.Period2); !got.Equal(d(150000)) {
		t.Errorf("expected period total 150000, got %s", got)
	}
	if got := agg.PeriodTotal(june, valueobject.Period1); !got.IsZero() {
		t.Errorf("expected empty period, got %s", got)
	}
}

func TestAggregator_ExpenseConsistency(t *testing.T) {
	s := newFacts(t)
	for i, c := range s.Categories {
		for _, p := range valueobject.PeriodIDs() {
			mustExpense(t, s, june, c.ID, p, int64((i+1)*int(p)*1000))
		}
	}
	agg := NewAggregator(s)

	sum := decimal.Zero
	for _, v := range agg.MonthExpenseByCategory(june) {
		sum = sum.Add(v)
	}
	if !sum.Equal(agg.MonthExpense(june)) {
		t.Errorf("per-category sum %s differs from month expense %s", sum, agg.MonthExpense(june))
	}

	periods := decimal.Zero
	for _, p := range valueobject.PeriodIDs() {
		periods = periods.Add(agg.PeriodTotal(june, p))
	}
	if !periods.Equal(sum) {
		t.Errorf("period sum %s differs from month expense %s", periods, sum)
	}
}

func TestAggregator_OrphanedCellsAreIgnored(t *testing.T) {
	s := newFacts(t)
	kept, dropped := s.Categories[0].ID, s.Categories[1].ID
	mustExpense(t, s, june, kept, valueobject.Period1, 100)
	mustExpense(t, s, june, dropped, valueobject.Period1, 900)
	mustExpense(t, s, june, uuid.New(), valueobject.Period1, 5)

	s.DeleteCategory(dropped, entity.OrphanPolicyKeep)
	agg := NewAggregator(s)

	if got := agg.MonthExpense(june); !got.Equal(d(100)) {
		t.Errorf("expected orphans excluded, got %s", got)
	}
	if _, ok := agg.MonthExpenseByCategory(june)[dropped]; ok {
		t.Error("deleted category still in breakdown")
	}
	if _, ok := s.Month(june).Expenses[dropped]; !ok {
		t.Error("keep policy should leave the stored cells")
	}
}

func TestAggregator_Budget(t *testing.T) {
	s := newFacts(t)
	cat, other := s.Categories[0].ID, s.Categories[1].ID
	mustExpense(t, s, june, cat, valueobject.Period1, 150000)
	mustExpense(t, s, june, cat, valueobject.Period3, 100000)
	if _, err := s.SetBudgets(june, entity.AmountCells{cat: d(200000)}); err != nil {
		t.Fatal(err)
	}
	agg := NewAggregator(s)

	if got := agg.BudgetDeviation(june, cat); !got.Equal(d(-50000)) {
		t.Errorf("expected deviation -50000, got %s", got)
	}
	pct, ok := agg.BudgetPercent(june, cat)
	if !ok || pct != 125 {
		t.Errorf("expected 125%%, got %d (%v)", pct, ok)
	}

	if _, ok := agg.BudgetPercent(june, other); ok {
		t.Error("category without ceiling must be unmeasured")
	}
	if _, ok := agg.BudgetPercent("2030-01", cat); ok {
		t.Error("missing month must be unmeasured")
	}
}

func TestPercent_Rounding(t *testing.T) {
	tests := []struct {
		part, whole int64
		expected    int64
	}{
		{0, 100, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 200, 1}, // 0.5 rounds up
		{999, 1000, 100},
		{5000, 1, 500000},
	}
	for _, tt := range tests {
		if got := Percent(d(tt.part), d(tt.whole)); got != tt.expected {
			t.Errorf("Percent(%d, %d): expected %d, got %d", tt.part, tt.whole, tt.expected, got)
		}
	}
}

func TestAggregator_TotalsAndRange(t *testing.T) {
	s := newFacts(t)
	date := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)
	if _, err := s.AddIncome(june, "Salary", d(50000), date, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddIncome("2025-07", "Salary", d(60000), date.AddDate(0, 1, 0), ""); err != nil {
		t.Fatal(err)
	}
	mustExpense(t, s, june, s.Categories[0].ID, valueobject.Period1, 20000)
	if _, err := s.SetSavings(june, entity.AmountCells{s.Platforms[0].ID: d(3000), s.Platforms[1].ID: d(2000)}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SetInvestments("2025-07", entity.AmountCells{s.Portfolios[0].ID: d(7000)}); err != nil {
		t.Fatal(err)
	}
	agg := NewAggregator(s)

	m := agg.MonthTotals(june)
	if !m.Income.Equal(d(50000)) || !m.Expense.Equal(d(20000)) || !m.Balance.Equal(d(30000)) || !m.Saving.Equal(d(5000)) {
		t.Errorf("unexpected june totals %+v", m)
	}

	sem := s.Semesters[0]
	total := agg.SemesterTotals(sem)
	if !total.Income.Equal(d(110000)) {
		t.Errorf("expected semester income 110000, got %s", total.Income)
	}
	if !total.Investment.Equal(d(7000)) {
		t.Errorf("expected semester investment 7000, got %s", total.Investment)
	}
	if !total.Balance.Equal(d(90000)) {
		t.Errorf("expected semester balance 90000, got %s", total.Balance)
	}

	// months outside any record contribute nothing
	empty := agg.RangeTotals(valueobject.ExpandRange("2031-01", "2031-12"))
	if !empty.Income.IsZero() || !empty.Expense.IsZero() {
		t.Errorf("expected zero totals, got %+v", empty)
	}
	if got := agg.RangeTotals(nil); !got.Income.IsZero() {
		t.Errorf("expected zero totals for empty range, got %+v", got)
	}
}
