package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

const june = valueobject.MonthKey("2025-06")

func newTestStore(t *testing.T) *FactStore {
	t.Helper()
	return BootstrapFactStore(uuid.New(), time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
}

func ledgerCode(t *testing.T, err error) domainerror.LedgerErrorCode {
	t.Helper()
	var ledgerErr *domainerror.LedgerError
	if !errors.As(err, &ledgerErr) {
		t.Fatalf("expected LedgerError, got %v", err)
	}
	return ledgerErr.Code
}

func TestBootstrapFactStore(t *testing.T) {
	s := newTestStore(t)

	if len(s.Categories) != len(DefaultCategories) {
		t.Errorf("expected %d categories, got %d", len(DefaultCategories), len(s.Categories))
	}
	if len(s.Platforms) != len(DefaultPlatforms) {
		t.Errorf("expected %d platforms, got %d", len(DefaultPlatforms), len(s.Platforms))
	}
	if len(s.Portfolios) != len(DefaultPortfolios) {
		t.Errorf("expected %d portfolios, got %d", len(DefaultPortfolios), len(s.Portfolios))
	}
	if len(s.Months) != 0 {
		t.Errorf("expected no month records, got %d", len(s.Months))
	}
	if len(s.Semesters) != 1 {
		t.Fatalf("expected exactly one semester, got %d", len(s.Semesters))
	}

	sem := s.Semesters[0]
	if sem.StartMonth != "2025-06" || sem.EndMonth != "2025-11" {
		t.Errorf("unexpected semester range %s..%s", sem.StartMonth, sem.EndMonth)
	}
	if len(sem.Months()) != SemesterLength {
		t.Errorf("expected %d months, got %d", SemesterLength, len(sem.Months()))
	}
	for i, c := range s.Categories {
		if c.SortOrder != i || c.UserID != s.UserID {
			t.Errorf("category %s has sort %d user %s", c.Name, c.SortOrder, c.UserID)
		}
	}
}

func TestFactStore_SetExpenseCell(t *testing.T) {
	s := newTestStore(t)
	cat := s.Categories[0].ID

	t.Run("upsert does not accumulate", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			if _, err := s.SetExpenseCell(june, cat, valueobject.Period2, decimal.NewFromInt(500)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if got := s.Month(june).ExpenseCell(cat, valueobject.Period2); !got.Equal(decimal.NewFromInt(500)) {
			t.Errorf("expected 500, got %s", got)
		}
	})

	t.Run("overwrite with zero", func(t *testing.T) {
		if _, err := s.SetExpenseCell(june, cat, valueobject.Period2, decimal.Zero); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Month(june).ExpenseCell(cat, valueobject.Period2); !got.IsZero() {
			t.Errorf("expected 0, got %s", got)
		}
	})

	t.Run("negative amount rejected without mutation", func(t *testing.T) {
		_, err := s.SetExpenseCell("2025-07", cat, valueobject.Period1, decimal.NewFromInt(-1))
		if ledgerCode(t, err) != domainerror.ErrCodeNegativeAmount {
			t.Errorf("unexpected code for %v", err)
		}
		if s.Month("2025-07") != nil {
			t.Error("rejected write created a month record")
		}
	})

	t.Run("invalid period rejected", func(t *testing.T) {
		_, err := s.SetExpenseCell(june, cat, 6, decimal.NewFromInt(1))
		if ledgerCode(t, err) != domainerror.ErrCodeInvalidPeriod {
			t.Errorf("unexpected code for %v", err)
		}
	})

	t.Run("invalid month rejected", func(t *testing.T) {
		_, err := s.SetExpenseCell("2025-13", cat, valueobject.Period1, decimal.NewFromInt(1))
		if ledgerCode(t, err) != domainerror.ErrCodeInvalidMonth {
			t.Errorf("unexpected code for %v", err)
		}
	})

	t.Run("unknown category accepted", func(t *testing.T) {
		if _, err := s.SetExpenseCell(june, uuid.New(), valueobject.Period1, decimal.NewFromInt(10)); err != nil {
			t.Errorf("expected orphan write to succeed, got %v", err)
		}
	})
}

func TestFactStore_AddIncome(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		entry    string
		amount   int64
		date     time.Time
		wantCode domainerror.LedgerErrorCode
	}{
		{name: "zero amount", entry: "Salary", amount: 0, date: date, wantCode: domainerror.ErrCodeNonPositiveAmount},
		{name: "negative amount", entry: "Salary", amount: -100, date: date, wantCode: domainerror.ErrCodeNonPositiveAmount},
		{name: "blank name", entry: "  ", amount: 100, date: date, wantCode: domainerror.ErrCodeMissingName},
		{name: "missing date", entry: "Salary", amount: 100, wantCode: domainerror.ErrCodeInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.AddIncome(june, tt.entry, decimal.NewFromInt(tt.amount), tt.date, "")
			if ledgerCode(t, err) != tt.wantCode {
				t.Errorf("expected %s, got %v", tt.wantCode, err)
			}
		})
	}
	if s.Month(june) != nil {
		t.Fatal("rejected income created a month record")
	}

	op, err := s.AddIncome(june, "Salary", decimal.NewFromInt(50000), date, "june pay")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Month(june).Income) != 1 || s.Month(june).Income[0].ID != op.Entry.ID {
		t.Fatalf("income not stored: %+v", s.Month(june))
	}

	t.Run("delete is idempotent", func(t *testing.T) {
		if del := s.DeleteIncome(op.Entry.ID); del == nil {
			t.Fatal("expected an operation for an existing entry")
		}
		if del := s.DeleteIncome(op.Entry.ID); del != nil {
			t.Errorf("expected nil operation for a missing entry, got %v", del)
		}
		if len(s.Month(june).Income) != 0 {
			t.Error("income entry still present")
		}
	})
}

func TestFactStore_SetAmountsIsAtomic(t *testing.T) {
	s := newTestStore(t)
	a, b := s.Categories[0].ID, s.Categories[1].ID

	_, err := s.SetBudgets(june, AmountCells{
		a: decimal.NewFromInt(200000),
		b: decimal.NewFromInt(-5),
	})
	if ledgerCode(t, err) != domainerror.ErrCodeNegativeAmount {
		t.Fatalf("unexpected error %v", err)
	}
	if _, ok := s.Month(june).BudgetFor(a); ok {
		t.Error("valid item applied although the batch was rejected")
	}

	op, err := s.SetSavings(june, AmountCells{s.Platforms[0].ID: decimal.NewFromInt(75)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op.Target != TargetSavings || op.Kind() != "savings_set" {
		t.Errorf("unexpected operation %+v", op)
	}
	if got := s.Month(june).SavingFor(s.Platforms[0].ID); !got.Equal(decimal.NewFromInt(75)) {
		t.Errorf("expected 75, got %s", got)
	}

	if _, err := s.SetInvestments(june, AmountCells{s.Portfolios[0].ID: decimal.Zero}); err != nil {
		t.Fatalf("zero investment should be accepted: %v", err)
	}
}

func TestFactStore_EmptyBatchLeavesMonthUntouched(t *testing.T) {
	s := newTestStore(t)

	for name, set := range map[string]func(valueobject.MonthKey, AmountCells) (AmountsSet, error){
		"budget":     s.SetBudgets,
		"savings":    s.SetSavings,
		"investment": s.SetInvestments,
	} {
		t.Run(name, func(t *testing.T) {
			op, err := set(june, AmountCells{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(op.Amounts) != 0 {
				t.Errorf("expected no applied amounts, got %v", op.Amounts)
			}
			if _, ok := s.Months[june]; ok {
				t.Error("empty batch created a month record")
			}
		})
	}

	if _, err := s.SetBudgets("2025-13", AmountCells{}); ledgerCode(t, err) != domainerror.ErrCodeInvalidMonth {
		t.Errorf("empty batch must still validate the month, got %v", err)
	}
}

func TestFactStore_SetBucketGrid(t *testing.T) {
	july := valueobject.MonthKey("2025-07")

	t.Run("applies every month", func(t *testing.T) {
		s := newTestStore(t)
		pid := s.Platforms[0].ID

		op, err := s.SetBucketGrid(BucketKindPlatform, map[valueobject.MonthKey]AmountCells{
			july:      {pid: decimal.NewFromInt(30)},
			june:      {pid: decimal.NewFromInt(20)},
			"2025-08": {},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if op.Target != TargetSavings || op.Kind() != "savings_batch_set" {
			t.Errorf("unexpected operation %+v", op)
		}
		if len(op.Sets) != 2 || op.Sets[0].Month != june || op.Sets[1].Month != july {
			t.Fatalf("expected june and july sets in order, got %+v", op.Sets)
		}
		if got := s.Month(july).SavingFor(pid); !got.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected 30, got %s", got)
		}
		if _, ok := s.Months["2025-08"]; ok {
			t.Error("empty month created a record")
		}
	})

	t.Run("portfolio grid writes investments", func(t *testing.T) {
		s := newTestStore(t)
		pid := s.Portfolios[0].ID

		op, err := s.SetBucketGrid(BucketKindPortfolio, map[valueobject.MonthKey]AmountCells{
			june: {pid: decimal.NewFromInt(9)},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if op.Target != TargetInvestment {
			t.Errorf("expected investment target, got %s", op.Target)
		}
		if got := s.Month(june).InvestmentFor(pid); !got.Equal(decimal.NewFromInt(9)) {
			t.Errorf("expected 9, got %s", got)
		}
	})

	t.Run("one bad cell rejects the whole grid", func(t *testing.T) {
		s := newTestStore(t)
		pid := s.Platforms[0].ID

		_, err := s.SetBucketGrid(BucketKindPlatform, map[valueobject.MonthKey]AmountCells{
			june: {pid: decimal.NewFromInt(20)},
			july: {pid: decimal.NewFromInt(-1)},
		})
		if ledgerCode(t, err) != domainerror.ErrCodeNegativeAmount {
			t.Fatalf("unexpected error %v", err)
		}
		if len(s.Months) != 0 {
			t.Errorf("expected no month records, got %d", len(s.Months))
		}
	})

	t.Run("bad month rejects the whole grid", func(t *testing.T) {
		s := newTestStore(t)
		pid := s.Platforms[0].ID

		_, err := s.SetBucketGrid(BucketKindPlatform, map[valueobject.MonthKey]AmountCells{
			june:     {pid: decimal.NewFromInt(20)},
			"2025-6": {pid: decimal.NewFromInt(1)},
		})
		if ledgerCode(t, err) != domainerror.ErrCodeInvalidMonth {
			t.Fatalf("unexpected error %v", err)
		}
		if len(s.Months) != 0 {
			t.Errorf("expected no month records, got %d", len(s.Months))
		}
	})
}

func TestFactStore_AddCategory(t *testing.T) {
	s := NewFactStore(uuid.New())

	first, err := s.AddCategory("", "Food")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Category.SortOrder != 0 {
		t.Errorf("expected sort order 0 for the first category, got %d", first.Category.SortOrder)
	}
	if first.Category.Emoji != DefaultCategoryEmoji {
		t.Errorf("expected default emoji, got %q", first.Category.Emoji)
	}

	s.Categories[0].SortOrder = 7
	second, err := s.AddCategory("🚗", "Transport")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Category.SortOrder != 8 {
		t.Errorf("expected sort order 8, got %d", second.Category.SortOrder)
	}

	if _, err := s.AddCategory("", "Food"); ledgerCode(t, err) != domainerror.ErrCodeDuplicateName {
		t.Errorf("expected duplicate name error, got %v", err)
	}
	// names are case sensitive
	if _, err := s.AddCategory("", "food"); err != nil {
		t.Errorf("expected differently cased name to be accepted, got %v", err)
	}
}

func TestFactStore_DeleteCategoryPolicies(t *testing.T) {
	for _, policy := range []OrphanPolicy{OrphanPolicyKeep, OrphanPolicyCascade} {
		t.Run(string(policy), func(t *testing.T) {
			s := newTestStore(t)
			cat := s.Categories[0].ID
			if _, err := s.SetExpenseCell(june, cat, valueobject.Period1, decimal.NewFromInt(10)); err != nil {
				t.Fatal(err)
			}
			if _, err := s.SetBudgets(june, AmountCells{cat: decimal.NewFromInt(20)}); err != nil {
				t.Fatal(err)
			}

			op := s.DeleteCategory(cat, policy)
			deleted, ok := op.(CategoryDeleted)
			if !ok {
				t.Fatalf("expected CategoryDeleted, got %T", op)
			}
			if deleted.Cascade != (policy == OrphanPolicyCascade) {
				t.Errorf("unexpected cascade flag %v", deleted.Cascade)
			}
			for _, c := range s.Categories {
				if c.ID == cat {
					t.Fatal("category still listed")
				}
			}

			_, kept := s.Month(june).Expenses[cat]
			if kept != (policy == OrphanPolicyKeep) {
				t.Errorf("expense cells kept=%v under policy %s", kept, policy)
			}
			if s.DeleteCategory(cat, policy) != nil {
				t.Error("second delete should be a no-op")
			}
		})
	}
}

func TestFactStore_Buckets(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.AddBucket(BucketKindPlatform, "JAGO"); ledgerCode(t, err) != domainerror.ErrCodeDuplicateName {
		t.Errorf("expected duplicate platform rejected, got %v", err)
	}
	// the same name is allowed across kinds
	added, err := s.AddBucket(BucketKindPortfolio, "JAGO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added.Bucket.SortOrder != len(DefaultPortfolios) {
		t.Errorf("expected sort order %d, got %d", len(DefaultPortfolios), added.Bucket.SortOrder)
	}
	if _, err := s.AddBucket("wallet", "x"); ledgerCode(t, err) != domainerror.ErrCodeInvalidRequest {
		t.Errorf("expected invalid kind rejected, got %v", err)
	}

	pid := s.Platforms[0].ID
	if _, err := s.SetSavings(june, AmountCells{pid: decimal.NewFromInt(5)}); err != nil {
		t.Fatal(err)
	}
	if s.DeleteBucket(BucketKindPlatform, pid, OrphanPolicyCascade) == nil {
		t.Fatal("expected delete operation")
	}
	if _, ok := s.Month(june).Savings[pid]; ok {
		t.Error("cascade delete kept saving cell")
	}
	if len(s.Platforms) != len(DefaultPlatforms)-1 {
		t.Errorf("expected %d platforms, got %d", len(DefaultPlatforms)-1, len(s.Platforms))
	}
}

func TestFactStore_Semesters(t *testing.T) {
	s := newTestStore(t)
	only := s.Semesters[0].ID

	_, err := s.DeleteSemester(only)
	if ledgerCode(t, err) != domainerror.ErrCodeLastSemester {
		t.Fatalf("expected last semester rejection, got %v", err)
	}

	if _, err := s.AddSemester("Bad", "2025-08", "2025-07"); ledgerCode(t, err) != domainerror.ErrCodeInvalidSemesterRange {
		t.Errorf("expected range error, got %v", err)
	}
	if _, err := s.AddSemester("", "2025-08", "2025-09"); ledgerCode(t, err) != domainerror.ErrCodeMissingName {
		t.Errorf("expected missing name error, got %v", err)
	}

	earlier, err := s.AddSemester("Semester 0", "2025-01", "2025-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Semesters[0].ID != earlier.Semester.ID {
		t.Error("semesters should be ordered by start month")
	}

	active, _ := s.ActiveSemester(only)
	if active.ID != only {
		t.Fatal("expected the requested semester to be active")
	}
	op, err := s.DeleteSemester(only)
	if err != nil || op == nil {
		t.Fatalf("expected delete to succeed, got %v %v", op, err)
	}
	active, ok := s.ActiveSemester(only)
	if !ok || active.ID != earlier.Semester.ID {
		t.Errorf("expected remaining semester to become active, got %+v", active)
	}

	if op, err := s.DeleteSemester(uuid.New()); op != nil || err != nil {
		t.Errorf("expected unknown semester delete to be a no-op, got %v %v", op, err)
	}
}

func TestFactStore_ClearAllData(t *testing.T) {
	s := newTestStore(t)
	cat := s.Categories[0].ID
	if _, err := s.SetExpenseCell(june, cat, valueobject.Period1, decimal.NewFromInt(1)); err != nil {
		t.Fatal(err)
	}
	categories, semesters := len(s.Categories), len(s.Semesters)

	s.ClearAllData()

	if len(s.Months) != 0 {
		t.Errorf("expected no months, got %d", len(s.Months))
	}
	if len(s.Categories) != categories || len(s.Semesters) != semesters {
		t.Error("clear data touched categories or semesters")
	}
}

func TestFactStore_Clone(t *testing.T) {
	s := newTestStore(t)
	cat := s.Categories[0].ID
	if _, err := s.SetExpenseCell(june, cat, valueobject.Period1, decimal.NewFromInt(1)); err != nil {
		t.Fatal(err)
	}

	c := s.Clone()
	if _, err := c.SetExpenseCell(june, cat, valueobject.Period1, decimal.NewFromInt(9)); err != nil {
		t.Fatal(err)
	}
	c.DeleteCategory(cat, OrphanPolicyKeep)

	if got := s.Month(june).ExpenseCell(cat, valueobject.Period1); !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("clone write leaked into original: %s", got)
	}
	if len(s.Categories) != len(DefaultCategories) {
		t.Error("clone delete leaked into original")
	}
}
