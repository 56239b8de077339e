package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
	"github.com/pocket-ledger/backend/internal/integration/persistence/model"
)

const june valueobject.MonthKey = "2025-06"

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

// mutate runs fn on facts and persists the resulting operation the same way
// the session layer does.
func mutate(t *testing.T, repo *factRepository, facts *entity.FactStore, fn func(*entity.FactStore) (entity.Operation, error)) {
	t.Helper()
	op, err := fn(facts)
	if err != nil {
		t.Fatalf("mutation failed: %v", err)
	}
	if op == nil {
		return
	}
	if err := repo.Apply(context.Background(), facts.UserID, op); err != nil {
		t.Fatalf("apply %s failed: %v", op.Kind(), err)
	}
}

func bootstrapped(t *testing.T) (*factRepository, *entity.FactStore) {
	t.Helper()
	repo := &factRepository{db: openTestDB(t)}
	facts := entity.BootstrapFactStore(uuid.New(), time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
	if err := repo.db.Transaction(func(tx *gorm.DB) error { return createFacts(tx, facts) }); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}
	return repo, facts
}

func TestFactRepository_BootstrapRoundTrip(t *testing.T) {
	repo, facts := bootstrapped(t)

	loaded, err := repo.Load(context.Background(), facts.UserID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded.Categories) != len(facts.Categories) {
		t.Errorf("expected %d categories, got %d", len(facts.Categories), len(loaded.Categories))
	}
	for i := range facts.Categories {
		if loaded.Categories[i].ID != facts.Categories[i].ID || loaded.Categories[i].Emoji != facts.Categories[i].Emoji {
			t.Errorf("category %d differs: %+v vs %+v", i, loaded.Categories[i], facts.Categories[i])
		}
	}
	if len(loaded.Platforms) != len(facts.Platforms) || len(loaded.Portfolios) != len(facts.Portfolios) {
		t.Errorf("unexpected buckets %d / %d", len(loaded.Platforms), len(loaded.Portfolios))
	}
	if len(loaded.Semesters) != 1 || loaded.Semesters[0].StartMonth != june {
		t.Errorf("unexpected semesters %+v", loaded.Semesters)
	}
	if len(loaded.Months) != 0 {
		t.Errorf("expected no months, got %d", len(loaded.Months))
	}
}

func TestFactRepository_ApplyUpserts(t *testing.T) {
	repo, facts := bootstrapped(t)
	ctx := context.Background()
	food := facts.Categories[0].ID
	jago := facts.Platforms[0].ID
	wisuda := facts.Portfolios[0].ID

	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetExpenseCell(june, food, valueobject.Period2, decimal.NewFromInt(10000))
	})
	// the second write to the same cell replaces the first
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetExpenseCell(june, food, valueobject.Period2, decimal.RequireFromString("25000.50"))
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetBudgets(june, entity.AmountCells{food: decimal.NewFromInt(500000)})
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetSavings(june, entity.AmountCells{jago: decimal.NewFromInt(100000)})
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetInvestments(june, entity.AmountCells{wisuda: decimal.NewFromInt(75000)})
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.AddIncome(june, "Gaji", decimal.NewFromInt(3000000), time.Date(2025, time.June, 25, 0, 0, 0, 0, time.UTC), "monthly")
	})

	loaded, err := repo.Load(ctx, facts.UserID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	rec := loaded.Month(june)
	if got := rec.ExpenseCell(food, valueobject.Period2); !got.Equal(decimal.RequireFromString("25000.5")) {
		t.Errorf("expected expense 25000.5, got %s", got)
	}
	if budget, ok := rec.BudgetFor(food); !ok || !budget.Equal(decimal.NewFromInt(500000)) {
		t.Errorf("unexpected budget %s (%v)", budget, ok)
	}
	if !rec.SavingFor(jago).Equal(decimal.NewFromInt(100000)) {
		t.Errorf("unexpected saving %s", rec.SavingFor(jago))
	}
	if !rec.InvestmentFor(wisuda).Equal(decimal.NewFromInt(75000)) {
		t.Errorf("unexpected investment %s", rec.InvestmentFor(wisuda))
	}
	if len(rec.Income) != 1 || rec.Income[0].Name != "Gaji" || rec.Income[0].Date.Format("2006-01-02") != "2025-06-25" {
		t.Errorf("unexpected income %+v", rec.Income)
	}

	var count int64
	repo.db.Model(&model.ExpenseCellModel{}).Where("user_id = ?", facts.UserID).Count(&count)
	if count != 1 {
		t.Errorf("expected a single expense row, got %d", count)
	}

	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.DeleteIncome(rec.Income[0].ID), nil
	})
	loaded, err = repo.Load(ctx, facts.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Month(june).Income) != 0 {
		t.Error("income survived deletion")
	}
}

func TestAmountColumnsAreUnscaled(t *testing.T) {
	for _, m := range []interface{}{&model.IncomeModel{}, &model.ExpenseCellModel{}, &model.AmountCellModel{}} {
		sch, err := schema.Parse(m, &sync.Map{}, schema.NamingStrategy{})
		if err != nil {
			t.Fatal(err)
		}
		field := sch.LookUpField("Amount")
		if field == nil {
			t.Fatalf("%s has no Amount field", sch.Name)
		}
		// a fixed scale would round stored amounts
		if got := field.TagSettings["TYPE"]; got != "numeric" {
			t.Errorf("%s.Amount column type = %q, want numeric", sch.Name, got)
		}
	}
}

func TestFactRepository_SubCentAmountsSurviveReload(t *testing.T) {
	repo, facts := bootstrapped(t)
	food := facts.Categories[0].ID
	jago := facts.Platforms[0].ID
	amount := decimal.RequireFromString("0.005")

	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetExpenseCell(june, food, valueobject.Period1, amount)
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetSavings(june, entity.AmountCells{jago: amount})
	})

	loaded, err := repo.Load(context.Background(), facts.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Month(june).ExpenseCell(food, valueobject.Period1); !got.Equal(amount) {
		t.Errorf("expense reloaded as %s, want %s", got, amount)
	}
	if got := loaded.Month(june).SavingFor(jago); !got.Equal(amount) {
		t.Errorf("saving reloaded as %s, want %s", got, amount)
	}
}

func TestFactRepository_BucketGridBatch(t *testing.T) {
	repo, facts := bootstrapped(t)
	dana := facts.Portfolios[0].ID
	july := valueobject.MonthKey("2025-07")

	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetInvestments(june, entity.AmountCells{dana: decimal.NewFromInt(1)})
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetBucketGrid(entity.BucketKindPortfolio, map[valueobject.MonthKey]entity.AmountCells{
			june: {dana: decimal.NewFromInt(40)},
			july: {dana: decimal.NewFromInt(60)},
		})
	})

	loaded, err := repo.Load(context.Background(), facts.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if got := loaded.Month(june).InvestmentFor(dana); !got.Equal(decimal.NewFromInt(40)) {
		t.Errorf("june reloaded as %s, want 40", got)
	}
	if got := loaded.Month(july).InvestmentFor(dana); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("july reloaded as %s, want 60", got)
	}
	var count int64
	repo.db.Table(model.InvestmentsTable).Where("user_id = ?", facts.UserID).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 investment rows, got %d", count)
	}
}

func TestFactRepository_OrphanPolicies(t *testing.T) {
	tests := []struct {
		name   string
		policy entity.OrphanPolicy
		kept   bool
	}{
		{"keep", entity.OrphanPolicyKeep, true},
		{"cascade", entity.OrphanPolicyCascade, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, facts := bootstrapped(t)
			cat := facts.Categories[1].ID
			platform := facts.Platforms[1].ID

			mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
				return f.SetExpenseCell(june, cat, valueobject.Period1, decimal.NewFromInt(9))
			})
			mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
				return f.SetSavings(june, entity.AmountCells{platform: decimal.NewFromInt(4)})
			})
			mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
				return f.DeleteCategory(cat, tt.policy), nil
			})
			mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
				return f.DeleteBucket(entity.BucketKindPlatform, platform, tt.policy), nil
			})

			loaded, err := repo.Load(context.Background(), facts.UserID)
			if err != nil {
				t.Fatal(err)
			}
			for _, c := range loaded.Categories {
				if c.ID == cat {
					t.Fatal("category survived deletion")
				}
			}
			rec := loaded.Month(june)
			if kept := !rec.ExpenseCell(cat, valueobject.Period1).IsZero(); kept != tt.kept {
				t.Errorf("expense cell kept=%v, expected %v", kept, tt.kept)
			}
			if kept := !rec.SavingFor(platform).IsZero(); kept != tt.kept {
				t.Errorf("saving cell kept=%v, expected %v", kept, tt.kept)
			}
		})
	}
}

func TestFactRepository_ClearAndDeleteAll(t *testing.T) {
	repo, facts := bootstrapped(t)
	ctx := context.Background()
	cat := facts.Categories[0].ID

	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetExpenseCell(june, cat, valueobject.Period1, decimal.NewFromInt(1))
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.AddSemester("Next", "2025-12", "2026-05")
	})
	mutate(t, repo, facts, func(f *entity.FactStore) (entity.Operation, error) {
		return f.ClearAllData(), nil
	})

	loaded, err := repo.Load(ctx, facts.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Months) != 0 {
		t.Errorf("expected months to be cleared, got %d", len(loaded.Months))
	}
	if len(loaded.Semesters) != 2 || len(loaded.Categories) != len(facts.Categories) {
		t.Error("clear must keep lists and semesters")
	}

	if err := repo.DeleteAll(ctx, facts.UserID); err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	loaded, err = repo.Load(ctx, facts.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Categories)+len(loaded.Platforms)+len(loaded.Portfolios)+len(loaded.Semesters) != 0 {
		t.Error("facts survived DeleteAll")
	}
}

func newAccount(username string) (*entity.User, *entity.FactStore) {
	user := entity.NewUser(username, "Budi", "hash")
	return user, entity.BootstrapFactStore(user.ID, time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC))
}

func TestUserRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user, facts := newAccount("budi")

	if err := repo.CreateWithFacts(ctx, user, facts); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	other, otherFacts := newAccount("budi")
	if err := repo.CreateWithFacts(ctx, other, otherFacts); !errors.Is(err, domainerror.ErrUsernameAlreadyExists) {
		t.Errorf("expected ErrUsernameAlreadyExists, got %v", err)
	}

	found, err := repo.FindByUsername(ctx, " BUDI ")
	if err != nil || found.ID != user.ID {
		t.Fatalf("find by username failed: %v", err)
	}
	exists, err := repo.ExistsByUsername(ctx, "Budi")
	if err != nil || !exists {
		t.Errorf("expected username to exist, got %v (%v)", exists, err)
	}

	loaded, err := (&factRepository{db: db}).Load(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Semesters) != 1 || len(loaded.Categories) != len(entity.DefaultCategories) {
		t.Errorf("initial facts not stored with the account: %d semesters, %d categories", len(loaded.Semesters), len(loaded.Categories))
	}

	found.Name = "Budi Santoso"
	if err := repo.Update(ctx, found); err != nil {
		t.Fatal(err)
	}
	if again, _ := repo.FindByID(ctx, user.ID); again == nil || again.Name != "Budi Santoso" {
		t.Error("update was not stored")
	}

	if err := repo.Delete(ctx, user.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := repo.FindByID(ctx, user.ID); !errors.Is(err, domainerror.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_RenameOntoTakenUsername(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	ctx := context.Background()
	first, firstFacts := newAccount("budi")
	second, secondFacts := newAccount("sari")
	for _, acc := range []struct {
		user  *entity.User
		facts *entity.FactStore
	}{{first, firstFacts}, {second, secondFacts}} {
		if err := repo.CreateWithFacts(ctx, acc.user, acc.facts); err != nil {
			t.Fatal(err)
		}
	}

	second.Username = "budi"
	if err := repo.Update(ctx, second); !errors.Is(err, domainerror.ErrUsernameAlreadyExists) {
		t.Errorf("expected ErrUsernameAlreadyExists, got %v", err)
	}
}

func TestUserRepository_FailedBootstrapLeavesNoAccount(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	user, facts := newAccount("budi")
	// a repeated primary key makes the fact insert fail after the user row
	facts.Categories = append(facts.Categories, facts.Categories[0])

	if err := repo.CreateWithFacts(ctx, user, facts); err == nil {
		t.Fatal("expected the fact insert to fail")
	}
	if exists, err := repo.ExistsByUsername(ctx, "budi"); err != nil || exists {
		t.Fatalf("user row survived a failed bootstrap: %v (%v)", exists, err)
	}
	var categories int64
	db.Model(&model.CategoryModel{}).Where("user_id = ?", user.ID).Count(&categories)
	if categories != 0 {
		t.Errorf("expected no categories, got %d", categories)
	}

	retry, retryFacts := newAccount("budi")
	if err := repo.CreateWithFacts(ctx, retry, retryFacts); err != nil {
		t.Errorf("retry after failed bootstrap failed: %v", err)
	}
}

func TestUserRepository_RejectsForeignFacts(t *testing.T) {
	repo := NewUserRepository(openTestDB(t))
	user, _ := newAccount("budi")
	_, foreign := newAccount("sari")
	if err := repo.CreateWithFacts(context.Background(), user, foreign); err == nil {
		t.Error("expected an error for facts owned by another user")
	}
}
