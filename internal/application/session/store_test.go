package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	domainerror "github.com/pocket-ledger/backend/internal/domain/error"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

type fakeFactRepository struct {
	mu       sync.Mutex
	facts    map[uuid.UUID]*entity.FactStore
	loads    int
	applied  []entity.Operation
	applyErr error
}

func newFakeFactRepository() *fakeFactRepository {
	return &fakeFactRepository{facts: make(map[uuid.UUID]*entity.FactStore)}
}

func (r *fakeFactRepository) Load(_ context.Context, userID uuid.UUID) (*entity.FactStore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
	f, ok := r.facts[userID]
	if !ok {
		return entity.NewFactStore(userID), nil
	}
	return f.Clone(), nil
}

func (r *fakeFactRepository) Apply(_ context.Context, userID uuid.UUID, op entity.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.applyErr != nil {
		return r.applyErr
	}
	r.applied = append(r.applied, op)
	if f, ok := r.facts[userID]; ok {
		replay(f, op)
	}
	return nil
}

// replay applies the operations these tests produce to the stored facts, so
// an uncached Store observes earlier writes.
func replay(f *entity.FactStore, op entity.Operation) {
	switch o := op.(type) {
	case entity.ExpenseCellSet:
		_, _ = f.SetExpenseCell(o.Month, o.CategoryID, o.Period, o.Amount)
	case entity.CategoryAdded:
		f.Categories = append(f.Categories, o.Category)
	case entity.SemesterDeleted:
		for i, sem := range f.Semesters {
			if sem.ID == o.ID {
				f.Semesters = append(f.Semesters[:i], f.Semesters[i+1:]...)
				break
			}
		}
	}
}

func (r *fakeFactRepository) seed(_ context.Context, facts *entity.FactStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.facts[facts.UserID] = facts.Clone()
	return nil
}

func (r *fakeFactRepository) DeleteAll(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.facts, userID)
	return nil
}

// mutexLocker stands in for a lock shared by several processes.
type mutexLocker struct {
	mu sync.Mutex
}

func (l *mutexLocker) Lock(_ context.Context, _ uuid.UUID) (func(), error) {
	l.mu.Lock()
	return l.mu.Unlock, nil
}

type countingLocker struct {
	mu    sync.Mutex
	locks int
}

func (l *countingLocker) Lock(_ context.Context, _ uuid.UUID) (func(), error) {
	l.mu.Lock()
	l.locks++
	l.mu.Unlock()
	return func() {}, nil
}

func setup(t *testing.T, cfg Config) (*Store, *fakeFactRepository, uuid.UUID) {
	t.Helper()
	repo := newFakeFactRepository()
	userID := uuid.New()
	if err := repo.seed(context.Background(), entity.BootstrapFactStore(userID, time.Now())); err != nil {
		t.Fatal(err)
	}
	return NewStore(repo, nil, cfg), repo, userID
}

func setCell(cat uuid.UUID, amount int64) MutateFunc {
	return func(f *entity.FactStore) (entity.Operation, error) {
		return f.SetExpenseCell("2025-06", cat, valueobject.Period1, decimal.NewFromInt(amount))
	}
}

func readCell(t *testing.T, s *Store, userID, cat uuid.UUID) decimal.Decimal {
	t.Helper()
	var got decimal.Decimal
	err := s.Read(context.Background(), userID, func(f *entity.FactStore) error {
		got = f.Month("2025-06").ExpenseCell(cat, valueobject.Period1)
		return nil
	})
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return got
}

func firstCategory(t *testing.T, s *Store, userID uuid.UUID) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := s.Read(context.Background(), userID, func(f *entity.FactStore) error {
		id = f.Categories[0].ID
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return id
}

func TestStore_MutatePersistsAndCaches(t *testing.T) {
	s, repo, userID := setup(t, Config{CacheSize: 8, CacheTTL: time.Minute})
	ctx := context.Background()
	cat := firstCategory(t, s, userID)

	if err := s.Mutate(ctx, userID, setCell(cat, 500)); err != nil {
		t.Fatalf("mutate failed: %v", err)
	}
	if got := readCell(t, s, userID, cat); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected 500, got %s", got)
	}
	if len(repo.applied) != 1 {
		t.Errorf("expected 1 persisted operation, got %d", len(repo.applied))
	}
	if repo.loads != 1 {
		t.Errorf("expected a single load with caching, got %d", repo.loads)
	}
}

func TestStore_ValidationFailureLeavesFactsUntouched(t *testing.T) {
	s, repo, userID := setup(t, Config{CacheSize: 8, CacheTTL: time.Minute})
	ctx := context.Background()
	cat := firstCategory(t, s, userID)

	err := s.Mutate(ctx, userID, func(f *entity.FactStore) (entity.Operation, error) {
		// the first write lands on the working copy before the second fails
		if _, err := f.SetExpenseCell("2025-06", cat, valueobject.Period1, decimal.NewFromInt(1)); err != nil {
			return nil, err
		}
		return f.SetExpenseCell("2025-06", cat, valueobject.Period1, decimal.NewFromInt(-1))
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := readCell(t, s, userID, cat); !got.IsZero() {
		t.Errorf("partial mutation became visible: %s", got)
	}
	if len(repo.applied) != 0 {
		t.Error("nothing should be persisted")
	}
}

func TestStore_PersistenceFailureInvalidates(t *testing.T) {
	s, repo, userID := setup(t, Config{CacheSize: 8, CacheTTL: time.Minute})
	ctx := context.Background()
	cat := firstCategory(t, s, userID)

	repo.applyErr = errors.New("database down")
	if err := s.Mutate(ctx, userID, setCell(cat, 10)); err == nil {
		t.Fatal("expected persistence error")
	}
	repo.applyErr = nil

	loadsBefore := repo.loads
	if got := readCell(t, s, userID, cat); !got.IsZero() {
		t.Errorf("failed write became visible: %s", got)
	}
	if repo.loads != loadsBefore+1 {
		t.Error("expected the cache to be invalidated and facts reloaded")
	}
}

func TestStore_NilOperationIsNotPersisted(t *testing.T) {
	s, repo, userID := setup(t, Config{})
	err := s.Mutate(context.Background(), userID, func(f *entity.FactStore) (entity.Operation, error) {
		return f.DeleteIncome(uuid.New()), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.applied) != 0 {
		t.Error("no-op delete should not reach the repository")
	}
}

func TestStore_WithoutCacheReloadsEveryTime(t *testing.T) {
	s, repo, userID := setup(t, Config{CacheSize: 0})
	for i := 0; i < 3; i++ {
		firstCategory(t, s, userID)
	}
	if repo.loads != 3 {
		t.Errorf("expected 3 loads, got %d", repo.loads)
	}
}

func TestStore_SerializesMutations(t *testing.T) {
	repo := newFakeFactRepository()
	userID := uuid.New()
	if err := repo.seed(context.Background(), entity.BootstrapFactStore(userID, time.Now())); err != nil {
		t.Fatal(err)
	}
	locker := &countingLocker{}
	s := NewStore(repo, locker, Config{CacheSize: 8, CacheTTL: time.Minute})
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Mutate(ctx, userID, func(f *entity.FactStore) (entity.Operation, error) {
				return f.AddCategory("", uuid.NewString())
			})
			if err != nil {
				t.Errorf("mutate failed: %v", err)
			}
		}()
	}
	wg.Wait()

	var count int
	if err := s.Read(ctx, userID, func(f *entity.FactStore) error {
		count = len(f.Categories)
		seen := make(map[int]bool)
		for _, c := range f.Categories {
			if seen[c.SortOrder] {
				t.Errorf("duplicate sort order %d", c.SortOrder)
			}
			seen[c.SortOrder] = true
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if count != len(entity.DefaultCategories)+workers {
		t.Errorf("expected %d categories, got %d", len(entity.DefaultCategories)+workers, count)
	}
	if locker.locks != workers {
		t.Errorf("expected %d distributed locks, got %d", workers, locker.locks)
	}
}

func TestStore_Forget(t *testing.T) {
	s, repo, userID := setup(t, Config{CacheSize: 8, CacheTTL: time.Minute})
	firstCategory(t, s, userID)
	s.Forget(userID)
	firstCategory(t, s, userID)
	if repo.loads != 2 {
		t.Errorf("expected reload after Forget, got %d loads", repo.loads)
	}
}

func TestStore_InstancesSharingARepositoryValidateAgainstStoredFacts(t *testing.T) {
	repo := newFakeFactRepository()
	userID := uuid.New()
	facts := entity.BootstrapFactStore(userID, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	if _, err := facts.AddSemester("Semester 2", "2025-12", "2026-05"); err != nil {
		t.Fatal(err)
	}
	if err := repo.seed(context.Background(), facts); err != nil {
		t.Fatal(err)
	}
	first, second := facts.Semesters[0].ID, facts.Semesters[1].ID

	locker := &mutexLocker{}
	cfg := Config{CacheSize: 8, CacheTTL: time.Minute}
	a := NewStore(repo, locker, cfg)
	b := NewStore(repo, locker, cfg)
	ctx := context.Background()

	// both instances have seen two semesters
	for _, s := range []*Store{a, b} {
		if err := s.Read(ctx, userID, func(*entity.FactStore) error { return nil }); err != nil {
			t.Fatal(err)
		}
	}

	deleteSemester := func(id uuid.UUID) MutateFunc {
		return func(f *entity.FactStore) (entity.Operation, error) {
			return f.DeleteSemester(id)
		}
	}
	if err := a.Mutate(ctx, userID, deleteSemester(first)); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	err := b.Mutate(ctx, userID, deleteSemester(second))
	var ledgerErr *domainerror.LedgerError
	if !errors.As(err, &ledgerErr) || ledgerErr.Code != domainerror.ErrCodeLastSemester {
		t.Fatalf("expected the last semester to be protected, got %v", err)
	}

	var remaining int
	if err := b.Read(ctx, userID, func(f *entity.FactStore) error {
		remaining = len(f.Semesters)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if remaining != 1 {
		t.Errorf("expected 1 semester, got %d", remaining)
	}
}

func TestStore_LockerDisablesCache(t *testing.T) {
	repo := newFakeFactRepository()
	userID := uuid.New()
	if err := repo.seed(context.Background(), entity.BootstrapFactStore(userID, time.Now())); err != nil {
		t.Fatal(err)
	}
	s := NewStore(repo, &mutexLocker{}, Config{CacheSize: 8, CacheTTL: time.Minute})
	for i := 0; i < 2; i++ {
		firstCategory(t, s, userID)
	}
	if repo.loads != 2 {
		t.Errorf("expected every read to load, got %d loads", repo.loads)
	}
}
