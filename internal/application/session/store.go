// Package session owns the per-user FactStore lifecycle: loading, caching
// and serializing mutations before they are persisted.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/pocket-ledger/backend/internal/application/adapter"
	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// Config controls the FactStore cache. A CacheSize of zero disables caching.
// The cache is never used together with a UserLocker.
type Config struct {
	CacheSize int
	CacheTTL  time.Duration
}

// MutateFunc changes facts and returns the operation to persist. Returning
// a nil operation means nothing changed.
type MutateFunc func(facts *entity.FactStore) (entity.Operation, error)

// ReadFunc derives a result from facts. It must not modify them.
type ReadFunc func(facts *entity.FactStore) error

// Store hands out per-user FactStores. Mutations of one user run one at a
// time in arrival order, each on a private copy that only replaces the
// cached store once persistence succeeded.
type Store struct {
	repo   adapter.FactRepository
	locker adapter.UserLocker
	cache  *expirable.LRU[uuid.UUID, *entity.FactStore]

	mu    sync.Mutex
	users map[uuid.UUID]*sync.RWMutex
}

// NewStore creates a new Store. locker may be nil when a single process
// serves all requests. A non-nil locker means other processes write the same
// facts, so every Read and Mutate then loads from repo instead of a local
// cache that could be stale.
func NewStore(repo adapter.FactRepository, locker adapter.UserLocker, cfg Config) *Store {
	s := &Store{
		repo:   repo,
		locker: locker,
		users:  make(map[uuid.UUID]*sync.RWMutex),
	}
	if cfg.CacheSize > 0 && locker == nil {
		s.cache = expirable.NewLRU[uuid.UUID, *entity.FactStore](cfg.CacheSize, nil, cfg.CacheTTL)
	}
	return s
}

// Read runs fn against the user's current facts under a shared lock.
func (s *Store) Read(ctx context.Context, userID uuid.UUID, fn ReadFunc) error {
	l := s.userLock(userID)
	l.RLock()
	defer l.RUnlock()

	facts, err := s.load(ctx, userID)
	if err != nil {
		return err
	}
	return fn(facts)
}

// Mutate applies fn to a copy of the user's facts and persists the
// resulting operation. On a validation or persistence error the visible
// facts are unchanged.
func (s *Store) Mutate(ctx context.Context, userID uuid.UUID, fn MutateFunc) error {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock user facts: %w", err)
		}
		defer unlock()
	}

	facts, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	working := facts.Clone()
	op, err := fn(working)
	if err != nil {
		return err
	}
	if op == nil {
		return nil
	}

	if err := s.repo.Apply(ctx, userID, op); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger operation",
			"user_id", userID,
			"operation", op.Kind(),
			"error", err,
		)
		s.Invalidate(userID)
		return fmt.Errorf("failed to persist %s: %w", op.Kind(), err)
	}

	if s.cache != nil {
		s.cache.Add(userID, working)
	}
	return nil
}

// Invalidate drops the cached facts of a user so the next access reloads.
func (s *Store) Invalidate(userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Remove(userID)
	}
}

// Forget drops every in-memory trace of a user, used after account deletion.
func (s *Store) Forget(userID uuid.UUID) {
	s.Invalidate(userID)
	s.mu.Lock()
	delete(s.users, userID)
	s.mu.Unlock()
}

func (s *Store) load(ctx context.Context, userID uuid.UUID) (*entity.FactStore, error) {
	if s.cache != nil {
		if facts, ok := s.cache.Get(userID); ok {
			return facts, nil
		}
	}

	facts, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load facts: %w", err)
	}
	facts.SortLists()

	if s.cache != nil {
		s.cache.Add(userID, facts)
	}
	return facts, nil
}

func (s *Store) userLock(userID uuid.UUID) *sync.RWMutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.users[userID]
	if !ok {
		l = &sync.RWMutex{}
		s.users[userID] = l
	}
	return l
}
