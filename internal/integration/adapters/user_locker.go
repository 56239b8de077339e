package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pocket-ledger/backend/internal/application/adapter"
)

const (
	// DefaultLockTTL bounds how long a crashed holder can block a user.
	DefaultLockTTL = 10 * time.Second
	lockRetryDelay = 50 * time.Millisecond
	lockKeyPrefix  = "ledger:lock:"
)

// ErrLockTimeout is returned when a user's lock is still held after the
// retry window.
var ErrLockTimeout = errors.New("timed out waiting for user lock")

// redisUserLocker implements adapter.UserLocker with a Redis lock per user.
type redisUserLocker struct {
	locker *redislock.Client
	ttl    time.Duration
}

// NewRedisUserLocker creates a UserLocker backed by Redis.
func NewRedisUserLocker(client redis.UniversalClient, ttl time.Duration) adapter.UserLocker {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &redisUserLocker{
		locker: redislock.New(client),
		ttl:    ttl,
	}
}

// Lock obtains the user's lock, retrying until it is free, ctx is done or
// one TTL has passed.
func (l *redisUserLocker) Lock(ctx context.Context, userID uuid.UUID) (func(), error) {
	retries := int(l.ttl / lockRetryDelay)
	lock, err := l.locker.Obtain(ctx, lockKeyPrefix+userID.String(), l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryDelay), retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockTimeout
	}
	if err != nil {
		return nil, fmt.Errorf("failed to obtain user lock: %w", err)
	}

	return func() {
		// the request context may already be cancelled
		if err := lock.Release(context.Background()); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			slog.Warn("Failed to release user lock", "user_id", userID, "error", err)
		}
	}, nil
}
