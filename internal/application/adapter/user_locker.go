// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// UserLocker serializes mutations of one user's facts across processes.
type UserLocker interface {
	// Lock blocks until the user's lock is held or ctx is done. The returned
	// function releases it.
	Lock(ctx context.Context, userID uuid.UUID) (unlock func(), err error)
}
