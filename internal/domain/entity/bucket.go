package entity

import (
	"time"

	"github.com/google/uuid"
)

// BucketKind distinguishes saving platforms from investment portfolios.
type BucketKind string

const (
	BucketKindPlatform  BucketKind = "platform"
	BucketKindPortfolio BucketKind = "portfolio"
)

// Valid reports whether k is a known bucket kind.
func (k BucketKind) Valid() bool {
	return k == BucketKindPlatform || k == BucketKindPortfolio
}

// Bucket is a named saving platform or investment portfolio. Names are
// unique per user and kind, and buckets cannot be renamed.
type Bucket struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Kind      BucketKind
	Name      string
	SortOrder int
	CreatedAt time.Time
}

// NewBucket creates a new Bucket entity.
func NewBucket(userID uuid.UUID, kind BucketKind, name string, sortOrder int) Bucket {
	return Bucket{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: time.Now().UTC(),
	}
}
