package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryEmoji is used when a category is created without an emoji.
const DefaultCategoryEmoji = "📦"

// Category is a user-defined expense bucket. Expense cells and budget
// ceilings reference it by ID.
type Category struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Emoji     string
	Name      string
	SortOrder int
	CreatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(userID uuid.UUID, emoji, name string, sortOrder int) Category {
	if emoji == "" {
		emoji = DefaultCategoryEmoji
	}
	return Category{
		ID:        uuid.New(),
		UserID:    userID,
		Emoji:     emoji,
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: time.Now().UTC(),
	}
}

// DisplayName returns the emoji followed by the name.
func (c Category) DisplayName() string {
	return c.Emoji + " " + c.Name
}
