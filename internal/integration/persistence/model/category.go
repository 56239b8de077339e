package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/pocket-ledger/backend/internal/domain/entity"
	"github.com/pocket-ledger/backend/internal/domain/valueobject"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Emoji     string    `gorm:"type:varchar(16);not null"`
	Name      string    `gorm:"type:varchar(50);not null"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() entity.Category {
	return entity.Category{
		ID:        m.ID,
		UserID:    m.UserID,
		Emoji:     m.Emoji,
		Name:      m.Name,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
	}
}

// CategoryFromEntity creates a CategoryModel from a domain Category entity.
func CategoryFromEntity(category entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:        category.ID,
		UserID:    category.UserID,
		Emoji:     category.Emoji,
		Name:      category.Name,
		SortOrder: category.SortOrder,
		CreatedAt: category.CreatedAt,
	}
}

// BucketModel represents the buckets table holding both saving platforms
// and investment portfolios.
type BucketModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"type:varchar(10);not null;index"`
	Name      string    `gorm:"type:varchar(50);not null"`
	SortOrder int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the BucketModel.
func (BucketModel) TableName() string {
	return "buckets"
}

// ToEntity converts a BucketModel to a domain Bucket entity.
func (m *BucketModel) ToEntity() entity.Bucket {
	return entity.Bucket{
		ID:        m.ID,
		UserID:    m.UserID,
		Kind:      entity.BucketKind(m.Kind),
		Name:      m.Name,
		SortOrder: m.SortOrder,
		CreatedAt: m.CreatedAt,
	}
}

// BucketFromEntity creates a BucketModel from a domain Bucket entity.
func BucketFromEntity(bucket entity.Bucket) *BucketModel {
	return &BucketModel{
		ID:        bucket.ID,
		UserID:    bucket.UserID,
		Kind:      string(bucket.Kind),
		Name:      bucket.Name,
		SortOrder: bucket.SortOrder,
		CreatedAt: bucket.CreatedAt,
	}
}

// SemesterModel represents the semesters table in the database.
type SemesterModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	StartMonth string    `gorm:"type:varchar(7);not null"`
	EndMonth   string    `gorm:"type:varchar(7);not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the SemesterModel.
func (SemesterModel) TableName() string {
	return "semesters"
}

// ToEntity converts a SemesterModel to a domain Semester entity.
func (m *SemesterModel) ToEntity() entity.Semester {
	return entity.Semester{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		StartMonth: valueobject.MonthKey(m.StartMonth),
		EndMonth:   valueobject.MonthKey(m.EndMonth),
		CreatedAt:  m.CreatedAt,
	}
}

// SemesterFromEntity creates a SemesterModel from a domain Semester entity.
func SemesterFromEntity(semester entity.Semester) *SemesterModel {
	return &SemesterModel{
		ID:         semester.ID,
		UserID:     semester.UserID,
		Name:       semester.Name,
		StartMonth: string(semester.StartMonth),
		EndMonth:   string(semester.EndMonth),
		CreatedAt:  semester.CreatedAt,
	}
}
