// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/pocket-ledger/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Emoji string `json:"emoji" binding:"max=16"`
	Name  string `json:"name" binding:"required,max=50"`
}

// CreateBucketRequest represents the request body for adding a saving platform or portfolio.
type CreateBucketRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// CreateSemesterRequest represents the request body for semester creation.
type CreateSemesterRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	StartMonth string `json:"start_month" binding:"required"`
	EndMonth   string `json:"end_month" binding:"required"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Emoji     string    `json:"emoji"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// BucketResponse represents a saving platform or portfolio.
type BucketResponse struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

// SemesterResponse represents a semester and the months it spans.
type SemesterResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartMonth string    `json:"start_month"`
	EndMonth   string    `json:"end_month"`
	Months     []string  `json:"months"`
	CreatedAt  time.Time `json:"created_at"`
}

// SemesterListResponse represents the response for listing semesters.
type SemesterListResponse struct {
	Semesters []SemesterResponse `json:"semesters"`
}

// DeleteSemesterResponse carries the semester that is active after a deletion.
type DeleteSemesterResponse struct {
	Active SemesterResponse `json:"active"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:        cat.ID.String(),
		Emoji:     cat.Emoji,
		Name:      cat.Name,
		SortOrder: cat.SortOrder,
		CreatedAt: cat.CreatedAt,
	}
}

// ToCategoryListResponse converts a slice of categories to a CategoryListResponse DTO.
func ToCategoryListResponse(categories []entity.Category) CategoryListResponse {
	response := CategoryListResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
	}
	for _, cat := range categories {
		response.Categories = append(response.Categories, ToCategoryResponse(cat))
	}
	return response
}

// ToBucketResponse converts a Bucket entity to a BucketResponse DTO.
func ToBucketResponse(b entity.Bucket) BucketResponse {
	return BucketResponse{
		ID:        b.ID.String(),
		Kind:      string(b.Kind),
		Name:      b.Name,
		SortOrder: b.SortOrder,
		CreatedAt: b.CreatedAt,
	}
}

// ToBucketResponses converts a list of buckets.
func ToBucketResponses(buckets []entity.Bucket) []BucketResponse {
	out := make([]BucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, ToBucketResponse(b))
	}
	return out
}

// ToSemesterResponse converts a Semester entity, expanding its month range.
func ToSemesterResponse(s entity.Semester) SemesterResponse {
	keys := s.Months()
	months := make([]string, 0, len(keys))
	for _, k := range keys {
		months = append(months, k.String())
	}
	return SemesterResponse{
		ID:         s.ID.String(),
		Name:       s.Name,
		StartMonth: s.StartMonth.String(),
		EndMonth:   s.EndMonth.String(),
		Months:     months,
		CreatedAt:  s.CreatedAt,
	}
}

// ToSemesterListResponse converts a slice of semesters.
func ToSemesterListResponse(semesters []entity.Semester) SemesterListResponse {
	response := SemesterListResponse{
		Semesters: make([]SemesterResponse, 0, len(semesters)),
	}
	for _, s := range semesters {
		response.Semesters = append(response.Semesters, ToSemesterResponse(s))
	}
	return response
}
