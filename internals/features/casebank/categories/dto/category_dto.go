// file: internals/features/casebank/categories/dto/category_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	categoryModel "praktikum_backend/internals/features/casebank/categories/model"
)

type CreateCategoryRequest struct {
	CategoryParentID    *uuid.UUID `json:"category_parent_id" validate:"omitempty"`
	CategoryName        string     `json:"category_name" validate:"required,min=2,max=100"`
	CategorySlug        string     `json:"category_slug" validate:"required,min=2,max=100,lowercase"`
	CategoryDescription string     `json:"category_description"`
}

func (r *CreateCategoryRequest) ToModel() *categoryModel.CategoryModel {
	return &categoryModel.CategoryModel{
		CategoryParentID:    r.CategoryParentID,
		CategoryName:        r.CategoryName,
		CategorySlug:        r.CategorySlug,
		CategoryDescription: r.CategoryDescription,
	}
}

type UpdateCategoryRequest struct {
	CategoryParentID    *uuid.UUID `json:"category_parent_id" validate:"omitempty"`
	CategoryName        *string    `json:"category_name" validate:"omitempty,min=2,max=100"`
	CategorySlug        *string    `json:"category_slug" validate:"omitempty,min=2,max=100,lowercase"`
	CategoryDescription *string    `json:"category_description"`
}

func (r *UpdateCategoryRequest) ApplyToModel(m *categoryModel.CategoryModel) {
	if r.CategoryParentID != nil {
		m.CategoryParentID = r.CategoryParentID
	}
	if r.CategoryName != nil {
		m.CategoryName = *r.CategoryName
	}
	if r.CategorySlug != nil {
		m.CategorySlug = *r.CategorySlug
	}
	if r.CategoryDescription != nil {
		m.CategoryDescription = *r.CategoryDescription
	}
}

// CategoryResponse membawa jumlah case di dalamnya (dihitung terpisah,
// hasilnya di-cache).
type CategoryResponse struct {
	CategoryID          uuid.UUID  `json:"category_id"`
	CategoryParentID    *uuid.UUID `json:"category_parent_id,omitempty"`
	CategoryName        string     `json:"category_name"`
	CategorySlug        string     `json:"category_slug"`
	CategoryDescription string     `json:"category_description,omitempty"`
	CategoryCaseCount   int64      `json:"category_case_count"`
	CategoryCreatedAt   time.Time  `json:"category_created_at"`
}

func FromModelCategory(m *categoryModel.CategoryModel, caseCount int64) CategoryResponse {
	return CategoryResponse{
		CategoryID:          m.CategoryID,
		CategoryParentID:    m.CategoryParentID,
		CategoryName:        m.CategoryName,
		CategorySlug:        m.CategorySlug,
		CategoryDescription: m.CategoryDescription,
		CategoryCaseCount:   caseCount,
		CategoryCreatedAt:   m.CategoryCreatedAt,
	}
}
