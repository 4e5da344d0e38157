// file: internals/features/casebank/cases/dto/bulk_dto.go
package dto

import "github.com/google/uuid"

// BulkIDsRequest: payload umum bulk publish/archive/delete/duplicate.
type BulkIDsRequest struct {
	CaseIDs []uuid.UUID `json:"case_ids" validate:"required,min=1,max=100,dive,required"`
}

type BulkMoveRequest struct {
	CaseIDs          []uuid.UUID `json:"case_ids" validate:"required,min=1,max=100,dive,required"`
	TargetCategoryID uuid.UUID   `json:"target_category_id" validate:"required"`
}

type BulkAssignTagsRequest struct {
	CaseIDs []uuid.UUID `json:"case_ids" validate:"required,min=1,max=100,dive,required"`
	Tags    []string    `json:"tags" validate:"required,min=1,dive,min=1,max=50"`
}

type BulkDuplicateRequest struct {
	CaseIDs          []uuid.UUID `json:"case_ids" validate:"required,min=1,max=100,dive,required"`
	TargetCategoryID *uuid.UUID  `json:"target_category_id" validate:"omitempty"`
}
