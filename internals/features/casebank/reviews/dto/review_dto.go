// file: internals/features/casebank/reviews/dto/review_dto.go
package dto

import (
	"github.com/google/uuid"
)

type AssignReviewerRequest struct {
	ReviewerID uuid.UUID `json:"reviewer_id" validate:"required"`
}

type SubmitReviewRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approved rejected revision_requested"`
	Comments string `json:"comments" validate:"omitempty,max=5000"`
}
