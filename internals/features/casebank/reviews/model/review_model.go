// file: internals/features/casebank/reviews/model/review_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type ReviewStatus string

const (
	ReviewPending           ReviewStatus = "pending"
	ReviewApproved          ReviewStatus = "approved"
	ReviewRejected          ReviewStatus = "rejected"
	ReviewRevisionRequested ReviewStatus = "revision_requested"
)

func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected, ReviewRevisionRequested:
		return true
	}
	return false
}

// IsDecision: status final yang boleh dikirim reviewer.
func (s ReviewStatus) IsDecision() bool {
	switch s {
	case ReviewApproved, ReviewRejected, ReviewRevisionRequested:
		return true
	}
	return false
}

// ReviewModel: penilaian satu reviewer atas satu case.
// Maksimal satu review pending per (case, reviewer); terminal begitu diputus.
type ReviewModel struct {
	ReviewID         uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"review_id"`
	ReviewCaseID     uuid.UUID `gorm:"column:review_case_id;type:uuid;not null;index" json:"review_case_id"`
	ReviewReviewerID uuid.UUID `gorm:"column:review_reviewer_id;type:uuid;not null;index" json:"review_reviewer_id"`

	ReviewStatus   ReviewStatus `gorm:"column:review_status;type:varchar(20);not null;default:'pending'" json:"review_status"`
	ReviewComments string       `gorm:"column:review_comments;type:text" json:"review_comments"`

	ReviewCreatedAt time.Time  `gorm:"column:review_created_at;not null;autoCreateTime" json:"review_created_at"`
	ReviewDecidedAt *time.Time `gorm:"column:review_decided_at" json:"review_decided_at,omitempty"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}
