// file: internals/features/casebank/attempts/model/practice_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

// PracticeSessionModel: latihan tanpa deadline. Sesi idle terlalu lama
// di-abandon oleh sweep. Maksimal satu sesi active per (case, user).
type PracticeSessionModel struct {
	PracticeSessionID     uuid.UUID `gorm:"column:practice_session_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"practice_session_id"`
	PracticeSessionToken  string    `gorm:"column:practice_session_token;type:varchar(64);unique;not null" json:"practice_session_token"`
	PracticeSessionCaseID uuid.UUID `gorm:"column:practice_session_case_id;type:uuid;not null;index" json:"practice_session_case_id"`
	PracticeSessionUserID uuid.UUID `gorm:"column:practice_session_user_id;type:uuid;not null;index" json:"practice_session_user_id"`

	PracticeSessionQuestionOrder datatypes.JSON `gorm:"column:practice_session_question_order;type:jsonb;not null" json:"practice_session_question_order"`
	PracticeSessionResponses     datatypes.JSON `gorm:"column:practice_session_responses;type:jsonb" json:"practice_session_responses,omitempty"`
	PracticeSessionStatus        SessionStatus  `gorm:"column:practice_session_status;type:varchar(16);not null;default:'active';index" json:"practice_session_status"`

	PracticeSessionStartedAt   time.Time  `gorm:"column:practice_session_started_at;not null" json:"practice_session_started_at"`
	PracticeSessionLastSavedAt *time.Time `gorm:"column:practice_session_last_saved_at" json:"practice_session_last_saved_at,omitempty"`

	PracticeSessionCreatedAt time.Time `gorm:"column:practice_session_created_at;autoCreateTime" json:"practice_session_created_at"`
	PracticeSessionUpdatedAt time.Time `gorm:"column:practice_session_updated_at;autoUpdateTime" json:"practice_session_updated_at"`
}

func (PracticeSessionModel) TableName() string {
	return "practice_sessions"
}
