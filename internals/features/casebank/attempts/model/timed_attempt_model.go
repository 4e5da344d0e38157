// file: internals/features/casebank/attempts/model/timed_attempt_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "inprogress"
	AttemptFinished   AttemptStatus = "finished"
	AttemptExpired    AttemptStatus = "expired"
)

// TimedAttemptModel: satu percobaan ber-deadline. Urutan soal di-snapshot
// sekali (JSONB) supaya reload halaman tidak mengacak ulang.
// Maksimal satu attempt inprogress per (case, user).
type TimedAttemptModel struct {
	TimedAttemptID     uuid.UUID `gorm:"column:timed_attempt_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"timed_attempt_id"`
	TimedAttemptToken  string    `gorm:"column:timed_attempt_token;type:varchar(64);unique;not null" json:"timed_attempt_token"`
	TimedAttemptCaseID uuid.UUID `gorm:"column:timed_attempt_case_id;type:uuid;not null;index" json:"timed_attempt_case_id"`
	TimedAttemptUserID uuid.UUID `gorm:"column:timed_attempt_user_id;type:uuid;not null;index" json:"timed_attempt_user_id"`

	TimedAttemptQuestionOrder datatypes.JSON `gorm:"column:timed_attempt_question_order;type:jsonb;not null" json:"timed_attempt_question_order"`
	TimedAttemptTimeLimitSec  int            `gorm:"column:timed_attempt_time_limit_sec;not null" json:"timed_attempt_time_limit_sec"`
	TimedAttemptStartedAt     time.Time      `gorm:"column:timed_attempt_started_at;not null" json:"timed_attempt_started_at"`
	TimedAttemptStatus        AttemptStatus  `gorm:"column:timed_attempt_status;type:varchar(16);not null;default:'inprogress';index" json:"timed_attempt_status"`

	// Auto-save selama inprogress
	TimedAttemptResponses   datatypes.JSON `gorm:"column:timed_attempt_responses;type:jsonb" json:"timed_attempt_responses,omitempty"`
	TimedAttemptLastSavedAt *time.Time     `gorm:"column:timed_attempt_last_saved_at" json:"timed_attempt_last_saved_at,omitempty"`

	// Terisi saat finished
	TimedAttemptScore        *float64   `gorm:"column:timed_attempt_score" json:"timed_attempt_score,omitempty"`
	TimedAttemptMaxScore     *float64   `gorm:"column:timed_attempt_max_score" json:"timed_attempt_max_score,omitempty"`
	TimedAttemptPercentage   *float64   `gorm:"column:timed_attempt_percentage" json:"timed_attempt_percentage,omitempty"`
	TimedAttemptFinishedAt   *time.Time `gorm:"column:timed_attempt_finished_at" json:"timed_attempt_finished_at,omitempty"`
	TimedAttemptTimeSpentSec *int       `gorm:"column:timed_attempt_time_spent_sec" json:"timed_attempt_time_spent_sec,omitempty"`

	TimedAttemptCreatedAt time.Time `gorm:"column:timed_attempt_created_at;autoCreateTime" json:"timed_attempt_created_at"`
	TimedAttemptUpdatedAt time.Time `gorm:"column:timed_attempt_updated_at;autoUpdateTime" json:"timed_attempt_updated_at"`
}

func (TimedAttemptModel) TableName() string {
	return "timed_attempts"
}

// Deadline = start + limit.
func (a *TimedAttemptModel) Deadline() time.Time {
	return a.TimedAttemptStartedAt.Add(time.Duration(a.TimedAttemptTimeLimitSec) * time.Second)
}
