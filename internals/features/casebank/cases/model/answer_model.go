// file: internals/features/casebank/cases/model/answer_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// AnswerModel dimiliki eksklusif oleh satu question.
// Fraction: porsi mark yang diberikan/dipotong, biasanya -1.0..1.0.
type AnswerModel struct {
	AnswerID         uuid.UUID `gorm:"column:answer_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"answer_id"`
	AnswerQuestionID uuid.UUID `gorm:"column:answer_question_id;type:uuid;not null;index" json:"answer_question_id"`

	AnswerText       string  `gorm:"column:answer_text;type:text;not null" json:"answer_text"`
	AnswerTextFormat string  `gorm:"column:answer_text_format;type:varchar(16);not null;default:'html'" json:"answer_text_format"`
	AnswerFraction   float64 `gorm:"column:answer_fraction;not null;default:0" json:"answer_fraction"`
	AnswerFeedback   string  `gorm:"column:answer_feedback;type:text" json:"answer_feedback"`
	AnswerPosition   int     `gorm:"column:answer_position;not null" json:"answer_position"`

	AnswerCreatedAt time.Time `gorm:"column:answer_created_at;not null;autoCreateTime" json:"answer_created_at"`
	AnswerUpdatedAt time.Time `gorm:"column:answer_updated_at;not null;autoUpdateTime" json:"answer_updated_at"`
}

func (AnswerModel) TableName() string {
	return "answers"
}
