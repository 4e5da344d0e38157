// file: internals/features/casebank/cases/model/question_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type QuestionType string

const (
	QuestionMultichoice QuestionType = "multichoice"
	QuestionTrueFalse   QuestionType = "truefalse"
	QuestionShortAnswer QuestionType = "shortanswer"
	QuestionMatching    QuestionType = "matching" // disimpan, tidak di-autograde
	QuestionEssay       QuestionType = "essay"    // disimpan, tidak di-autograde
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionMultichoice, QuestionTrueFalse, QuestionShortAnswer,
		QuestionMatching, QuestionEssay:
		return true
	}
	return false
}

// AutoGradable: tipe yang ikut dihitung ke max score attempt.
func (t QuestionType) AutoGradable() bool {
	switch t {
	case QuestionMultichoice, QuestionTrueFalse, QuestionShortAnswer:
		return true
	}
	return false
}

// QuestionModel dimiliki eksklusif oleh satu case; hapus case = hapus soal.
type QuestionModel struct {
	QuestionID     uuid.UUID `gorm:"column:question_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"question_id"`
	QuestionCaseID uuid.UUID `gorm:"column:question_case_id;type:uuid;not null;index" json:"question_case_id"`

	QuestionText       string       `gorm:"column:question_text;type:text;not null" json:"question_text"`
	QuestionTextFormat string       `gorm:"column:question_text_format;type:varchar(16);not null;default:'html'" json:"question_text_format"`
	QuestionType       QuestionType `gorm:"column:question_type;type:varchar(20);not null" json:"question_type"`

	QuestionDefaultMark     float64 `gorm:"column:question_default_mark;not null;default:1" json:"question_default_mark"`
	QuestionPosition        int     `gorm:"column:question_position;not null" json:"question_position"` // dense 1..N per case
	QuestionSingleAnswer    bool    `gorm:"column:question_single_answer;not null;default:true" json:"question_single_answer"`
	QuestionShuffleAnswers  bool    `gorm:"column:question_shuffle_answers;not null;default:false" json:"question_shuffle_answers"`
	QuestionGeneralFeedback string  `gorm:"column:question_general_feedback;type:text" json:"question_general_feedback"`

	QuestionCreatedAt time.Time `gorm:"column:question_created_at;not null;autoCreateTime" json:"question_created_at"`
	QuestionUpdatedAt time.Time `gorm:"column:question_updated_at;not null;autoUpdateTime" json:"question_updated_at"`
}

func (QuestionModel) TableName() string {
	return "questions"
}
