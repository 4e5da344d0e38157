// file: internals/features/casebank/cases/dto/question_dto.go
package dto

import (
	"github.com/google/uuid"

	caseModel "praktikum_backend/internals/features/casebank/cases/model"
)

type CreateQuestionRequest struct {
	QuestionText            string  `json:"question_text" validate:"required"`
	QuestionTextFormat      string  `json:"question_text_format" validate:"omitempty,oneof=html markdown plain"`
	QuestionType            string  `json:"question_type" validate:"required,oneof=multichoice truefalse shortanswer matching essay"`
	QuestionDefaultMark     float64 `json:"question_default_mark" validate:"omitempty,gt=0"`
	QuestionSingleAnswer    *bool   `json:"question_single_answer"`
	QuestionShuffleAnswers  bool    `json:"question_shuffle_answers"`
	QuestionGeneralFeedback string  `json:"question_general_feedback"`
}

// ToModel: position diisi controller (append di akhir urutan case).
func (r *CreateQuestionRequest) ToModel(caseID uuid.UUID, position int) *caseModel.QuestionModel {
	format := r.QuestionTextFormat
	if format == "" {
		format = "html"
	}
	mark := r.QuestionDefaultMark
	if mark == 0 {
		mark = 1
	}
	single := true
	if r.QuestionSingleAnswer != nil {
		single = *r.QuestionSingleAnswer
	}
	return &caseModel.QuestionModel{
		QuestionCaseID:          caseID,
		QuestionText:            r.QuestionText,
		QuestionTextFormat:      format,
		QuestionType:            caseModel.QuestionType(r.QuestionType),
		QuestionDefaultMark:     mark,
		QuestionPosition:        position,
		QuestionSingleAnswer:    single,
		QuestionShuffleAnswers:  r.QuestionShuffleAnswers,
		QuestionGeneralFeedback: r.QuestionGeneralFeedback,
	}
}

type UpdateQuestionRequest struct {
	QuestionText            *string  `json:"question_text" validate:"omitempty"`
	QuestionTextFormat      *string  `json:"question_text_format" validate:"omitempty,oneof=html markdown plain"`
	QuestionDefaultMark     *float64 `json:"question_default_mark" validate:"omitempty,gt=0"`
	QuestionPosition        *int     `json:"question_position" validate:"omitempty,min=1"`
	QuestionSingleAnswer    *bool    `json:"question_single_answer"`
	QuestionShuffleAnswers  *bool    `json:"question_shuffle_answers"`
	QuestionGeneralFeedback *string  `json:"question_general_feedback"`
}

func (r *UpdateQuestionRequest) ApplyToModel(m *caseModel.QuestionModel) {
	if r.QuestionText != nil {
		m.QuestionText = *r.QuestionText
	}
	if r.QuestionTextFormat != nil {
		m.QuestionTextFormat = *r.QuestionTextFormat
	}
	if r.QuestionDefaultMark != nil {
		m.QuestionDefaultMark = *r.QuestionDefaultMark
	}
	if r.QuestionPosition != nil {
		m.QuestionPosition = *r.QuestionPosition
	}
	if r.QuestionSingleAnswer != nil {
		m.QuestionSingleAnswer = *r.QuestionSingleAnswer
	}
	if r.QuestionShuffleAnswers != nil {
		m.QuestionShuffleAnswers = *r.QuestionShuffleAnswers
	}
	if r.QuestionGeneralFeedback != nil {
		m.QuestionGeneralFeedback = *r.QuestionGeneralFeedback
	}
}

// QuestionResponse: jawaban ikut di-embed untuk tampilan editor.
type QuestionResponse struct {
	caseModel.QuestionModel
	Answers []caseModel.AnswerModel `json:"answers,omitempty"`
}
