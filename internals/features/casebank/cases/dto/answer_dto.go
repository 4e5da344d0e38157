// file: internals/features/casebank/cases/dto/answer_dto.go
package dto

import (
	"github.com/google/uuid"

	caseModel "praktikum_backend/internals/features/casebank/cases/model"
)

type CreateAnswerRequest struct {
	AnswerText       string  `json:"answer_text" validate:"required"`
	AnswerTextFormat string  `json:"answer_text_format" validate:"omitempty,oneof=html markdown plain"`
	AnswerFraction   float64 `json:"answer_fraction" validate:"min=-1,max=1"`
	AnswerFeedback   string  `json:"answer_feedback"`
}

func (r *CreateAnswerRequest) ToModel(questionID uuid.UUID, position int) *caseModel.AnswerModel {
	format := r.AnswerTextFormat
	if format == "" {
		format = "html"
	}
	return &caseModel.AnswerModel{
		AnswerQuestionID: questionID,
		AnswerText:       r.AnswerText,
		AnswerTextFormat: format,
		AnswerFraction:   r.AnswerFraction,
		AnswerFeedback:   r.AnswerFeedback,
		AnswerPosition:   position,
	}
}

type UpdateAnswerRequest struct {
	AnswerText     *string  `json:"answer_text" validate:"omitempty"`
	AnswerFraction *float64 `json:"answer_fraction" validate:"omitempty,min=-1,max=1"`
	AnswerFeedback *string  `json:"answer_feedback"`
	AnswerPosition *int     `json:"answer_position" validate:"omitempty,min=1"`
}

func (r *UpdateAnswerRequest) ApplyToModel(m *caseModel.AnswerModel) {
	if r.AnswerText != nil {
		m.AnswerText = *r.AnswerText
	}
	if r.AnswerFraction != nil {
		m.AnswerFraction = *r.AnswerFraction
	}
	if r.AnswerFeedback != nil {
		m.AnswerFeedback = *r.AnswerFeedback
	}
	if r.AnswerPosition != nil {
		m.AnswerPosition = *r.AnswerPosition
	}
}
