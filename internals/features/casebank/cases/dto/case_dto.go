// file: internals/features/casebank/cases/dto/case_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	caseModel "praktikum_backend/internals/features/casebank/cases/model"
)

/* ===== REQUEST ===== */

type CreateCaseRequest struct {
	CaseCategoryID      uuid.UUID `json:"case_category_id" validate:"required"`
	CaseName            string    `json:"case_name" validate:"required,min=3,max=255"`
	CaseStatement       string    `json:"case_statement" validate:"required"`
	CaseStatementFormat string    `json:"case_statement_format" validate:"omitempty,oneof=html markdown plain"`
	CaseDifficulty      *int      `json:"case_difficulty" validate:"omitempty,min=1,max=5"`
	CaseTags            []string  `json:"case_tags" validate:"omitempty,dive,min=1,max=50"`
}

func (r *CreateCaseRequest) ToModel(createdBy uuid.UUID) *caseModel.CaseModel {
	format := r.CaseStatementFormat
	if format == "" {
		format = "html"
	}
	return &caseModel.CaseModel{
		CaseCategoryID:      r.CaseCategoryID,
		CaseName:            r.CaseName,
		CaseStatement:       r.CaseStatement,
		CaseStatementFormat: format,
		CaseStatus:          caseModel.StatusDraft,
		CaseDifficulty:      r.CaseDifficulty,
		CaseTags:            pq.StringArray(r.CaseTags),
		CaseCreatedBy:       createdBy,
	}
}

// UpdateCaseRequest partial update; pointer = field tidak dikirim tidak diubah.
// Status TIDAK bisa diubah lewat sini — hanya lewat operasi workflow.
type UpdateCaseRequest struct {
	CaseCategoryID      *uuid.UUID `json:"case_category_id" validate:"omitempty"`
	CaseName            *string    `json:"case_name" validate:"omitempty,min=3,max=255"`
	CaseStatement       *string    `json:"case_statement" validate:"omitempty"`
	CaseStatementFormat *string    `json:"case_statement_format" validate:"omitempty,oneof=html markdown plain"`
	CaseDifficulty      *int       `json:"case_difficulty" validate:"omitempty,min=1,max=5"`
	CaseTags            *[]string  `json:"case_tags" validate:"omitempty,dive,min=1,max=50"`
}

func (r *UpdateCaseRequest) ApplyToModel(m *caseModel.CaseModel) {
	if r.CaseCategoryID != nil {
		m.CaseCategoryID = *r.CaseCategoryID
	}
	if r.CaseName != nil {
		m.CaseName = *r.CaseName
	}
	if r.CaseStatement != nil {
		m.CaseStatement = *r.CaseStatement
	}
	if r.CaseStatementFormat != nil {
		m.CaseStatementFormat = *r.CaseStatementFormat
	}
	if r.CaseDifficulty != nil {
		m.CaseDifficulty = r.CaseDifficulty
	}
	if r.CaseTags != nil {
		m.CaseTags = pq.StringArray(*r.CaseTags)
	}
}

/* ===== RESPONSE ===== */

type CaseResponse struct {
	CaseID              uuid.UUID            `json:"case_id"`
	CaseCategoryID      uuid.UUID            `json:"case_category_id"`
	CaseName            string               `json:"case_name"`
	CaseStatement       string               `json:"case_statement"`
	CaseStatementFormat string               `json:"case_statement_format"`
	CaseStatus          caseModel.CaseStatus `json:"case_status"`
	CaseDifficulty      *int                 `json:"case_difficulty,omitempty"`
	CaseTags            []string             `json:"case_tags"`
	CaseCreatedBy       uuid.UUID            `json:"case_created_by"`
	CaseCreatedAt       time.Time            `json:"case_created_at"`
	CaseUpdatedAt       time.Time            `json:"case_updated_at"`
}

func FromModelCase(m *caseModel.CaseModel) CaseResponse {
	tags := []string(m.CaseTags)
	if tags == nil {
		tags = []string{}
	}
	return CaseResponse{
		CaseID:              m.CaseID,
		CaseCategoryID:      m.CaseCategoryID,
		CaseName:            m.CaseName,
		CaseStatement:       m.CaseStatement,
		CaseStatementFormat: m.CaseStatementFormat,
		CaseStatus:          m.CaseStatus,
		CaseDifficulty:      m.CaseDifficulty,
		CaseTags:            tags,
		CaseCreatedBy:       m.CaseCreatedBy,
		CaseCreatedAt:       m.CaseCreatedAt,
		CaseUpdatedAt:       m.CaseUpdatedAt,
	}
}

func FromModelCases(ms []caseModel.CaseModel) []CaseResponse {
	out := make([]CaseResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModelCase(&ms[i]))
	}
	return out
}
