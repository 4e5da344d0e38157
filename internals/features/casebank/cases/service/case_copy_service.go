// file: internals/features/casebank/cases/service/case_copy_service.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	helper "praktikum_backend/internals/helpers"
)

// CaseCopyService: deep-copy Case + Questions + Answers dalam SATU
// transaksi — gagal satu write, seluruh copy dibatalkan.
type CaseCopyService struct {
	DB    *gorm.DB
	Audit *auditSvc.Recorder
}

func NewCaseCopyService(db *gorm.DB, audit *auditSvc.Recorder) *CaseCopyService {
	return &CaseCopyService{DB: db, Audit: audit}
}

// CopyCase kloning sourceID ke case baru ber-status draft (apapun status
// sumbernya). targetCategory nil = pakai kategori sumber.
func (s *CaseCopyService) CopyCase(ctx context.Context, actor helper.ActorContext, sourceID uuid.UUID, targetCategory *uuid.UUID) (*caseModel.CaseModel, error) {
	var src caseModel.CaseModel
	if err := s.DB.WithContext(ctx).First(&src, "case_id = ?", sourceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("case")
		}
		return nil, err
	}

	newCase := caseModel.CaseModel{
		CaseCategoryID:      src.CaseCategoryID,
		CaseName:            src.CaseName + " (copy)",
		CaseStatement:       src.CaseStatement,
		CaseStatementFormat: src.CaseStatementFormat,
		CaseStatus:          caseModel.StatusDraft, // copy selalu draft
		CaseDifficulty:      src.CaseDifficulty,
		CaseTags:            append(src.CaseTags[:0:0], src.CaseTags...),
		CaseCreatedBy:       actor.UserID,
	}
	if targetCategory != nil && *targetCategory != uuid.Nil {
		newCase.CaseCategoryID = *targetCategory
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newCase).Error; err != nil {
			return err
		}

		var questions []caseModel.QuestionModel
		if err := tx.Where("question_case_id = ?", sourceID).
			Order("question_position ASC").
			Find(&questions).Error; err != nil {
			return err
		}

		for i := range questions {
			q := questions[i]
			newQ := caseModel.QuestionModel{
				QuestionCaseID:          newCase.CaseID,
				QuestionText:            q.QuestionText,
				QuestionTextFormat:      q.QuestionTextFormat,
				QuestionType:            q.QuestionType,
				QuestionDefaultMark:     q.QuestionDefaultMark,
				QuestionPosition:        q.QuestionPosition,
				QuestionSingleAnswer:    q.QuestionSingleAnswer,
				QuestionShuffleAnswers:  q.QuestionShuffleAnswers,
				QuestionGeneralFeedback: q.QuestionGeneralFeedback,
			}
			if err := tx.Create(&newQ).Error; err != nil {
				return err
			}

			var answers []caseModel.AnswerModel
			if err := tx.Where("answer_question_id = ?", q.QuestionID).
				Order("answer_position ASC").
				Find(&answers).Error; err != nil {
				return err
			}
			for j := range answers {
				a := answers[j]
				newA := caseModel.AnswerModel{
					AnswerQuestionID: newQ.QuestionID,
					AnswerText:       a.AnswerText,
					AnswerTextFormat: a.AnswerTextFormat,
					AnswerFraction:   a.AnswerFraction,
					AnswerFeedback:   a.AnswerFeedback,
					AnswerPosition:   a.AnswerPosition,
				}
				if err := tx.Create(&newA).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.Audit.RecordChange(actor, "case", newCase.CaseID, auditModel.ActionCaseDuplicate, []auditSvc.FieldChange{
		{Field: "case_id", Old: sourceID.String(), New: newCase.CaseID.String()},
	})
	return &newCase, nil
}
