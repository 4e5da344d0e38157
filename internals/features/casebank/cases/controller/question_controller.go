// file: internals/features/casebank/cases/controller/question_controller.go
package controller

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseDto "praktikum_backend/internals/features/casebank/cases/dto"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/cache"
)

type QuestionController struct {
	DB        *gorm.DB
	Audit     *auditSvc.Recorder
	Cache     *cache.Cache
	validator *validator.Validate
}

func NewQuestionController(db *gorm.DB, audit *auditSvc.Recorder, c *cache.Cache) *QuestionController {
	return &QuestionController{DB: db, Audit: audit, Cache: c}
}

func (ctl *QuestionController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// editableCase: soal hanya boleh diubah selagi case masih draft.
func (ctl *QuestionController) editableCase(caseID uuid.UUID) (*caseModel.CaseModel, error) {
	var cs caseModel.CaseModel
	if err := ctl.DB.First(&cs, "case_id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Case tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil case")
	}
	if cs.CaseStatus != caseModel.StatusDraft {
		return nil, fiber.NewError(fiber.StatusConflict, "Soal hanya bisa diubah saat case draft")
	}
	return &cs, nil
}

// POST /cases/:id/questions — append di posisi terakhir
func (ctl *QuestionController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()
	actor := helper.ActorFromCtx(c)

	caseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}
	if _, err := ctl.editableCase(caseID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req caseDto.CreateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	var maxPos int64
	_ = ctl.DB.Model(&caseModel.QuestionModel{}).
		Where("question_case_id = ?", caseID).
		Count(&maxPos).Error

	q := req.ToModel(caseID, int(maxPos)+1)
	if err := ctl.DB.Create(q).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat soal")
	}

	_ = ctl.Audit.RecordChange(actor, "case", caseID, auditModel.ActionCaseUpdate, []auditSvc.FieldChange{
		{Field: "question_added", Old: nil, New: q.QuestionID},
	})
	ctl.Cache.InvalidateTopic("cases")

	return helper.JsonCreated(c, "Soal dibuat", q)
}

// PATCH /questions/:id
func (ctl *QuestionController) Patch(c *fiber.Ctx) error {
	ctl.ensureValidator()
	actor := helper.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "question_id tidak valid")
	}

	var q caseModel.QuestionModel
	if err := ctl.DB.First(&q, "question_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	if _, err := ctl.editableCase(q.QuestionCaseID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req caseDto.UpdateQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	req.ApplyToModel(&q)
	if err := ctl.DB.Save(&q).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan soal")
	}

	_ = ctl.Audit.RecordChange(actor, "case", q.QuestionCaseID, auditModel.ActionCaseUpdate, []auditSvc.FieldChange{
		{Field: "question_updated", Old: nil, New: q.QuestionID},
	})
	ctl.Cache.InvalidateTopic("cases")

	return helper.JsonUpdated(c, "Soal diperbarui", q)
}

// DELETE /questions/:id — jawaban ikut terhapus, posisi dirapatkan ulang
func (ctl *QuestionController) Delete(c *fiber.Ctx) error {
	actor := helper.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "question_id tidak valid")
	}

	var q caseModel.QuestionModel
	if err := ctl.DB.First(&q, "question_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}
	if _, err := ctl.editableCase(q.QuestionCaseID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_question_id = ?", id).Delete(&caseModel.AnswerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&caseModel.QuestionModel{}, "question_id = ?", id).Error; err != nil {
			return err
		}
		// rapatkan posisi supaya tetap dense 1..N
		return tx.Model(&caseModel.QuestionModel{}).
			Where("question_case_id = ? AND question_position > ?", q.QuestionCaseID, q.QuestionPosition).
			UpdateColumn("question_position", gorm.Expr("question_position - 1")).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus soal")
	}

	_ = ctl.Audit.RecordChange(actor, "case", q.QuestionCaseID, auditModel.ActionCaseUpdate, []auditSvc.FieldChange{
		{Field: "question_removed", Old: q.QuestionID, New: nil},
	})
	ctl.Cache.InvalidateTopic("cases")

	return helper.JsonDeleted(c, "Soal dihapus", fiber.Map{"question_id": id})
}
