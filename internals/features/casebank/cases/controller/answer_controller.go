// file: internals/features/casebank/cases/controller/answer_controller.go
package controller

import (
	"errors"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	caseDto "praktikum_backend/internals/features/casebank/cases/dto"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/cache"
)

type AnswerController struct {
	DB        *gorm.DB
	Cache     *cache.Cache
	validator *validator.Validate
}

func NewAnswerController(db *gorm.DB, c *cache.Cache) *AnswerController {
	return &AnswerController{DB: db, Cache: c}
}

func (ctl *AnswerController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// editableQuestion: jawaban hanya bisa diubah selagi case induknya draft.
func (ctl *AnswerController) editableQuestion(questionID uuid.UUID) (*caseModel.QuestionModel, error) {
	var q caseModel.QuestionModel
	if err := ctl.DB.First(&q, "question_id = ?", questionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Soal tidak ditemukan")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil soal")
	}

	var cs caseModel.CaseModel
	if err := ctl.DB.First(&cs, "case_id = ?", q.QuestionCaseID).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil case")
	}
	if cs.CaseStatus != caseModel.StatusDraft {
		return nil, fiber.NewError(fiber.StatusConflict, "Jawaban hanya bisa diubah saat case draft")
	}
	return &q, nil
}

// POST /questions/:id/answers
func (ctl *AnswerController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	questionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "question_id tidak valid")
	}
	if _, err := ctl.editableQuestion(questionID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req caseDto.CreateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	var count int64
	_ = ctl.DB.Model(&caseModel.AnswerModel{}).
		Where("answer_question_id = ?", questionID).
		Count(&count).Error

	a := req.ToModel(questionID, int(count)+1)
	if err := ctl.DB.Create(a).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat jawaban")
	}
	ctl.Cache.InvalidateTopic("cases")

	return helper.JsonCreated(c, "Jawaban dibuat", a)
}

// PATCH /answers/:id
func (ctl *AnswerController) Patch(c *fiber.Ctx) error {
	ctl.ensureValidator()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "answer_id tidak valid")
	}

	var a caseModel.AnswerModel
	if err := ctl.DB.First(&a, "answer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Jawaban tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jawaban")
	}
	if _, err := ctl.editableQuestion(a.AnswerQuestionID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	var req caseDto.UpdateAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	req.ApplyToModel(&a)
	if err := ctl.DB.Save(&a).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan jawaban")
	}
	ctl.Cache.InvalidateTopic("cases")

	return helper.JsonUpdated(c, "Jawaban diperbarui", a)
}

// DELETE /answers/:id
func (ctl *AnswerController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "answer_id tidak valid")
	}

	var a caseModel.AnswerModel
	if err := ctl.DB.First(&a, "answer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Jawaban tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jawaban")
	}
	if _, err := ctl.editableQuestion(a.AnswerQuestionID); err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&caseModel.AnswerModel{}, "answer_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Model(&caseModel.AnswerModel{}).
			Where("answer_question_id = ? AND answer_position > ?", a.AnswerQuestionID, a.AnswerPosition).
			UpdateColumn("answer_position", gorm.Expr("answer_position - 1")).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus jawaban")
	}
	ctl.Cache.InvalidateTopic("cases")

	return helper.JsonDeleted(c, "Jawaban dihapus", fiber.Map{"answer_id": id})
}
