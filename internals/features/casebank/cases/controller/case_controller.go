// file: internals/features/casebank/cases/controller/case_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseDto "praktikum_backend/internals/features/casebank/cases/dto"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/cache"
)

// listCacheTTL: listing berat di-cache sebentar; semua mutasi case
// meng-invalidate topik "cases".
const listCacheTTL = 30 * time.Second

type CaseController struct {
	DB        *gorm.DB
	Audit     *auditSvc.Recorder
	Cache     *cache.Cache
	Copy      *caseSvc.CaseCopyService
	validator *validator.Validate
}

func NewCaseController(db *gorm.DB, audit *auditSvc.Recorder, c *cache.Cache, copySvc *caseSvc.CaseCopyService) *CaseController {
	return &CaseController{DB: db, Audit: audit, Cache: c, Copy: copySvc}
}

func (ctl *CaseController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

type caseListPayload struct {
	Items      []caseDto.CaseResponse `json:"items"`
	Pagination helper.Pagination      `json:"pagination"`
}

// GET /cases?category_id=&status=&tag=&q=&page=&per_page=
func (ctl *CaseController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 100)

	category := strings.TrimSpace(c.Query("category_id"))
	status := strings.TrimSpace(c.Query("status"))
	tag := strings.TrimSpace(c.Query("tag"))
	search := strings.TrimSpace(c.Query("q"))

	cacheKey := fmt.Sprintf("cases:list:%s:%s:%s:%s:p%d:n%d", category, status, tag, search, paging.Page, paging.Limit)
	if cached, ok := ctl.Cache.Get(cacheKey); ok {
		if payload, ok := cached.(caseListPayload); ok {
			return helper.JsonList(c, "Daftar cases", payload.Items, payload.Pagination)
		}
	}

	q := ctl.DB.Model(&caseModel.CaseModel{})
	if category != "" {
		catID, err := uuid.Parse(category)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
		}
		q = q.Where("case_category_id = ?", catID)
	}
	if status != "" {
		if !caseModel.CaseStatus(status).Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid")
		}
		q = q.Where("case_status = ?", status)
	}
	if tag != "" {
		q = q.Where("? = ANY(case_tags)", tag)
	}
	if search != "" {
		q = q.Where("LOWER(case_name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung cases")
	}

	var cases []caseModel.CaseModel
	if err := q.Order("case_updated_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&cases).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil cases")
	}

	payload := caseListPayload{
		Items:      caseDto.FromModelCases(cases),
		Pagination: helper.BuildPagination(total, paging),
	}
	ctl.Cache.Set(cacheKey, payload, listCacheTTL)
	return helper.JsonList(c, "Daftar cases", payload.Items, payload.Pagination)
}

// GET /cases/:id — detail + soal + jawaban
func (ctl *CaseController) Detail(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}

	var cs caseModel.CaseModel
	if err := ctl.DB.First(&cs, "case_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Case tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil case")
	}

	var questions []caseModel.QuestionModel
	if err := ctl.DB.Where("question_case_id = ?", id).
		Order("question_position ASC").
		Find(&questions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil soal")
	}

	items := make([]caseDto.QuestionResponse, 0, len(questions))
	for i := range questions {
		var answers []caseModel.AnswerModel
		if err := ctl.DB.Where("answer_question_id = ?", questions[i].QuestionID).
			Order("answer_position ASC").
			Find(&answers).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil jawaban")
		}
		items = append(items, caseDto.QuestionResponse{QuestionModel: questions[i], Answers: answers})
	}

	return helper.JsonOK(c, "Detail case", fiber.Map{
		"case":      caseDto.FromModelCase(&cs),
		"questions": items,
	})
}

// POST /cases
func (ctl *CaseController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()
	actor := helper.ActorFromCtx(c)

	var req caseDto.CreateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	cs := req.ToModel(actor.UserID)
	if err := ctl.DB.Create(cs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat case")
	}

	_ = ctl.Audit.RecordChange(actor, "case", cs.CaseID, auditModel.ActionCaseCreate, []auditSvc.FieldChange{
		{Field: "case_name", Old: nil, New: cs.CaseName},
		{Field: "case_category_id", Old: nil, New: cs.CaseCategoryID},
	})
	ctl.Cache.InvalidateTopic("cases")
	ctl.Cache.InvalidateTopic("categories")

	return helper.JsonCreated(c, "Case dibuat", caseDto.FromModelCase(cs))
}

// PATCH /cases/:id — konten saja; status hanya lewat endpoint workflow
func (ctl *CaseController) Patch(c *fiber.Ctx) error {
	ctl.ensureValidator()
	actor := helper.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}

	var req caseDto.UpdateCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	var cs caseModel.CaseModel
	if err := ctl.DB.First(&cs, "case_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Case tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil case")
	}

	changes := diffCaseUpdate(&cs, &req)
	req.ApplyToModel(&cs)
	if err := ctl.DB.Save(&cs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan case")
	}

	if len(changes) > 0 {
		_ = ctl.Audit.RecordChange(actor, "case", cs.CaseID, auditModel.ActionCaseUpdate, changes)
	}
	ctl.Cache.InvalidateTopic("cases")

	return helper.JsonUpdated(c, "Case diperbarui", caseDto.FromModelCase(&cs))
}

// diffCaseUpdate: catat old/new hanya untuk field yang benar-benar dikirim.
func diffCaseUpdate(cs *caseModel.CaseModel, req *caseDto.UpdateCaseRequest) []auditSvc.FieldChange {
	var changes []auditSvc.FieldChange
	if req.CaseName != nil && *req.CaseName != cs.CaseName {
		changes = append(changes, auditSvc.FieldChange{Field: "case_name", Old: cs.CaseName, New: *req.CaseName})
	}
	if req.CaseCategoryID != nil && *req.CaseCategoryID != cs.CaseCategoryID {
		changes = append(changes, auditSvc.FieldChange{Field: "case_category_id", Old: cs.CaseCategoryID, New: *req.CaseCategoryID})
	}
	if req.CaseStatement != nil && *req.CaseStatement != cs.CaseStatement {
		changes = append(changes, auditSvc.FieldChange{Field: "case_statement", Old: "(lama)", New: "(baru)"})
	}
	if req.CaseDifficulty != nil {
		changes = append(changes, auditSvc.FieldChange{Field: "case_difficulty", Old: cs.CaseDifficulty, New: *req.CaseDifficulty})
	}
	if req.CaseTags != nil {
		changes = append(changes, auditSvc.FieldChange{Field: "case_tags", Old: []string(cs.CaseTags), New: *req.CaseTags})
	}
	return changes
}

// DELETE /cases/:id — cascade soal, jawaban, review, attempt, stats
func (ctl *CaseController) Delete(c *fiber.Ctx) error {
	actor := helper.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}

	var cs caseModel.CaseModel
	if err := ctl.DB.First(&cs, "case_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Case tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil case")
	}

	if err := caseSvc.DeleteCaseCascade(ctl.DB.WithContext(c.Context()), id); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus case")
	}

	_ = ctl.Audit.RecordChange(actor, "case", id, auditModel.ActionCaseDelete, []auditSvc.FieldChange{
		{Field: "case_name", Old: cs.CaseName, New: nil},
	})
	ctl.Cache.InvalidateTopic("cases")
	ctl.Cache.InvalidateTopic("categories")

	return helper.JsonDeleted(c, "Case dihapus", fiber.Map{"case_id": id})
}

// POST /cases/:id/duplicate?category_id=
func (ctl *CaseController) Duplicate(c *fiber.Ctx) error {
	actor := helper.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}

	var target *uuid.UUID
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		catID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "category_id tidak valid")
		}
		target = &catID
	}

	copied, err := ctl.Copy.CopyCase(c.Context(), actor, id, target)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	ctl.Cache.InvalidateTopic("cases")
	ctl.Cache.InvalidateTopic("categories")

	return helper.JsonCreated(c, "Case diduplikasi", caseDto.FromModelCase(copied))
}
