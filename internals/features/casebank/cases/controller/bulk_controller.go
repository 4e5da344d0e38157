// file: internals/features/casebank/cases/controller/bulk_controller.go
package controller

import (
	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	caseDto "praktikum_backend/internals/features/casebank/cases/dto"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	helper "praktikum_backend/internals/helpers"
)

// BulkController: semua endpoint bulk mengembalikan 200 walau sebagian
// item gagal — kegagalan per item dilaporkan di failed[], bukan status HTTP.
type BulkController struct {
	Bulk      *caseSvc.BulkService
	validator *validator.Validate
}

func NewBulkController(bulk *caseSvc.BulkService) *BulkController {
	return &BulkController{Bulk: bulk}
}

func (ctl *BulkController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// parseIDs: kalau gagal, response error sudah ditulis — caller tinggal
// return nilai kedua.
func (ctl *BulkController) parseIDs(c *fiber.Ctx) (*caseDto.BulkIDsRequest, error) {
	ctl.ensureValidator()
	var req caseDto.BulkIDsRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return nil, helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}
	return &req, nil
}

func bulkPayload[T any](res caseSvc.BulkResult[T]) fiber.Map {
	succeeded := res.Succeeded
	if succeeded == nil {
		succeeded = []T{}
	}
	failed := res.Failed
	if failed == nil {
		failed = []caseSvc.BulkFailure{}
	}
	return fiber.Map{
		"success":   res.Success(),
		"succeeded": succeeded,
		"failed":    failed,
	}
}

// POST /cases/bulk/publish
func (ctl *BulkController) Publish(c *fiber.Ctx) error {
	req, errResp := ctl.parseIDs(c)
	if req == nil {
		return errResp
	}
	res := ctl.Bulk.Publish(c.Context(), helper.ActorFromCtx(c), req.CaseIDs)
	return helper.JsonOK(c, "Bulk publish selesai", bulkPayload(res))
}

// POST /cases/bulk/archive
func (ctl *BulkController) Archive(c *fiber.Ctx) error {
	req, errResp := ctl.parseIDs(c)
	if req == nil {
		return errResp
	}
	res := ctl.Bulk.Archive(c.Context(), helper.ActorFromCtx(c), req.CaseIDs)
	return helper.JsonOK(c, "Bulk archive selesai", bulkPayload(res))
}

// POST /cases/bulk/delete
func (ctl *BulkController) Delete(c *fiber.Ctx) error {
	req, errResp := ctl.parseIDs(c)
	if req == nil {
		return errResp
	}
	res := ctl.Bulk.Delete(c.Context(), helper.ActorFromCtx(c), req.CaseIDs)
	return helper.JsonOK(c, "Bulk delete selesai", bulkPayload(res))
}

// POST /cases/bulk/move
func (ctl *BulkController) Move(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req caseDto.BulkMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	res := ctl.Bulk.Move(c.Context(), helper.ActorFromCtx(c), req.CaseIDs, req.TargetCategoryID)
	return helper.JsonOK(c, "Bulk move selesai", bulkPayload(res))
}

// POST /cases/bulk/assign-tags
func (ctl *BulkController) AssignTags(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req caseDto.BulkAssignTagsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	res := ctl.Bulk.AssignTags(c.Context(), helper.ActorFromCtx(c), req.CaseIDs, req.Tags)
	return helper.JsonOK(c, "Bulk assign tags selesai", bulkPayload(res))
}

// POST /cases/bulk/duplicate
func (ctl *BulkController) Duplicate(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req caseDto.BulkDuplicateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	var target *uuid.UUID
	if req.TargetCategoryID != nil && *req.TargetCategoryID != uuid.Nil {
		target = req.TargetCategoryID
	}

	res := ctl.Bulk.Duplicate(c.Context(), helper.ActorFromCtx(c), req.CaseIDs, target)
	return helper.JsonOK(c, "Bulk duplicate selesai", bulkPayload(res))
}
