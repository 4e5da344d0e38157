// file: internals/features/casebank/cases/controller/workflow_controller.go
package controller

import (
	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	caseDto "praktikum_backend/internals/features/casebank/cases/dto"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	reviewDto "praktikum_backend/internals/features/casebank/reviews/dto"
	reviewModel "praktikum_backend/internals/features/casebank/reviews/model"
	helper "praktikum_backend/internals/helpers"
)

// WorkflowController: endpoint perubahan status. Semua validasi transisi
// ada di service; controller hanya parsing + mapping error → HTTP.
type WorkflowController struct {
	Workflow  *caseSvc.WorkflowService
	validator *validator.Validate
}

func NewWorkflowController(workflow *caseSvc.WorkflowService) *WorkflowController {
	return &WorkflowController{Workflow: workflow}
}

func (ctl *WorkflowController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

func parseCaseID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// POST /cases/:id/submit-review
func (ctl *WorkflowController) SubmitForReview(c *fiber.Ctx) error {
	id, ok := parseCaseID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}
	cs, err := ctl.Workflow.SubmitForReview(c.Context(), helper.ActorFromCtx(c), id)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Case diajukan untuk review", caseDto.FromModelCase(cs))
}

// POST /cases/:id/assign-reviewer
func (ctl *WorkflowController) AssignReviewer(c *fiber.Ctx) error {
	ctl.ensureValidator()

	id, ok := parseCaseID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}

	var req reviewDto.AssignReviewerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	rv, err := ctl.Workflow.AssignReviewer(c.Context(), helper.ActorFromCtx(c), id, req.ReviewerID)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Reviewer ditugaskan", rv)
}

// POST /reviews/:id/decide
func (ctl *WorkflowController) SubmitReview(c *fiber.Ctx) error {
	ctl.ensureValidator()

	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "review_id tidak valid")
	}

	var req reviewDto.SubmitReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	rv, err := ctl.Workflow.SubmitReview(c.Context(), helper.ActorFromCtx(c), reviewID,
		reviewModel.ReviewStatus(req.Decision), req.Comments)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Review diputuskan", rv)
}

// POST /cases/:id/publish
func (ctl *WorkflowController) Publish(c *fiber.Ctx) error {
	id, ok := parseCaseID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}
	cs, err := ctl.Workflow.Publish(c.Context(), helper.ActorFromCtx(c), id)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Case dipublikasikan", caseDto.FromModelCase(cs))
}

// POST /cases/:id/archive
func (ctl *WorkflowController) Archive(c *fiber.Ctx) error {
	id, ok := parseCaseID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}
	cs, err := ctl.Workflow.Archive(c.Context(), helper.ActorFromCtx(c), id)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Case diarsipkan", caseDto.FromModelCase(cs))
}

// POST /cases/:id/back-to-draft
func (ctl *WorkflowController) BackToDraft(c *fiber.Ctx) error {
	id, ok := parseCaseID(c)
	if !ok {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}
	cs, err := ctl.Workflow.BackToDraft(c.Context(), helper.ActorFromCtx(c), id)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Case dikembalikan ke draft", caseDto.FromModelCase(cs))
}
