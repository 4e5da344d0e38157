// file: internals/features/casebank/attempts/controller/attempt_controller.go
package controller

import (
	validator "github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	attemptDto "praktikum_backend/internals/features/casebank/attempts/dto"
	attemptSvc "praktikum_backend/internals/features/casebank/attempts/service"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	helper "praktikum_backend/internals/helpers"
)

type AttemptController struct {
	Attempts  *attemptSvc.AttemptService
	Sessions  *attemptSvc.SessionService
	validator *validator.Validate
}

func NewAttemptController(attempts *attemptSvc.AttemptService, sessions *attemptSvc.SessionService) *AttemptController {
	return &AttemptController{Attempts: attempts, Sessions: sessions}
}

func (ctl *AttemptController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

/* ===== TIMED ATTEMPT ===== */

// POST /attempts/start
func (ctl *AttemptController) Start(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req attemptDto.StartAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	attempt, err := ctl.Attempts.StartAttempt(c.Context(), helper.ActorFromCtx(c), req.CaseID, req.TimeLimitSec())
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonCreated(c, "Attempt dimulai", attemptDto.FromModelAttempt(attempt, attempt.TimedAttemptTimeLimitSec))
}

// GET /attempts/:token
func (ctl *AttemptController) Get(c *fiber.Ctx) error {
	attempt, left, err := ctl.Attempts.GetAttempt(c.Context(), helper.ActorFromCtx(c), c.Params("token"))
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonOK(c, "Detail attempt", attemptDto.FromModelAttempt(attempt, left))
}

// PUT /attempts/:token/responses — auto-save
func (ctl *AttemptController) SaveResponses(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req attemptDto.SaveResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	if err := ctl.Attempts.SaveResponses(c.Context(), helper.ActorFromCtx(c), c.Params("token"), req.Responses); err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Jawaban tersimpan", fiber.Map{"token": c.Params("token")})
}

// POST /attempts/:token/finish
func (ctl *AttemptController) Finish(c *fiber.Ctx) error {
	var req attemptDto.FinishAttemptRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}

	attempt, err := ctl.Attempts.FinishAttempt(c.Context(), helper.ActorFromCtx(c), c.Params("token"), req.Responses)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonOK(c, "Attempt selesai", attemptDto.FromModelAttempt(attempt, 0))
}

/* ===== PRACTICE SESSION ===== */

// POST /sessions/start
func (ctl *AttemptController) StartSession(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req attemptDto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	session, err := ctl.Sessions.StartSession(c.Context(), helper.ActorFromCtx(c), req.CaseID)
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonCreated(c, "Sesi latihan dimulai", session)
}

// GET /sessions/:token
func (ctl *AttemptController) GetSession(c *fiber.Ctx) error {
	session, err := ctl.Sessions.GetSession(c.Context(), helper.ActorFromCtx(c), c.Params("token"))
	if err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonOK(c, "Detail sesi", session)
}

// PUT /sessions/:token/responses
func (ctl *AttemptController) SaveSession(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req attemptDto.SaveResponsesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	if err := ctl.Sessions.SaveSession(c.Context(), helper.ActorFromCtx(c), c.Params("token"), req.Responses); err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Progres tersimpan", fiber.Map{"token": c.Params("token")})
}

// POST /sessions/:token/complete
func (ctl *AttemptController) CompleteSession(c *fiber.Ctx) error {
	if err := ctl.Sessions.CompleteSession(c.Context(), helper.ActorFromCtx(c), c.Params("token")); err != nil {
		return helper.JsonError(c, caseSvc.HTTPStatus(err), err.Error())
	}
	return helper.JsonUpdated(c, "Sesi selesai", fiber.Map{"token": c.Params("token")})
}
