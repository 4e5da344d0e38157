// file: internals/features/casebank/stats/controller/stats_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	statsSvc "praktikum_backend/internals/features/casebank/stats/service"
	helper "praktikum_backend/internals/helpers"
)

type StatsController struct {
	Stats *statsSvc.StatsService
}

func NewStatsController(stats *statsSvc.StatsService) *StatsController {
	return &StatsController{Stats: stats}
}

// GET /cases/:id/stats
func (ctl *StatsController) GetByCase(c *fiber.Ctx) error {
	caseID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "case_id tidak valid")
	}

	stat, err := ctl.Stats.GetByCase(c.Context(), caseID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil statistik")
	}
	if stat == nil {
		return helper.JsonOK(c, "Belum ada attempt", fiber.Map{"case_id": caseID, "attempt_count": 0})
	}
	return helper.JsonOK(c, "Statistik case", stat)
}
