// file: internals/features/casebank/reviews/controller/review_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	reviewModel "praktikum_backend/internals/features/casebank/reviews/model"
	helper "praktikum_backend/internals/helpers"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// GET /reviews/mine?status= — antrian review milik reviewer yang login
func (ctl *ReviewController) ListMine(c *fiber.Ctx) error {
	actor := helper.ActorFromCtx(c)
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.Model(&reviewModel.ReviewModel{}).
		Where("review_reviewer_id = ?", actor.UserID)

	status := strings.TrimSpace(c.Query("status"))
	if status == "" {
		status = string(reviewModel.ReviewPending)
	}
	if !reviewModel.ReviewStatus(status).Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "status tidak valid")
	}
	q = q.Where("review_status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung reviews")
	}

	var reviews []reviewModel.ReviewModel
	if err := q.Order("review_created_at ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&reviews).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil reviews")
	}

	return helper.JsonList(c, "Antrian review", reviews, helper.BuildPagination(total, paging))
}

// GET /cases/:id/reviews — riwayat review satu case
func (ctl *ReviewController) ListByCase(c *fiber.Ctx) error {
	caseID := c.Params("id")

	var reviews []reviewModel.ReviewModel
	if err := ctl.DB.
		Where("review_case_id = ?", caseID).
		Order("review_created_at DESC").
		Find(&reviews).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil reviews")
	}

	return helper.JsonOK(c, "Riwayat review", reviews)
}
