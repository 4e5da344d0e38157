// file: internals/features/casebank/notifications/controller/notification_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "praktikum_backend/internals/features/casebank/notifications/model"
	helper "praktikum_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GET /notifications — milik user login + broadcast (user_id NULL)
func (ctl *NotificationController) ListMine(c *fiber.Ctx) error {
	actor := helper.ActorFromCtx(c)
	paging := helper.ResolvePaging(c, 25, 100)

	q := ctl.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? OR notification_user_id IS NULL", actor.UserID)

	if c.Query("unread") == "true" {
		q = q.Where("notification_is_read = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung notifikasi")
	}

	var items []notifModel.NotificationModel
	if err := q.Order("notification_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil notifikasi")
	}

	return helper.JsonList(c, "Notifikasi", items, helper.BuildPagination(total, paging))
}

// POST /notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	actor := helper.ActorFromCtx(c)

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "notification_id tidak valid")
	}

	res := ctl.DB.Model(&notifModel.NotificationModel{}).
		Where("notification_id = ? AND (notification_user_id = ? OR notification_user_id IS NULL)", id, actor.UserID).
		Update("notification_is_read", true)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menandai notifikasi")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notifikasi tidak ditemukan")
	}

	return helper.JsonUpdated(c, "Notifikasi ditandai terbaca", fiber.Map{"notification_id": id})
}
