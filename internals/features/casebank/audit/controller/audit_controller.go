// file: internals/features/casebank/audit/controller/audit_controller.go
package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	helper "praktikum_backend/internals/helpers"
)

// AuditController: read-only. Tidak ada endpoint tulis/hapus — satu-satunya
// jalur hapus adalah purge retensi terjadwal.
type AuditController struct {
	DB *gorm.DB
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

// GET /audit-logs?entity_type=&entity_id=&action=&actor_id=&from=&to=
func (ctl *AuditController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 50, 200)

	q := ctl.DB.Model(&auditModel.AuditLogModel{})

	if et := strings.TrimSpace(c.Query("entity_type")); et != "" {
		q = q.Where("audit_log_entity_type = ?", et)
	}
	if raw := strings.TrimSpace(c.Query("entity_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "entity_id tidak valid")
		}
		q = q.Where("audit_log_entity_id = ?", id)
	}
	if action := strings.TrimSpace(c.Query("action")); action != "" {
		q = q.Where("audit_log_action = ?", action)
	}
	if raw := strings.TrimSpace(c.Query("actor_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "actor_id tidak valid")
		}
		q = q.Where("audit_log_actor_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("from")); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from harus RFC3339")
		}
		q = q.Where("audit_log_created_at >= ?", from)
	}
	if raw := strings.TrimSpace(c.Query("to")); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to harus RFC3339")
		}
		q = q.Where("audit_log_created_at <= ?", to)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung audit log")
	}

	var entries []auditModel.AuditLogModel
	if err := q.Order("audit_log_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&entries).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil audit log")
	}

	return helper.JsonList(c, "Audit log", entries, helper.BuildPagination(total, paging))
}
