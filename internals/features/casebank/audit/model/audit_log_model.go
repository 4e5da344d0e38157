// file: internals/features/casebank/audit/model/audit_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditAction: kode aksi tertutup, bukan string bebas.
type AuditAction string

const (
	ActionCaseCreate       AuditAction = "case_create"
	ActionCaseUpdate       AuditAction = "case_update"
	ActionCaseDelete       AuditAction = "case_delete"
	ActionCaseSubmitReview AuditAction = "case_submit_review"
	ActionCaseAssignReview AuditAction = "case_assign_reviewer"
	ActionCaseReviewDecide AuditAction = "case_review_decide"
	ActionCasePublish      AuditAction = "case_publish"
	ActionCaseArchive      AuditAction = "case_archive"
	ActionCaseDuplicate    AuditAction = "case_duplicate"

	ActionBulkDelete     AuditAction = "bulk_delete"
	ActionBulkPublish    AuditAction = "bulk_publish"
	ActionBulkArchive    AuditAction = "bulk_archive"
	ActionBulkMove       AuditAction = "bulk_move"
	ActionBulkAssignTags AuditAction = "bulk_assign_tags"
	ActionBulkDuplicate  AuditAction = "bulk_duplicate"

	ActionAttemptStart  AuditAction = "attempt_start"
	ActionAttemptFinish AuditAction = "attempt_finish"
)

// AuditLogModel append-only; tidak pernah di-update, hanya dihapus
// oleh retention purge.
type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"column:audit_log_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`

	AuditLogEntityType string      `gorm:"column:audit_log_entity_type;type:varchar(32);not null;index" json:"audit_log_entity_type"`
	AuditLogEntityID   uuid.UUID   `gorm:"column:audit_log_entity_id;type:uuid;index" json:"audit_log_entity_id"` // uuid.Nil utk aksi bulk/global
	AuditLogAction     AuditAction `gorm:"column:audit_log_action;type:varchar(32);not null;index" json:"audit_log_action"`

	AuditLogActorID uuid.UUID      `gorm:"column:audit_log_actor_id;type:uuid;not null;index" json:"audit_log_actor_id"`
	AuditLogChanges datatypes.JSON `gorm:"column:audit_log_changes;type:jsonb" json:"audit_log_changes"`
	AuditLogIP      string         `gorm:"column:audit_log_ip;type:varchar(45)" json:"audit_log_ip"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;not null;autoCreateTime;index" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string {
	return "audit_logs"
}
