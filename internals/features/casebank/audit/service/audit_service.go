// file: internals/features/casebank/audit/service/audit_service.go
package service

import (
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	helper "praktikum_backend/internals/helpers"
)

// FieldChange: diff satu field — representasi in-memory yang typed;
// baru di-serialize ke JSONB di titik insert.
type FieldChange struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// BulkSummary: ringkasan satu batch (satu entry audit per batch, bukan per item).
type BulkSummary struct {
	IDs    []uuid.UUID `json:"ids"`
	Count  int         `json:"count"`
	Failed any         `json:"failed,omitempty"`
	Extra  any         `json:"extra,omitempty"`
}

// Recorder menulis audit entries. WithTx dipakai saat penulisan harus
// ikut transaksi milik caller.
type Recorder struct {
	DB *gorm.DB
}

func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{DB: db}
}

func (r *Recorder) WithTx(tx *gorm.DB) *Recorder {
	return &Recorder{DB: tx}
}

// RecordChange tulis satu entry untuk mutasi satu entity.
func (r *Recorder) RecordChange(actor helper.ActorContext, entityType string, entityID uuid.UUID, action auditModel.AuditAction, changes []FieldChange) error {
	return r.record(actor, entityType, entityID, action, changes)
}

// RecordBulk tulis SATU entry terkonsolidasi untuk satu batch.
func (r *Recorder) RecordBulk(actor helper.ActorContext, action auditModel.AuditAction, summary BulkSummary) error {
	return r.record(actor, "case", uuid.Nil, action, summary)
}

func (r *Recorder) record(actor helper.ActorContext, entityType string, entityID uuid.UUID, action auditModel.AuditAction, payload any) error {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		log.Printf("[AUDIT] gagal marshal changes action=%s: %v", action, err)
		raw = []byte(`{}`)
	}

	entry := auditModel.AuditLogModel{
		AuditLogEntityType: entityType,
		AuditLogEntityID:   entityID,
		AuditLogAction:     action,
		AuditLogActorID:    actor.UserID,
		AuditLogChanges:    datatypes.JSON(raw),
		AuditLogIP:         actor.IP,
	}
	if err := r.DB.Create(&entry).Error; err != nil {
		log.Printf("[AUDIT] gagal tulis entry action=%s entity=%s: %v", action, entityID, err)
		return err
	}
	return nil
}

// PurgeOlderThan hapus entry lebih tua dari cutoff (retention purge).
// Satu-satunya jalur delete terhadap audit_logs.
func (r *Recorder) PurgeOlderThan(cutoff time.Time) (int64, error) {
	res := r.DB.Where("audit_log_created_at < ?", cutoff).Delete(&auditModel.AuditLogModel{})
	return res.RowsAffected, res.Error
}
