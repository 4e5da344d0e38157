// file: internals/features/casebank/cases/service/bulk_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	attemptModel "praktikum_backend/internals/features/casebank/attempts/model"
	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	categoryModel "praktikum_backend/internals/features/casebank/categories/model"
	"praktikum_backend/internals/features/casebank/events"
	reviewModel "praktikum_backend/internals/features/casebank/reviews/model"
	statsModel "praktikum_backend/internals/features/casebank/stats/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/cache"
)

/* =========================================================
   RESULT SHAPE
========================================================= */

// Reason codes per item gagal — stabil, dipakai FE untuk pesan.
const (
	ReasonNotFound          = "not_found"
	ReasonNoQuestions       = "no_questions"
	ReasonAlreadyPublished  = "already_published"
	ReasonAlreadyArchived   = "already_archived"
	ReasonInvalidTransition = "invalid_transition"
	ReasonCategoryNotFound  = "category_notfound"
	ReasonCopyFailed        = "copy_failed"
	ReasonDeleteFailed      = "delete_failed"
	ReasonWriteFailed       = "write_failed"
)

type BulkFailure struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BulkResult: hasil satu batch. Success BUKAN flag independen,
// selalu diturunkan dari failed kosong.
type BulkResult[T any] struct {
	Succeeded []T           `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
}

func (r *BulkResult[T]) Success() bool {
	return len(r.Failed) == 0
}

func (r *BulkResult[T]) ok(item T) {
	r.Succeeded = append(r.Succeeded, item)
}

func (r *BulkResult[T]) fail(id uuid.UUID, reason string) {
	r.Failed = append(r.Failed, BulkFailure{ID: id, Reason: reason})
}

// CopyPair dilaporkan oleh Duplicate: {original, new}, bukan flat id.
type CopyPair struct {
	Original uuid.UUID `json:"original"`
	New      uuid.UUID `json:"new"`
}

/* =========================================================
   SERVICE
========================================================= */

// BulkService: satu aksi untuk banyak case, isolasi per-item — item gagal
// tidak membatalkan sisanya. Satu entry audit per batch.
type BulkService struct {
	DB    *gorm.DB
	Audit *auditSvc.Recorder
	Cache *cache.Cache
	Sink  events.Sink
	Copy  *CaseCopyService
}

func NewBulkService(db *gorm.DB, audit *auditSvc.Recorder, c *cache.Cache, sink events.Sink, copySvc *CaseCopyService) *BulkService {
	return &BulkService{DB: db, Audit: audit, Cache: c, Sink: sink, Copy: copySvc}
}

func (s *BulkService) finishBatch(actor helper.ActorContext, action auditModel.AuditAction, ids []uuid.UUID, failed []BulkFailure, extra any) {
	s.Cache.InvalidateTopic("cases")
	s.Cache.InvalidateTopic("categories")
	_ = s.Audit.RecordBulk(actor, action, auditSvc.BulkSummary{
		IDs:    ids,
		Count:  len(ids),
		Failed: failed,
		Extra:  extra,
	})
}

func (s *BulkService) loadCase(ctx context.Context, id uuid.UUID) (*caseModel.CaseModel, bool) {
	var cs caseModel.CaseModel
	if err := s.DB.WithContext(ctx).First(&cs, "case_id = ?", id).Error; err != nil {
		return nil, false
	}
	return &cs, true
}

func (s *BulkService) questionCount(ctx context.Context, caseID uuid.UUID) int64 {
	var n int64
	_ = s.DB.WithContext(ctx).Model(&caseModel.QuestionModel{}).
		Where("question_case_id = ?", caseID).Count(&n).Error
	return n
}

/* =========================================================
   PRECONDITIONS (pure, dites terpisah)
========================================================= */

// PublishPrecondition: "" = boleh publish.
func PublishPrecondition(status caseModel.CaseStatus, questionCount int64) string {
	if status == caseModel.StatusPublished {
		return ReasonAlreadyPublished
	}
	if questionCount == 0 {
		return ReasonNoQuestions
	}
	if !caseModel.CanTransition(status, caseModel.StatusPublished) {
		return ReasonInvalidTransition
	}
	return ""
}

// ArchivePrecondition: "" = boleh archive.
func ArchivePrecondition(status caseModel.CaseStatus) string {
	if status == caseModel.StatusArchived {
		return ReasonAlreadyArchived
	}
	if !caseModel.CanTransition(status, caseModel.StatusArchived) {
		return ReasonInvalidTransition
	}
	return ""
}

/* =========================================================
   OPERATIONS
========================================================= */

// Publish: per-item precondition + transisi, lanjut walau ada yang gagal.
func (s *BulkService) Publish(ctx context.Context, actor helper.ActorContext, ids []uuid.UUID) BulkResult[uuid.UUID] {
	var res BulkResult[uuid.UUID]
	now := time.Now()

	for _, id := range ids {
		cs, ok := s.loadCase(ctx, id)
		if !ok {
			res.fail(id, ReasonNotFound)
			continue
		}
		if reason := PublishPrecondition(cs.CaseStatus, s.questionCount(ctx, id)); reason != "" {
			res.fail(id, reason)
			continue
		}
		if err := s.DB.WithContext(ctx).Model(cs).Updates(map[string]any{
			"case_status":     caseModel.StatusPublished,
			"case_updated_at": now,
		}).Error; err != nil {
			res.fail(id, ReasonWriteFailed)
			continue
		}
		s.Sink.Publish(ctx, events.Event{
			Name:    events.CasePublished,
			CaseID:  id,
			ActorID: actor.UserID,
			Payload: map[string]any{"case_name": cs.CaseName},
		})
		res.ok(id)
	}

	s.finishBatch(actor, auditModel.ActionBulkPublish, res.Succeeded, res.Failed, nil)
	log.Printf("[BULK] publish: %d ok, %d gagal", len(res.Succeeded), len(res.Failed))
	return res
}

func (s *BulkService) Archive(ctx context.Context, actor helper.ActorContext, ids []uuid.UUID) BulkResult[uuid.UUID] {
	var res BulkResult[uuid.UUID]
	now := time.Now()

	for _, id := range ids {
		cs, ok := s.loadCase(ctx, id)
		if !ok {
			res.fail(id, ReasonNotFound)
			continue
		}
		if reason := ArchivePrecondition(cs.CaseStatus); reason != "" {
			res.fail(id, reason)
			continue
		}
		if err := s.DB.WithContext(ctx).Model(cs).Updates(map[string]any{
			"case_status":     caseModel.StatusArchived,
			"case_updated_at": now,
		}).Error; err != nil {
			res.fail(id, ReasonWriteFailed)
			continue
		}
		res.ok(id)
	}

	s.finishBatch(actor, auditModel.ActionBulkArchive, res.Succeeded, res.Failed, nil)
	return res
}

// DeleteCaseCascade: hapus satu case beserta seluruh turunannya dalam
// satu transaksi. answers → questions → reviews → attempts → sessions →
// stats → case. Dipakai delete tunggal maupun bulk.
func DeleteCaseCascade(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_question_id IN (?)",
			tx.Model(&caseModel.QuestionModel{}).Select("question_id").Where("question_case_id = ?", id),
		).Delete(&caseModel.AnswerModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_case_id = ?", id).Delete(&caseModel.QuestionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("review_case_id = ?", id).Delete(&reviewModel.ReviewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("timed_attempt_case_id = ?", id).Delete(&attemptModel.TimedAttemptModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("practice_session_case_id = ?", id).Delete(&attemptModel.PracticeSessionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("case_usage_stat_case_id = ?", id).Delete(&statsModel.CaseUsageStatModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&caseModel.CaseModel{}, "case_id = ?", id).Error
	})
}

// Delete: isolasi per item — satu item gagal tidak membatalkan sisanya.
func (s *BulkService) Delete(ctx context.Context, actor helper.ActorContext, ids []uuid.UUID) BulkResult[uuid.UUID] {
	var res BulkResult[uuid.UUID]

	for _, id := range ids {
		if _, ok := s.loadCase(ctx, id); !ok {
			res.fail(id, ReasonNotFound)
			continue
		}
		if err := DeleteCaseCascade(s.DB.WithContext(ctx), id); err != nil {
			res.fail(id, ReasonDeleteFailed)
			continue
		}
		res.ok(id)
	}

	s.finishBatch(actor, auditModel.ActionBulkDelete, res.Succeeded, res.Failed, nil)
	return res
}

// Move: SATU-SATUNYA operasi bulk dengan precondition all-or-nothing —
// target kategori dicek sekali di depan; kalau tidak ada, nol row disentuh.
func (s *BulkService) Move(ctx context.Context, actor helper.ActorContext, ids []uuid.UUID, targetCategory uuid.UUID) BulkResult[uuid.UUID] {
	var res BulkResult[uuid.UUID]

	var cat categoryModel.CategoryModel
	if err := s.DB.WithContext(ctx).First(&cat, "category_id = ?", targetCategory).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			for _, id := range ids {
				res.fail(id, ReasonCategoryNotFound)
			}
			s.finishBatch(actor, auditModel.ActionBulkMove, nil, res.Failed, moveExtra(targetCategory))
			return res
		}
		for _, id := range ids {
			res.fail(id, ReasonWriteFailed)
		}
		s.finishBatch(actor, auditModel.ActionBulkMove, nil, res.Failed, moveExtra(targetCategory))
		return res
	}

	now := time.Now()
	for _, id := range ids {
		cs, ok := s.loadCase(ctx, id)
		if !ok {
			res.fail(id, ReasonNotFound)
			continue
		}
		if err := s.DB.WithContext(ctx).Model(cs).Updates(map[string]any{
			"case_category_id": targetCategory,
			"case_updated_at":  now,
		}).Error; err != nil {
			res.fail(id, ReasonWriteFailed)
			continue
		}
		res.ok(id)
	}

	s.finishBatch(actor, auditModel.ActionBulkMove, res.Succeeded, res.Failed, moveExtra(targetCategory))
	return res
}

func moveExtra(id uuid.UUID) map[string]string {
	return map[string]string{"target_category": id.String()}
}

// AssignTags: replace tags per case (urutan dipertahankan).
func (s *BulkService) AssignTags(ctx context.Context, actor helper.ActorContext, ids []uuid.UUID, tags []string) BulkResult[uuid.UUID] {
	var res BulkResult[uuid.UUID]
	now := time.Now()

	for _, id := range ids {
		cs, ok := s.loadCase(ctx, id)
		if !ok {
			res.fail(id, ReasonNotFound)
			continue
		}
		if err := s.DB.WithContext(ctx).Model(cs).Updates(map[string]any{
			"case_tags":       pq.StringArray(tags),
			"case_updated_at": now,
		}).Error; err != nil {
			res.fail(id, ReasonWriteFailed)
			continue
		}
		res.ok(id)
	}

	s.finishBatch(actor, auditModel.ActionBulkAssignTags, res.Succeeded, res.Failed, map[string]any{"tags": tags})
	return res
}

// Duplicate: delegasi per-item ke CaseCopyService, lapor pasangan {original,new}.
func (s *BulkService) Duplicate(ctx context.Context, actor helper.ActorContext, ids []uuid.UUID, targetCategory *uuid.UUID) BulkResult[CopyPair] {
	var res BulkResult[CopyPair]

	for _, id := range ids {
		newCase, err := s.Copy.CopyCase(ctx, actor, id, targetCategory)
		if err != nil {
			if KindOf(err) == FailNotFound {
				res.fail(id, ReasonNotFound)
			} else {
				res.fail(id, ReasonCopyFailed)
			}
			continue
		}
		res.ok(CopyPair{Original: id, New: newCase.CaseID})
	}

	ids2 := make([]uuid.UUID, 0, len(res.Succeeded))
	for _, p := range res.Succeeded {
		ids2 = append(ids2, p.Original)
	}
	s.finishBatch(actor, auditModel.ActionBulkDuplicate, ids2, res.Failed, res.Succeeded)
	return res
}
