// file: internals/features/casebank/cases/service/workflow_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	"praktikum_backend/internals/features/casebank/events"
	reviewModel "praktikum_backend/internals/features/casebank/reviews/model"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/cache"
)

/* =========================================================
   SERVICE
========================================================= */

// WorkflowService menjaga siklus status case + proses review.
// Semua operasi: cek precondition dulu, gagal = tidak ada mutasi sama sekali.
type WorkflowService struct {
	DB    *gorm.DB
	Audit *auditSvc.Recorder
	Cache *cache.Cache
	Sink  events.Sink
}

func NewWorkflowService(db *gorm.DB, audit *auditSvc.Recorder, c *cache.Cache, sink events.Sink) *WorkflowService {
	return &WorkflowService{DB: db, Audit: audit, Cache: c, Sink: sink}
}

/* =========================================================
   INTERNAL HELPERS
========================================================= */

func (s *WorkflowService) loadCase(ctx context.Context, id uuid.UUID) (*caseModel.CaseModel, error) {
	var cs caseModel.CaseModel
	if err := s.DB.WithContext(ctx).First(&cs, "case_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("case")
		}
		return nil, err
	}
	return &cs, nil
}

func (s *WorkflowService) questionCount(ctx context.Context, caseID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&caseModel.QuestionModel{}).
		Where("question_case_id = ?", caseID).Count(&n).Error
	return n, err
}

// setStatus: satu-satunya jalur tulis status. Cek tabel transisi,
// update row, tulis audit diff, invalidate cache listing & counts.
func (s *WorkflowService) setStatus(ctx context.Context, actor helper.ActorContext, cs *caseModel.CaseModel, to caseModel.CaseStatus, action auditModel.AuditAction) error {
	from := cs.CaseStatus
	if !caseModel.CanTransition(from, to) {
		return errInvalidTransition(from, to)
	}

	if err := s.DB.WithContext(ctx).Model(cs).
		Updates(map[string]any{
			"case_status":     to,
			"case_updated_at": time.Now(),
		}).Error; err != nil {
		return err
	}
	cs.CaseStatus = to

	_ = s.Audit.RecordChange(actor, "case", cs.CaseID, action, []auditSvc.FieldChange{
		{Field: "case_status", Old: string(from), New: string(to)},
	})
	s.invalidateCaches()

	log.Printf("[WORKFLOW] case=%s %s → %s oleh user=%s", cs.CaseID, from, to, actor.UserID)
	return nil
}

func (s *WorkflowService) invalidateCaches() {
	s.Cache.InvalidateTopic("cases")
	s.Cache.InvalidateTopic("categories")
}

/* =========================================================
   OPERATIONS
========================================================= */

// SubmitForReview: draft → pending_review. Wajib punya minimal 1 soal —
// itu kegagalan VALIDASI, bukan invalid transition.
func (s *WorkflowService) SubmitForReview(ctx context.Context, actor helper.ActorContext, caseID uuid.UUID) (*caseModel.CaseModel, error) {
	cs, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	n, err := s.questionCount(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errValidation("case belum punya soal, tidak bisa diajukan review")
	}

	if err := s.setStatus(ctx, actor, cs, caseModel.StatusPendingReview, auditModel.ActionCaseSubmitReview); err != nil {
		return nil, err
	}
	return cs, nil
}

// AssignReviewer: idempoten — review pending yang sudah ada untuk
// (case, reviewer) dikembalikan apa adanya tanpa bump status kedua kali.
func (s *WorkflowService) AssignReviewer(ctx context.Context, actor helper.ActorContext, caseID, reviewerID uuid.UUID) (*reviewModel.ReviewModel, error) {
	cs, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if cs.CaseStatus != caseModel.StatusPendingReview && cs.CaseStatus != caseModel.StatusInReview {
		return nil, errValidation("case tidak sedang menunggu review")
	}

	var reviewer userModel.UserModel
	if err := s.DB.WithContext(ctx).First(&reviewer, "user_id = ?", reviewerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errValidation("reviewer tidak ditemukan")
		}
		return nil, err
	}
	if !reviewer.IsValidReviewer() {
		return nil, errValidation("reviewer tidak aktif")
	}

	// Sudah ada review pending utk pasangan ini? → idempoten
	var existing reviewModel.ReviewModel
	err = s.DB.WithContext(ctx).
		Where("review_case_id = ? AND review_reviewer_id = ? AND review_status = ?",
			caseID, reviewerID, reviewModel.ReviewPending).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	rv := reviewModel.ReviewModel{
		ReviewCaseID:     caseID,
		ReviewReviewerID: reviewerID,
		ReviewStatus:     reviewModel.ReviewPending,
	}
	if err := s.DB.WithContext(ctx).Create(&rv).Error; err != nil {
		return nil, err
	}

	if cs.CaseStatus == caseModel.StatusPendingReview {
		if err := s.setStatus(ctx, actor, cs, caseModel.StatusInReview, auditModel.ActionCaseAssignReview); err != nil {
			return nil, err
		}
	} else {
		_ = s.Audit.RecordChange(actor, "review", rv.ReviewID, auditModel.ActionCaseAssignReview, []auditSvc.FieldChange{
			{Field: "review_reviewer_id", Old: nil, New: reviewerID.String()},
		})
	}
	return &rv, nil
}

// decisionStatus: mapping keputusan review → status case berikutnya.
func decisionStatus(decision reviewModel.ReviewStatus) caseModel.CaseStatus {
	if decision == reviewModel.ReviewApproved {
		return caseModel.StatusApproved
	}
	// rejected & revision_requested dua-duanya balik ke draft
	return caseModel.StatusDraft
}

// SubmitReview: hanya reviewer yang ditugaskan, hanya review pending.
func (s *WorkflowService) SubmitReview(ctx context.Context, actor helper.ActorContext, reviewID uuid.UUID, decision reviewModel.ReviewStatus, comments string) (*reviewModel.ReviewModel, error) {
	if !decision.IsDecision() {
		return nil, errValidation("keputusan review tidak valid")
	}

	var rv reviewModel.ReviewModel
	if err := s.DB.WithContext(ctx).First(&rv, "review_id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("review")
		}
		return nil, err
	}
	if rv.ReviewStatus != reviewModel.ReviewPending {
		// review terminal begitu diputus
		return nil, errNotFound("review pending")
	}
	if rv.ReviewReviewerID != actor.UserID {
		return nil, errForbidden("bukan reviewer yang ditugaskan untuk review ini")
	}

	cs, err := s.loadCase(ctx, rv.ReviewCaseID)
	if err != nil {
		return nil, err
	}

	// Transisi dicek SEBELUM review disentuh: status case bisa saja
	// sudah digeser owner selagi review menggantung. Gagal di sini =
	// review tetap pending, case tidak berubah.
	to := decisionStatus(decision)
	if !caseModel.CanTransition(cs.CaseStatus, to) {
		return nil, errInvalidTransition(cs.CaseStatus, to)
	}

	now := time.Now()
	if err := s.DB.WithContext(ctx).Model(&rv).Updates(map[string]any{
		"review_status":     decision,
		"review_comments":   comments,
		"review_decided_at": now,
	}).Error; err != nil {
		return nil, err
	}
	rv.ReviewStatus = decision
	rv.ReviewComments = comments
	rv.ReviewDecidedAt = &now

	if err := s.setStatus(ctx, actor, cs, to, auditModel.ActionCaseReviewDecide); err != nil {
		return nil, err
	}

	_ = s.Audit.RecordChange(actor, "review", rv.ReviewID, auditModel.ActionCaseReviewDecide, []auditSvc.FieldChange{
		{Field: "review_status", Old: string(reviewModel.ReviewPending), New: string(decision)},
		{Field: "review_comments", Old: "", New: comments},
	})

	s.Sink.Publish(ctx, events.Event{
		Name:    events.ReviewDecided,
		CaseID:  cs.CaseID,
		ActorID: actor.UserID,
		Payload: map[string]any{
			"decision":   string(decision),
			"case_owner": cs.CaseCreatedBy,
		},
	})
	return &rv, nil
}

// Publish: approved → published, atau fast-track draft → published.
// Publish tanpa soal ditolak sebagai validasi.
func (s *WorkflowService) Publish(ctx context.Context, actor helper.ActorContext, caseID uuid.UUID) (*caseModel.CaseModel, error) {
	cs, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	n, err := s.questionCount(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, errValidation("case belum punya soal, tidak bisa dipublikasikan")
	}

	if err := s.setStatus(ctx, actor, cs, caseModel.StatusPublished, auditModel.ActionCasePublish); err != nil {
		return nil, err
	}

	s.Sink.Publish(ctx, events.Event{
		Name:    events.CasePublished,
		CaseID:  cs.CaseID,
		ActorID: actor.UserID,
		Payload: map[string]any{"case_name": cs.CaseName},
	})
	return cs, nil
}

// Archive: published → archived (atau sesuai tabel transisi).
func (s *WorkflowService) Archive(ctx context.Context, actor helper.ActorContext, caseID uuid.UUID) (*caseModel.CaseModel, error) {
	cs, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := s.setStatus(ctx, actor, cs, caseModel.StatusArchived, auditModel.ActionCaseArchive); err != nil {
		return nil, err
	}
	return cs, nil
}

// BackToDraft: tarik case kembali ke draft dari status manapun yang legal.
func (s *WorkflowService) BackToDraft(ctx context.Context, actor helper.ActorContext, caseID uuid.UUID) (*caseModel.CaseModel, error) {
	cs, err := s.loadCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if err := s.setStatus(ctx, actor, cs, caseModel.StatusDraft, auditModel.ActionCaseUpdate); err != nil {
		return nil, err
	}
	return cs, nil
}
