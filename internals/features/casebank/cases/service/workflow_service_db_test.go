package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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
   HARNESS: sqlite in-memory, schema dibuat eksplisit
   (default uuid postgres diganti randomblob supaya jalan)
========================================================= */

var workflowTestDDL = []string{
	`CREATE TABLE users (
		user_id text PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		user_name text NOT NULL,
		user_email text NOT NULL UNIQUE,
		user_password text NOT NULL DEFAULT '',
		user_role text NOT NULL DEFAULT 'student',
		user_is_active numeric NOT NULL DEFAULT true,
		user_created_at datetime,
		user_updated_at datetime,
		user_deleted_at datetime
	)`,
	`CREATE TABLE cases (
		case_id text PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		case_category_id text NOT NULL,
		case_name text NOT NULL,
		case_statement text NOT NULL,
		case_statement_format text NOT NULL DEFAULT 'html',
		case_status text NOT NULL DEFAULT 'draft',
		case_difficulty integer,
		case_tags text,
		case_created_by text NOT NULL,
		case_created_at datetime,
		case_updated_at datetime
	)`,
	`CREATE TABLE questions (
		question_id text PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		question_case_id text NOT NULL,
		question_text text NOT NULL,
		question_text_format text NOT NULL DEFAULT 'html',
		question_type text NOT NULL,
		question_default_mark real NOT NULL DEFAULT 1,
		question_position integer NOT NULL,
		question_single_answer numeric NOT NULL DEFAULT true,
		question_shuffle_answers numeric NOT NULL DEFAULT false,
		question_general_feedback text,
		question_created_at datetime,
		question_updated_at datetime
	)`,
	`CREATE TABLE answers (
		answer_id text PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		answer_question_id text NOT NULL,
		answer_text text NOT NULL,
		answer_text_format text NOT NULL DEFAULT 'html',
		answer_fraction real NOT NULL DEFAULT 0,
		answer_feedback text,
		answer_position integer NOT NULL,
		answer_created_at datetime,
		answer_updated_at datetime
	)`,
	`CREATE TABLE reviews (
		review_id text PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		review_case_id text NOT NULL,
		review_reviewer_id text NOT NULL,
		review_status text NOT NULL DEFAULT 'pending',
		review_comments text,
		review_created_at datetime,
		review_decided_at datetime
	)`,
	`CREATE TABLE audit_logs (
		audit_log_id text PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		audit_log_entity_type text NOT NULL,
		audit_log_entity_id text,
		audit_log_action text NOT NULL,
		audit_log_actor_id text NOT NULL,
		audit_log_changes text,
		audit_log_ip text,
		audit_log_created_at datetime
	)`,
}

func newWorkflowTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// :memory: = satu DB per koneksi, jadi pool dikunci ke satu koneksi
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range workflowTestDDL {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newTestWorkflowService(db *gorm.DB) *WorkflowService {
	return NewWorkflowService(db, auditSvc.NewRecorder(db), cache.New(0), events.LogSink{})
}

func seedReviewer(t *testing.T, db *gorm.DB, email string) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserName:     "Reviewer Uji",
		UserEmail:    email,
		UserRole:     "reviewer",
		UserIsActive: true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.UserID
}

func seedCase(t *testing.T, db *gorm.DB, status caseModel.CaseStatus, nQuestions int) *caseModel.CaseModel {
	t.Helper()
	cs := caseModel.CaseModel{
		CaseCategoryID:      uuid.New(),
		CaseName:            "Kasus Uji",
		CaseStatement:       "<p>Statement</p>",
		CaseStatementFormat: "html",
		CaseStatus:          status,
		CaseCreatedBy:       uuid.New(),
	}
	require.NoError(t, db.Create(&cs).Error)

	for i := 1; i <= nQuestions; i++ {
		q := caseModel.QuestionModel{
			QuestionCaseID:      cs.CaseID,
			QuestionText:        "Soal",
			QuestionTextFormat:  "html",
			QuestionType:        caseModel.QuestionMultichoice,
			QuestionDefaultMark: 1,
			QuestionPosition:    i,
		}
		require.NoError(t, db.Create(&q).Error)
	}
	return &cs
}

func testActor(id uuid.UUID, role string) helper.ActorContext {
	return helper.ActorContext{UserID: id, Role: role, IP: "127.0.0.1"}
}

/* =========================================================
   SUBMIT REVIEW: gagal transisi = review tetap pending
========================================================= */

// Owner bisa menarik case balik ke draft selagi review menggantung.
// Keputusan reviewer sesudah itu harus gagal TANPA menyentuh row review.
func TestSubmitReviewKeepsReviewPendingWhenTransitionRejected(t *testing.T) {
	db := newWorkflowTestDB(t)
	svc := newTestWorkflowService(db)
	ctx := context.Background()

	reviewerID := seedReviewer(t, db, "reviewer@uji.test")
	cs := seedCase(t, db, caseModel.StatusDraft, 1) // sudah ditarik balik ke draft

	rv := reviewModel.ReviewModel{
		ReviewCaseID:     cs.CaseID,
		ReviewReviewerID: reviewerID,
		ReviewStatus:     reviewModel.ReviewPending,
	}
	require.NoError(t, db.Create(&rv).Error)

	for _, decision := range []reviewModel.ReviewStatus{
		reviewModel.ReviewRejected, // draft → draft: tidak ada di tabel transisi
		reviewModel.ReviewApproved, // draft → approved: juga tidak ada
	} {
		_, err := svc.SubmitReview(ctx, testActor(reviewerID, "reviewer"), rv.ReviewID, decision, "catatan")
		require.Error(t, err)
		assert.Equal(t, FailInvalidTransition, KindOf(err))

		var after reviewModel.ReviewModel
		require.NoError(t, db.First(&after, "review_id = ?", rv.ReviewID).Error)
		assert.Equal(t, reviewModel.ReviewPending, after.ReviewStatus)
		assert.Nil(t, after.ReviewDecidedAt)

		var caseAfter caseModel.CaseModel
		require.NoError(t, db.First(&caseAfter, "case_id = ?", cs.CaseID).Error)
		assert.Equal(t, caseModel.StatusDraft, caseAfter.CaseStatus)
	}

	// tidak ada jejak audit keputusan untuk operasi yang gagal
	var auditCount int64
	require.NoError(t, db.Model(&auditModel.AuditLogModel{}).
		Where("audit_log_action = ?", auditModel.ActionCaseReviewDecide).
		Count(&auditCount).Error)
	assert.Zero(t, auditCount)
}

func TestSubmitReviewHappyPath(t *testing.T) {
	db := newWorkflowTestDB(t)
	svc := newTestWorkflowService(db)
	ctx := context.Background()

	reviewerID := seedReviewer(t, db, "reviewer2@uji.test")
	cs := seedCase(t, db, caseModel.StatusInReview, 1)

	rv := reviewModel.ReviewModel{
		ReviewCaseID:     cs.CaseID,
		ReviewReviewerID: reviewerID,
		ReviewStatus:     reviewModel.ReviewPending,
	}
	require.NoError(t, db.Create(&rv).Error)

	decided, err := svc.SubmitReview(ctx, testActor(reviewerID, "reviewer"), rv.ReviewID, reviewModel.ReviewApproved, "oke")
	require.NoError(t, err)
	assert.Equal(t, reviewModel.ReviewApproved, decided.ReviewStatus)
	require.NotNil(t, decided.ReviewDecidedAt)

	var caseAfter caseModel.CaseModel
	require.NoError(t, db.First(&caseAfter, "case_id = ?", cs.CaseID).Error)
	assert.Equal(t, caseModel.StatusApproved, caseAfter.CaseStatus)
}

/* =========================================================
   ASSIGN REVIEWER: idempoten per (case, reviewer)
========================================================= */

func TestAssignReviewerIdempotent(t *testing.T) {
	db := newWorkflowTestDB(t)
	svc := newTestWorkflowService(db)
	ctx := context.Background()

	adminID := uuid.New()
	reviewerID := seedReviewer(t, db, "reviewer3@uji.test")
	cs := seedCase(t, db, caseModel.StatusPendingReview, 1)

	first, err := svc.AssignReviewer(ctx, testActor(adminID, "admin"), cs.CaseID, reviewerID)
	require.NoError(t, err)

	var afterFirst caseModel.CaseModel
	require.NoError(t, db.First(&afterFirst, "case_id = ?", cs.CaseID).Error)
	assert.Equal(t, caseModel.StatusInReview, afterFirst.CaseStatus)

	// panggilan kedua selagi review pertama masih pending
	second, err := svc.AssignReviewer(ctx, testActor(adminID, "admin"), cs.CaseID, reviewerID)
	require.NoError(t, err)
	assert.Equal(t, first.ReviewID, second.ReviewID)

	var reviewCount int64
	require.NoError(t, db.Model(&reviewModel.ReviewModel{}).
		Where("review_case_id = ? AND review_reviewer_id = ?", cs.CaseID, reviewerID).
		Count(&reviewCount).Error)
	assert.Equal(t, int64(1), reviewCount)

	// status tidak maju dua kali
	var afterSecond caseModel.CaseModel
	require.NoError(t, db.First(&afterSecond, "case_id = ?", cs.CaseID).Error)
	assert.Equal(t, caseModel.StatusInReview, afterSecond.CaseStatus)
}

/* =========================================================
   COPY CASE: selalu lahir draft, id baru, isi ikut tersalin
========================================================= */

func TestCopyCaseAlwaysDraftWithNewID(t *testing.T) {
	db := newWorkflowTestDB(t)
	copySvc := NewCaseCopyService(db, auditSvc.NewRecorder(db))
	ctx := context.Background()

	src := seedCase(t, db, caseModel.StatusPublished, 2)

	var srcQuestions []caseModel.QuestionModel
	require.NoError(t, db.Where("question_case_id = ?", src.CaseID).Find(&srcQuestions).Error)
	for _, q := range srcQuestions {
		for pos := 1; pos <= 2; pos++ {
			a := caseModel.AnswerModel{
				AnswerQuestionID: q.QuestionID,
				AnswerText:       "Jawaban",
				AnswerTextFormat: "html",
				AnswerFraction:   1,
				AnswerPosition:   pos,
			}
			require.NoError(t, db.Create(&a).Error)
		}
	}

	copied, err := copySvc.CopyCase(ctx, testActor(uuid.New(), "instructor"), src.CaseID, nil)
	require.NoError(t, err)

	assert.NotEqual(t, src.CaseID, copied.CaseID)
	assert.Equal(t, caseModel.StatusDraft, copied.CaseStatus)
	assert.Equal(t, src.CaseCategoryID, copied.CaseCategoryID)

	var qCount, aCount int64
	require.NoError(t, db.Model(&caseModel.QuestionModel{}).
		Where("question_case_id = ?", copied.CaseID).Count(&qCount).Error)
	assert.Equal(t, int64(2), qCount)

	require.NoError(t, db.Model(&caseModel.AnswerModel{}).
		Joins("JOIN questions ON questions.question_id = answers.answer_question_id").
		Where("questions.question_case_id = ?", copied.CaseID).Count(&aCount).Error)
	assert.Equal(t, int64(4), aCount)

	// sumber tidak tersentuh
	var srcAfter caseModel.CaseModel
	require.NoError(t, db.First(&srcAfter, "case_id = ?", src.CaseID).Error)
	assert.Equal(t, caseModel.StatusPublished, srcAfter.CaseStatus)
	assert.WithinDuration(t, src.CaseUpdatedAt, srcAfter.CaseUpdatedAt, time.Second)
}
