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

	attemptModel "praktikum_backend/internals/features/casebank/attempts/model"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	"praktikum_backend/internals/features/casebank/events"
	statsSvc "praktikum_backend/internals/features/casebank/stats/service"
	helper "praktikum_backend/internals/helpers"
)

var attemptTestDDL = []string{
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
	`CREATE TABLE timed_attempts (
		timed_attempt_id text PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(2))) || '-' || lower(hex(randomblob(6)))),
		timed_attempt_token text NOT NULL UNIQUE,
		timed_attempt_case_id text NOT NULL,
		timed_attempt_user_id text NOT NULL,
		timed_attempt_question_order text NOT NULL,
		timed_attempt_time_limit_sec integer NOT NULL,
		timed_attempt_started_at datetime NOT NULL,
		timed_attempt_status text NOT NULL DEFAULT 'inprogress',
		timed_attempt_responses text,
		timed_attempt_last_saved_at datetime,
		timed_attempt_score real,
		timed_attempt_max_score real,
		timed_attempt_percentage real,
		timed_attempt_finished_at datetime,
		timed_attempt_time_spent_sec integer,
		timed_attempt_created_at datetime,
		timed_attempt_updated_at datetime
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

func newAttemptTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range attemptTestDDL {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func newTestAttemptService(db *gorm.DB) *AttemptService {
	return NewAttemptService(db, auditSvc.NewRecorder(db), statsSvc.NewStatsService(db), events.LogSink{})
}

func seedPublishedCase(t *testing.T, db *gorm.DB, nQuestions int) uuid.UUID {
	t.Helper()
	cs := caseModel.CaseModel{
		CaseCategoryID:      uuid.New(),
		CaseName:            "Kasus Attempt",
		CaseStatement:       "<p>Statement</p>",
		CaseStatementFormat: "html",
		CaseStatus:          caseModel.StatusPublished,
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
	return cs.CaseID
}

func testActor(id uuid.UUID) helper.ActorContext {
	return helper.ActorContext{UserID: id, Role: "student", IP: "127.0.0.1"}
}

// Start kedua untuk (case, user) yang sama menghapus attempt inprogress
// lama: maksimal satu yang aktif.
func TestStartAttemptReplacesInProgress(t *testing.T) {
	db := newAttemptTestDB(t)
	svc := newTestAttemptService(db)
	ctx := context.Background()

	caseID := seedPublishedCase(t, db, 3)
	userID := uuid.New()

	first, err := svc.StartAttempt(ctx, testActor(userID), caseID, 600)
	require.NoError(t, err)
	second, err := svc.StartAttempt(ctx, testActor(userID), caseID, 600)
	require.NoError(t, err)

	assert.NotEqual(t, first.TimedAttemptToken, second.TimedAttemptToken)

	var inProgress int64
	require.NoError(t, db.Model(&attemptModel.TimedAttemptModel{}).
		Where("timed_attempt_case_id = ? AND timed_attempt_user_id = ? AND timed_attempt_status = ?",
			caseID, userID, attemptModel.AttemptInProgress).
		Count(&inProgress).Error)
	assert.Equal(t, int64(1), inProgress)

	// attempt pertama benar-benar hilang, bukan cuma ganti status
	err = db.First(&attemptModel.TimedAttemptModel{}, "timed_attempt_token = ?", first.TimedAttemptToken).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// Attempt user lain tidak ikut tersapu oleh start.
func TestStartAttemptLeavesOtherUsersAlone(t *testing.T) {
	db := newAttemptTestDB(t)
	svc := newTestAttemptService(db)
	ctx := context.Background()

	caseID := seedPublishedCase(t, db, 2)
	userA := uuid.New()
	userB := uuid.New()

	_, err := svc.StartAttempt(ctx, testActor(userA), caseID, 600)
	require.NoError(t, err)
	_, err = svc.StartAttempt(ctx, testActor(userB), caseID, 600)
	require.NoError(t, err)

	var inProgress int64
	require.NoError(t, db.Model(&attemptModel.TimedAttemptModel{}).
		Where("timed_attempt_case_id = ? AND timed_attempt_status = ?", caseID, attemptModel.AttemptInProgress).
		Count(&inProgress).Error)
	assert.Equal(t, int64(2), inProgress)
}

// Save sesudah deadline ditolak dengan kind expired (bukan validation),
// walau sweep belum sempat menandai attempt-nya.
func TestSaveResponsesAfterDeadlineExpiredKind(t *testing.T) {
	db := newAttemptTestDB(t)
	svc := newTestAttemptService(db)
	ctx := context.Background()

	caseID := seedPublishedCase(t, db, 1)
	userID := uuid.New()

	attempt, err := svc.StartAttempt(ctx, testActor(userID), caseID, 600)
	require.NoError(t, err)

	// mundurkan start supaya deadline sudah lewat
	require.NoError(t, db.Model(&attemptModel.TimedAttemptModel{}).
		Where("timed_attempt_id = ?", attempt.TimedAttemptID).
		Update("timed_attempt_started_at", time.Now().Add(-2*time.Hour)).Error)

	err = svc.SaveResponses(ctx, testActor(userID), attempt.TimedAttemptToken, map[string]any{})
	require.Error(t, err)
	assert.Equal(t, caseSvc.FailExpired, caseSvc.KindOf(err))
}
