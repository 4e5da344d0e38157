// file: internals/features/casebank/attempts/service/session_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attemptModel "praktikum_backend/internals/features/casebank/attempts/model"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	helper "praktikum_backend/internals/helpers"
)

// SessionIdleTTL: sesi latihan tanpa save selama ini di-abandon oleh sweep.
const SessionIdleTTL = 24 * time.Hour

// SessionService: latihan tanpa deadline. Tidak dinilai, tidak masuk
// statistik — murni tempat coret-coret sebelum attempt beneran.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService {
	return &SessionService{DB: db}
}

// StartSession: buka sesi baru, sesi active lama untuk (case, user) di-abandon.
func (svc *SessionService) StartSession(ctx context.Context, actor helper.ActorContext, caseID uuid.UUID) (*attemptModel.PracticeSessionModel, error) {
	var cs caseModel.CaseModel
	if err := svc.DB.WithContext(ctx).First(&cs, "case_id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &caseSvc.OpError{Kind: caseSvc.FailNotFound, Reason: "case tidak ditemukan"}
		}
		return nil, err
	}
	if cs.CaseStatus != caseModel.StatusPublished {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailValidation, Reason: "latihan hanya untuk case published"}
	}

	var questionIDs []uuid.UUID
	if err := svc.DB.WithContext(ctx).
		Model(&caseModel.QuestionModel{}).
		Where("question_case_id = ?", caseID).
		Order("question_position ASC").
		Pluck("question_id", &questionIDs).Error; err != nil {
		return nil, err
	}
	if len(questionIDs) == 0 {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailValidation, Reason: "case tidak punya soal"}
	}

	orderRaw, err := sonic.Marshal(SnapshotOrder(questionIDs, true))
	if err != nil {
		return nil, err
	}
	token, err := NewAttemptToken()
	if err != nil {
		return nil, err
	}

	session := attemptModel.PracticeSessionModel{
		PracticeSessionToken:         token,
		PracticeSessionCaseID:        caseID,
		PracticeSessionUserID:        actor.UserID,
		PracticeSessionQuestionOrder: datatypes.JSON(orderRaw),
		PracticeSessionStatus:        attemptModel.SessionActive,
		PracticeSessionStartedAt:     time.Now(),
	}

	err = svc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&attemptModel.PracticeSessionModel{}).
			Where("practice_session_case_id = ? AND practice_session_user_id = ? AND practice_session_status = ?",
				caseID, actor.UserID, attemptModel.SessionActive).
			Update("practice_session_status", attemptModel.SessionAbandoned).Error; err != nil {
			return err
		}
		return tx.Create(&session).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[SESSION] start case=%s user=%s", caseID, actor.UserID)
	return &session, nil
}

func (svc *SessionService) loadOwnedSession(ctx context.Context, actor helper.ActorContext, token string) (*attemptModel.PracticeSessionModel, error) {
	var session attemptModel.PracticeSessionModel
	err := svc.DB.WithContext(ctx).First(&session, "practice_session_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailNotFound, Reason: "sesi tidak ditemukan"}
	}
	if err != nil {
		return nil, err
	}
	if session.PracticeSessionUserID != actor.UserID {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailForbidden, Reason: "sesi milik user lain"}
	}
	if session.PracticeSessionStatus == attemptModel.SessionAbandoned {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailExpired, Reason: "sesi sudah di-abandon karena idle, mulai sesi baru"}
	}
	if session.PracticeSessionStatus != attemptModel.SessionActive {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailValidation, Reason: "sesi sudah tidak active"}
	}
	return &session, nil
}

// SaveSession: simpan progres + refresh last_saved_at (reset idle TTL).
func (svc *SessionService) SaveSession(ctx context.Context, actor helper.ActorContext, token string, responses map[string]any) error {
	session, err := svc.loadOwnedSession(ctx, actor, token)
	if err != nil {
		return err
	}
	raw, err := sonic.Marshal(responses)
	if err != nil {
		return err
	}
	now := time.Now()
	return svc.DB.WithContext(ctx).
		Model(&attemptModel.PracticeSessionModel{}).
		Where("practice_session_id = ?", session.PracticeSessionID).
		Updates(map[string]any{
			"practice_session_responses":     datatypes.JSON(raw),
			"practice_session_last_saved_at": now,
		}).Error
}

// CompleteSession: tutup sesi secara eksplisit.
func (svc *SessionService) CompleteSession(ctx context.Context, actor helper.ActorContext, token string) error {
	session, err := svc.loadOwnedSession(ctx, actor, token)
	if err != nil {
		return err
	}
	return svc.DB.WithContext(ctx).
		Model(&attemptModel.PracticeSessionModel{}).
		Where("practice_session_id = ?", session.PracticeSessionID).
		Update("practice_session_status", attemptModel.SessionCompleted).Error
}

// GetSession: baca sesi milik sendiri (status apa pun).
func (svc *SessionService) GetSession(ctx context.Context, actor helper.ActorContext, token string) (*attemptModel.PracticeSessionModel, error) {
	var session attemptModel.PracticeSessionModel
	err := svc.DB.WithContext(ctx).First(&session, "practice_session_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailNotFound, Reason: "sesi tidak ditemukan"}
	}
	if err != nil {
		return nil, err
	}
	if session.PracticeSessionUserID != actor.UserID && !actor.IsAdmin() {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailForbidden, Reason: "sesi milik user lain"}
	}
	return &session, nil
}

// AbandonIdleSessions: sweep sesi active yang idle melewati TTL.
// Patokan idle = last_saved_at, fallback started_at kalau belum pernah save.
func (svc *SessionService) AbandonIdleSessions(ctx context.Context, idle time.Duration) (int64, error) {
	cutoff := time.Now().Add(-idle)
	res := svc.DB.WithContext(ctx).
		Model(&attemptModel.PracticeSessionModel{}).
		Where("practice_session_status = ?", attemptModel.SessionActive).
		Where("COALESCE(practice_session_last_saved_at, practice_session_started_at) < ?", cutoff).
		Update("practice_session_status", attemptModel.SessionAbandoned)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[SESSION] idle sweep: %d sesi di-abandon", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
