// file: internals/features/casebank/attempts/service/attempt_service.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"math"
	mrand "math/rand"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	attemptModel "praktikum_backend/internals/features/casebank/attempts/model"
	auditModel "praktikum_backend/internals/features/casebank/audit/model"
	auditSvc "praktikum_backend/internals/features/casebank/audit/service"
	caseModel "praktikum_backend/internals/features/casebank/cases/model"
	caseSvc "praktikum_backend/internals/features/casebank/cases/service"
	"praktikum_backend/internals/features/casebank/events"
	statsSvc "praktikum_backend/internals/features/casebank/stats/service"
	helper "praktikum_backend/internals/helpers"
)

/* =========================================================
   SERVICE
========================================================= */

type AttemptService struct {
	DB    *gorm.DB
	Audit *auditSvc.Recorder
	Stats *statsSvc.StatsService
	Sink  events.Sink
}

func NewAttemptService(db *gorm.DB, audit *auditSvc.Recorder, stats *statsSvc.StatsService, sink events.Sink) *AttemptService {
	return &AttemptService{DB: db, Audit: audit, Stats: stats, Sink: sink}
}

/* =========================================================
   HELPER MURNI (dipisah supaya gampang dites tanpa DB)
========================================================= */

// NewAttemptToken: 32 byte random → 64 char hex.
func NewAttemptToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SnapshotOrder: salin id soal lalu acak sekali. Hasilnya disimpan di
// attempt supaya urutan stabil walau halaman di-reload.
func SnapshotOrder(ids []uuid.UUID, shuffle bool) []uuid.UUID {
	out := append(ids[:0:0], ids...)
	if shuffle {
		mrand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// TimeLeft: sisa detik, tidak pernah negatif.
func TimeLeft(startedAt time.Time, limitSec int, now time.Time) int {
	deadline := startedAt.Add(time.Duration(limitSec) * time.Second)
	left := int(deadline.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

// Percentage: round 2 desimal; 0 kalau maxScore 0 (case tanpa soal
// auto-gradable) supaya tidak division-by-zero.
func Percentage(score, maxScore float64) float64 {
	if maxScore == 0 {
		return 0
	}
	return math.Round(score/maxScore*100*100) / 100
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func normalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GradeResponses: skor otomatis. Soal non-auto-gradable (matching, essay)
// tidak ikut score maupun maxScore. responses: question_id → jawaban
// (answer_id string, []answer_id untuk multi-answer, atau teks bebas
// untuk shortanswer).
func GradeResponses(questions []caseModel.QuestionModel, answersByQuestion map[uuid.UUID][]caseModel.AnswerModel, responses map[string]any) (score, maxScore float64) {
	for _, q := range questions {
		if !q.QuestionType.AutoGradable() {
			continue
		}
		maxScore += q.QuestionDefaultMark

		raw, ok := responses[q.QuestionID.String()]
		if !ok {
			continue
		}
		score += questionFraction(q, answersByQuestion[q.QuestionID], raw) * q.QuestionDefaultMark
	}
	return score, maxScore
}

func questionFraction(q caseModel.QuestionModel, answers []caseModel.AnswerModel, raw any) float64 {
	if q.QuestionType == caseModel.QuestionShortAnswer {
		text, ok := raw.(string)
		if !ok {
			return 0
		}
		best := 0.0
		for _, a := range answers {
			if normalizeText(a.AnswerText) == normalizeText(text) && a.AnswerFraction > best {
				best = a.AnswerFraction
			}
		}
		return clampFraction(best)
	}

	fractionByID := make(map[string]float64, len(answers))
	for _, a := range answers {
		fractionByID[a.AnswerID.String()] = a.AnswerFraction
	}

	switch v := raw.(type) {
	case string:
		return clampFraction(fractionByID[v])
	case []any:
		// multi-answer: jumlahkan fraction, clamp 0..1
		sum := 0.0
		for _, item := range v {
			id, ok := item.(string)
			if !ok {
				continue
			}
			sum += fractionByID[id]
		}
		return clampFraction(sum)
	default:
		return 0
	}
}

/* =========================================================
   OPERASI
========================================================= */

// StartAttempt mulai attempt ber-deadline. Attempt inprogress lama untuk
// (case, user) yang sama dihapus dulu — maksimal satu yang aktif.
func (svc *AttemptService) StartAttempt(ctx context.Context, actor helper.ActorContext, caseID uuid.UUID, timeLimitSec int) (*attemptModel.TimedAttemptModel, error) {
	if timeLimitSec <= 0 {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailValidation, Reason: "time_limit_sec harus > 0"}
	}

	var cs caseModel.CaseModel
	if err := svc.DB.WithContext(ctx).First(&cs, "case_id = ?", caseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &caseSvc.OpError{Kind: caseSvc.FailNotFound, Reason: "case tidak ditemukan"}
		}
		return nil, err
	}
	if cs.CaseStatus != caseModel.StatusPublished {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailValidation, Reason: "attempt hanya untuk case published"}
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

	order := SnapshotOrder(questionIDs, true)
	orderRaw, err := sonic.Marshal(order)
	if err != nil {
		return nil, err
	}

	token, err := NewAttemptToken()
	if err != nil {
		return nil, err
	}

	attempt := attemptModel.TimedAttemptModel{
		TimedAttemptToken:         token,
		TimedAttemptCaseID:        caseID,
		TimedAttemptUserID:        actor.UserID,
		TimedAttemptQuestionOrder: datatypes.JSON(orderRaw),
		TimedAttemptTimeLimitSec:  timeLimitSec,
		TimedAttemptStartedAt:     time.Now(),
		TimedAttemptStatus:        attemptModel.AttemptInProgress,
	}

	err = svc.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where(
			"timed_attempt_case_id = ? AND timed_attempt_user_id = ? AND timed_attempt_status = ?",
			caseID, actor.UserID, attemptModel.AttemptInProgress,
		).Delete(&attemptModel.TimedAttemptModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		return nil, err
	}

	_ = svc.Audit.RecordChange(actor, "timed_attempt", attempt.TimedAttemptID, auditModel.ActionAttemptStart, []auditSvc.FieldChange{
		{Field: "case_id", Old: nil, New: caseID},
		{Field: "time_limit_sec", Old: nil, New: timeLimitSec},
	})
	log.Printf("[ATTEMPT] start case=%s user=%s limit=%ds", caseID, actor.UserID, timeLimitSec)

	return &attempt, nil
}

// loadOwnedAttempt: ambil by token, validasi pemilik + status inprogress.
func (svc *AttemptService) loadOwnedAttempt(ctx context.Context, actor helper.ActorContext, token string) (*attemptModel.TimedAttemptModel, error) {
	var attempt attemptModel.TimedAttemptModel
	err := svc.DB.WithContext(ctx).First(&attempt, "timed_attempt_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailNotFound, Reason: "attempt tidak ditemukan"}
	}
	if err != nil {
		return nil, err
	}
	if attempt.TimedAttemptUserID != actor.UserID {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailForbidden, Reason: "attempt milik user lain"}
	}
	if attempt.TimedAttemptStatus == attemptModel.AttemptExpired {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailExpired, Reason: "attempt sudah expired, mulai attempt baru"}
	}
	if attempt.TimedAttemptStatus != attemptModel.AttemptInProgress {
		return nil, &caseSvc.OpError{Kind: caseSvc.FailValidation, Reason: "attempt sudah tidak inprogress"}
	}
	return &attempt, nil
}

// SaveResponses: auto-save selama attempt jalan. Validasi ulang penuh
// tiap panggilan — token bisa saja sudah expired di antara dua save.
func (svc *AttemptService) SaveResponses(ctx context.Context, actor helper.ActorContext, token string, responses map[string]any) error {
	attempt, err := svc.loadOwnedAttempt(ctx, actor, token)
	if err != nil {
		return err
	}
	if TimeLeft(attempt.TimedAttemptStartedAt, attempt.TimedAttemptTimeLimitSec, time.Now()) == 0 {
		return &caseSvc.OpError{Kind: caseSvc.FailExpired, Reason: "waktu attempt sudah habis"}
	}

	raw, err := sonic.Marshal(responses)
	if err != nil {
		return err
	}
	now := time.Now()
	return svc.DB.WithContext(ctx).
		Model(&attemptModel.TimedAttemptModel{}).
		Where("timed_attempt_id = ?", attempt.TimedAttemptID).
		Updates(map[string]any{
			"timed_attempt_responses":     datatypes.JSON(raw),
			"timed_attempt_last_saved_at": now,
		}).Error
}

// FinishAttempt: nilai jawaban dan tutup attempt. Finish yang datang
// setelah deadline tetap diterima dan dinilai (tidak ada cutoff server
// side) — sweep expired hanya menangkap attempt yang tidak pernah finish.
func (svc *AttemptService) FinishAttempt(ctx context.Context, actor helper.ActorContext, token string, responses map[string]any) (*attemptModel.TimedAttemptModel, error) {
	attempt, err := svc.loadOwnedAttempt(ctx, actor, token)
	if err != nil {
		return nil, err
	}

	// responses nil → pakai yang terakhir di-auto-save
	if responses == nil {
		responses = map[string]any{}
		if len(attempt.TimedAttemptResponses) > 0 {
			if err := sonic.Unmarshal(attempt.TimedAttemptResponses, &responses); err != nil {
				log.Printf("[ATTEMPT] gagal baca responses tersimpan token=%s: %v", token, err)
			}
		}
	}

	var questions []caseModel.QuestionModel
	if err := svc.DB.WithContext(ctx).
		Where("question_case_id = ?", attempt.TimedAttemptCaseID).
		Order("question_position ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}

	answersByQuestion := make(map[uuid.UUID][]caseModel.AnswerModel, len(questions))
	if len(questions) > 0 {
		qids := make([]uuid.UUID, 0, len(questions))
		for _, q := range questions {
			qids = append(qids, q.QuestionID)
		}
		var answers []caseModel.AnswerModel
		if err := svc.DB.WithContext(ctx).
			Where("answer_question_id IN ?", qids).
			Find(&answers).Error; err != nil {
			return nil, err
		}
		for _, a := range answers {
			answersByQuestion[a.AnswerQuestionID] = append(answersByQuestion[a.AnswerQuestionID], a)
		}
	}

	score, maxScore := GradeResponses(questions, answersByQuestion, responses)
	percent := Percentage(score, maxScore)

	now := time.Now()
	spent := int(now.Sub(attempt.TimedAttemptStartedAt).Seconds())
	rawResp, err := sonic.Marshal(responses)
	if err != nil {
		return nil, err
	}

	if err := svc.DB.WithContext(ctx).
		Model(&attemptModel.TimedAttemptModel{}).
		Where("timed_attempt_id = ?", attempt.TimedAttemptID).
		Updates(map[string]any{
			"timed_attempt_status":         attemptModel.AttemptFinished,
			"timed_attempt_responses":      datatypes.JSON(rawResp),
			"timed_attempt_score":          score,
			"timed_attempt_max_score":      maxScore,
			"timed_attempt_percentage":     percent,
			"timed_attempt_finished_at":    now,
			"timed_attempt_time_spent_sec": spent,
		}).Error; err != nil {
		return nil, err
	}

	attempt.TimedAttemptStatus = attemptModel.AttemptFinished
	attempt.TimedAttemptResponses = datatypes.JSON(rawResp)
	attempt.TimedAttemptScore = &score
	attempt.TimedAttemptMaxScore = &maxScore
	attempt.TimedAttemptPercentage = &percent
	attempt.TimedAttemptFinishedAt = &now
	attempt.TimedAttemptTimeSpentSec = &spent

	// agregat + event + audit: best-effort, tidak membatalkan finish
	svc.Stats.RecordFinishedAttempt(ctx, attempt.TimedAttemptCaseID, percent, now)
	svc.Sink.Publish(ctx, events.Event{
		Name:    events.AttemptFinished,
		CaseID:  attempt.TimedAttemptCaseID,
		ActorID: actor.UserID,
		Payload: map[string]any{"percentage": percent, "time_spent_sec": spent},
	})
	_ = svc.Audit.RecordChange(actor, "timed_attempt", attempt.TimedAttemptID, auditModel.ActionAttemptFinish, []auditSvc.FieldChange{
		{Field: "status", Old: attemptModel.AttemptInProgress, New: attemptModel.AttemptFinished},
		{Field: "percentage", Old: nil, New: percent},
	})
	log.Printf("[ATTEMPT] finish case=%s user=%s score=%.2f/%.2f (%.2f%%)", attempt.TimedAttemptCaseID, actor.UserID, score, maxScore, percent)

	return attempt, nil
}

// GetAttempt: status attempt + sisa waktu untuk pemiliknya.
func (svc *AttemptService) GetAttempt(ctx context.Context, actor helper.ActorContext, token string) (*attemptModel.TimedAttemptModel, int, error) {
	var attempt attemptModel.TimedAttemptModel
	err := svc.DB.WithContext(ctx).First(&attempt, "timed_attempt_token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, &caseSvc.OpError{Kind: caseSvc.FailNotFound, Reason: "attempt tidak ditemukan"}
	}
	if err != nil {
		return nil, 0, err
	}
	if attempt.TimedAttemptUserID != actor.UserID && !actor.IsAdmin() {
		return nil, 0, &caseSvc.OpError{Kind: caseSvc.FailForbidden, Reason: "attempt milik user lain"}
	}
	left := 0
	if attempt.TimedAttemptStatus == attemptModel.AttemptInProgress {
		left = TimeLeft(attempt.TimedAttemptStartedAt, attempt.TimedAttemptTimeLimitSec, time.Now())
	}
	return &attempt, left, nil
}

// ExpireOldAttempts: bulk UPDATE inprogress → expired untuk attempt yang
// sudah lewat deadline. Dipanggil scheduler, bukan request path.
func (svc *AttemptService) ExpireOldAttempts(ctx context.Context) (int64, error) {
	res := svc.DB.WithContext(ctx).
		Model(&attemptModel.TimedAttemptModel{}).
		Where("timed_attempt_status = ?", attemptModel.AttemptInProgress).
		Where("timed_attempt_started_at + make_interval(secs => timed_attempt_time_limit_sec) < NOW()").
		Update("timed_attempt_status", attemptModel.AttemptExpired)
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[ATTEMPT] expire sweep: %d attempt ditandai expired", res.RowsAffected)
	}
	return res.RowsAffected, nil
}
