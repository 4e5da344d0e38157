// file: internals/features/casebank/stats/service/stats_service.go
package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	statsModel "praktikum_backend/internals/features/casebank/stats/model"
)

type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// ApplyAttempt: update agregat in-memory. Dipisah supaya gampang dites.
func ApplyAttempt(s *statsModel.CaseUsageStatModel, percent float64, at time.Time) {
	s.CaseUsageStatAttemptCount++
	s.CaseUsageStatTotalPercent += percent
	if percent > s.CaseUsageStatBestPercent {
		s.CaseUsageStatBestPercent = percent
	}
	s.CaseUsageStatAvgPercent = s.CaseUsageStatTotalPercent / float64(s.CaseUsageStatAttemptCount)
	s.CaseUsageStatLastAttemptAt = &at
}

// RecordFinishedAttempt upsert agregat per case. Best-effort: dipanggil
// setelah attempt tersimpan, gagal di sini tidak membatalkan attempt.
func (svc *StatsService) RecordFinishedAttempt(ctx context.Context, caseID uuid.UUID, percent float64, at time.Time) {
	var stat statsModel.CaseUsageStatModel
	err := svc.DB.WithContext(ctx).
		Where("case_usage_stat_case_id = ?", caseID).
		First(&stat).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stat = statsModel.CaseUsageStatModel{CaseUsageStatCaseID: caseID}
		ApplyAttempt(&stat, percent, at)
		if err := svc.DB.WithContext(ctx).Create(&stat).Error; err != nil {
			log.Printf("[STATS] gagal create stat case=%s: %v", caseID, err)
		}
	case err != nil:
		log.Printf("[STATS] gagal load stat case=%s: %v", caseID, err)
	default:
		ApplyAttempt(&stat, percent, at)
		if err := svc.DB.WithContext(ctx).Save(&stat).Error; err != nil {
			log.Printf("[STATS] gagal update stat case=%s: %v", caseID, err)
		}
	}
}

// GetByCase ambil agregat satu case (nil kalau belum ada attempt).
func (svc *StatsService) GetByCase(ctx context.Context, caseID uuid.UUID) (*statsModel.CaseUsageStatModel, error) {
	var stat statsModel.CaseUsageStatModel
	err := svc.DB.WithContext(ctx).
		Where("case_usage_stat_case_id = ?", caseID).
		First(&stat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stat, nil
}
