// file: internals/features/casebank/stats/model/case_usage_stat_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// CaseUsageStatModel: agregat pemakaian per case, di-upsert tiap attempt selesai.
type CaseUsageStatModel struct {
	CaseUsageStatID     uuid.UUID `gorm:"column:case_usage_stat_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"case_usage_stat_id"`
	CaseUsageStatCaseID uuid.UUID `gorm:"column:case_usage_stat_case_id;type:uuid;unique;not null" json:"case_usage_stat_case_id"`

	CaseUsageStatAttemptCount int     `gorm:"column:case_usage_stat_attempt_count;not null;default:0" json:"case_usage_stat_attempt_count"`
	CaseUsageStatTotalPercent float64 `gorm:"column:case_usage_stat_total_percent;not null;default:0" json:"case_usage_stat_total_percent"`
	CaseUsageStatBestPercent  float64 `gorm:"column:case_usage_stat_best_percent;not null;default:0" json:"case_usage_stat_best_percent"`
	CaseUsageStatAvgPercent   float64 `gorm:"column:case_usage_stat_avg_percent;not null;default:0" json:"case_usage_stat_avg_percent"`

	CaseUsageStatLastAttemptAt *time.Time `gorm:"column:case_usage_stat_last_attempt_at" json:"case_usage_stat_last_attempt_at,omitempty"`
	CaseUsageStatUpdatedAt     time.Time  `gorm:"column:case_usage_stat_updated_at;autoUpdateTime" json:"case_usage_stat_updated_at"`
}

func (CaseUsageStatModel) TableName() string {
	return "case_usage_stats"
}
