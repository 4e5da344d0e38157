package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	statsModel "praktikum_backend/internals/features/casebank/stats/model"
)

func TestApplyAttemptAggregates(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	var s statsModel.CaseUsageStatModel

	ApplyAttempt(&s, 50, now)
	assert.Equal(t, 1, s.CaseUsageStatAttemptCount)
	assert.Equal(t, 50.0, s.CaseUsageStatBestPercent)
	assert.Equal(t, 50.0, s.CaseUsageStatAvgPercent)

	ApplyAttempt(&s, 100, now.Add(time.Hour))
	assert.Equal(t, 2, s.CaseUsageStatAttemptCount)
	assert.Equal(t, 100.0, s.CaseUsageStatBestPercent)
	assert.Equal(t, 75.0, s.CaseUsageStatAvgPercent)

	// skor lebih rendah tidak menurunkan best
	ApplyAttempt(&s, 25, now.Add(2*time.Hour))
	assert.Equal(t, 100.0, s.CaseUsageStatBestPercent)
	assert.InDelta(t, 58.33, s.CaseUsageStatAvgPercent, 0.01)
	assert.Equal(t, now.Add(2*time.Hour), *s.CaseUsageStatLastAttemptAt)
}
