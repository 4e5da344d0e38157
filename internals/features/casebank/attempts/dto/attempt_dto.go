// file: internals/features/casebank/attempts/dto/attempt_dto.go
package dto

import (
	"github.com/google/uuid"

	attemptModel "praktikum_backend/internals/features/casebank/attempts/model"
)

// StartAttemptRequest: client kirim limit dalam MENIT, service hitung
// internal dalam detik.
type StartAttemptRequest struct {
	CaseID           uuid.UUID `json:"case_id" validate:"required"`
	TimeLimitMinutes int       `json:"time_limit_minutes" validate:"required,min=1,max=240"`
}

// TimeLimitSec konversi ke detik untuk layer service.
func (r StartAttemptRequest) TimeLimitSec() int {
	return r.TimeLimitMinutes * 60
}

type SaveResponsesRequest struct {
	Responses map[string]any `json:"responses" validate:"required"`
}

// FinishAttemptRequest: responses opsional — kosong berarti pakai hasil
// auto-save terakhir.
type FinishAttemptRequest struct {
	Responses map[string]any `json:"responses"`
}

type StartSessionRequest struct {
	CaseID uuid.UUID `json:"case_id" validate:"required"`
}

// AttemptResponse membungkus model + sisa waktu terhitung server-side.
type AttemptResponse struct {
	attemptModel.TimedAttemptModel
	TimeLeftSec int `json:"time_left_sec"`
}

func FromModelAttempt(m *attemptModel.TimedAttemptModel, timeLeftSec int) AttemptResponse {
	return AttemptResponse{TimedAttemptModel: *m, TimeLeftSec: timeLeftSec}
}
