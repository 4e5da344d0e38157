// file: internals/features/casebank/events/events.go
package events

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Nama event yang dipancarkan workflow/attempt.
const (
	CasePublished   = "case_published"
	ReviewDecided   = "review_decided"
	AttemptFinished = "attempt_finished"
)

type Event struct {
	Name    string
	CaseID  uuid.UUID
	ActorID uuid.UUID
	Payload map[string]any
}

// Sink: fire-and-forget. Error tidak pernah dipropagasi ke hasil operasi
// pemanggil — konsumen (notifikasi dsb.) best-effort.
type Sink interface {
	Publish(ctx context.Context, e Event)
}

// LogSink: fallback / test sink, hanya mencatat.
type LogSink struct{}

func (LogSink) Publish(_ context.Context, e Event) {
	log.Printf("[EVENT] %s case=%s actor=%s", e.Name, e.CaseID, e.ActorID)
}
