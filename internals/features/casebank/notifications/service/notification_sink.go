// file: internals/features/casebank/notifications/service/notification_sink.go
package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikum_backend/internals/features/casebank/events"
	notifModel "praktikum_backend/internals/features/casebank/notifications/model"
)

// NotificationSink: implementasi events.Sink yang menulis baris notifikasi.
// Best-effort — error hanya dicatat, tidak pernah bikin operasi asal gagal.
type NotificationSink struct {
	DB *gorm.DB
}

func NewNotificationSink(db *gorm.DB) *NotificationSink {
	return &NotificationSink{DB: db}
}

var _ events.Sink = (*NotificationSink)(nil)

func (s *NotificationSink) Publish(ctx context.Context, e events.Event) {
	n := notifModel.NotificationModel{
		NotificationType: e.Name,
	}
	if e.CaseID != uuid.Nil {
		cid := e.CaseID
		n.NotificationCaseID = &cid
	}

	switch e.Name {
	case events.CasePublished:
		n.NotificationTitle = "Case baru dipublikasikan"
		n.NotificationBody = fmt.Sprintf("Case %v sekarang tersedia untuk latihan.", e.Payload["case_name"])
		n.NotificationTags = []string{"casebank", "published"}
		// broadcast: user_id nil
	case events.ReviewDecided:
		n.NotificationTitle = "Review diputuskan"
		n.NotificationBody = fmt.Sprintf("Keputusan review: %v", e.Payload["decision"])
		n.NotificationTags = []string{"casebank", "review"}
		if owner, ok := e.Payload["case_owner"].(uuid.UUID); ok {
			n.NotificationUserID = &owner
		}
	case events.AttemptFinished:
		n.NotificationTitle = "Attempt selesai"
		n.NotificationBody = fmt.Sprintf("Skor kamu: %v%%", e.Payload["percentage"])
		n.NotificationTags = []string{"casebank", "attempt"}
		uid := e.ActorID
		n.NotificationUserID = &uid
	default:
		log.Printf("[NOTIF] event tidak dikenal: %s", e.Name)
		return
	}

	if err := s.DB.WithContext(ctx).Create(&n).Error; err != nil {
		log.Printf("[NOTIF] gagal tulis notifikasi event=%s: %v", e.Name, err)
	}
}
