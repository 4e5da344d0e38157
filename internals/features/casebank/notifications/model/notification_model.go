// file: internals/features/casebank/notifications/model/notification_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type NotificationModel struct {
	NotificationID     uuid.UUID  `gorm:"column:notification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	NotificationType   string     `gorm:"column:notification_type;type:varchar(32);not null" json:"notification_type"`
	NotificationTitle  string     `gorm:"column:notification_title;type:varchar(255);not null" json:"notification_title"`
	NotificationBody   string     `gorm:"column:notification_body;type:text" json:"notification_body"`
	NotificationUserID *uuid.UUID `gorm:"column:notification_user_id;type:uuid;index" json:"notification_user_id,omitempty"` // nil = broadcast

	NotificationCaseID *uuid.UUID     `gorm:"column:notification_case_id;type:uuid;index" json:"notification_case_id,omitempty"`
	NotificationTags   pq.StringArray `gorm:"column:notification_tags;type:text[]" json:"notification_tags"`
	NotificationIsRead bool           `gorm:"column:notification_is_read;not null;default:false" json:"notification_is_read"`

	NotificationCreatedAt time.Time `gorm:"column:notification_created_at;autoCreateTime" json:"notification_created_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
