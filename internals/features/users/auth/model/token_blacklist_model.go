package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenBlacklistModel menyimpan JWT yang sudah di-logout sampai expired
type TokenBlacklistModel struct {
	TokenBlacklistID        uuid.UUID `gorm:"column:token_blacklist_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"token_blacklist_id"`
	TokenBlacklistToken     string    `gorm:"column:token_blacklist_token;type:text;not null;index" json:"token_blacklist_token"`
	TokenBlacklistExpiredAt time.Time `gorm:"column:token_blacklist_expired_at;not null" json:"token_blacklist_expired_at"`
	TokenBlacklistCreatedAt time.Time `gorm:"column:token_blacklist_created_at;autoCreateTime" json:"token_blacklist_created_at"`
}

func (TokenBlacklistModel) TableName() string {
	return "token_blacklist"
}
