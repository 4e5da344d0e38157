package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"praktikum_backend/internals/constants"
)

// UserModel merepresentasikan tabel users
type UserModel struct {
	UserID       uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	UserName     string    `gorm:"column:user_name;size:50;not null" json:"user_name"`
	UserEmail    string    `gorm:"column:user_email;size:255;unique;not null" json:"user_email"`
	UserPassword string    `gorm:"column:user_password;not null" json:"-"`
	UserRole     string    `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`
	UserIsActive bool      `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string {
	return "users"
}

// SetDefaultValues memastikan nilai default sebelum simpan
func (u *UserModel) SetDefaultValues() {
	if u.UserRole == "" {
		u.UserRole = constants.RoleStudent
	}
}

// IsValidReviewer: user ada, aktif, tidak terhapus
func (u *UserModel) IsValidReviewer() bool {
	return u.UserIsActive && !u.UserDeletedAt.Valid
}
