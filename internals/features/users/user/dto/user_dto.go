// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "praktikum_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=50"`
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required,min=8"`
	UserRole     string `json:"user_role" validate:"required,oneof=student instructor reviewer admin"`
}

// UpdateUserRequest partial update; pointer = field tidak dikirim tidak diubah
type UpdateUserRequest struct {
	UserName     *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	UserRole     *string `json:"user_role" validate:"omitempty,oneof=student instructor reviewer admin"`
	UserIsActive *bool   `json:"user_is_active" validate:"omitempty"`
}

func (r *UpdateUserRequest) ApplyToModel(m *userModel.UserModel) {
	if r.UserName != nil {
		m.UserName = *r.UserName
	}
	if r.UserRole != nil {
		m.UserRole = *r.UserRole
	}
	if r.UserIsActive != nil {
		m.UserIsActive = *r.UserIsActive
	}
}

type UserResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	UserEmail    string    `json:"user_email"`
	UserRole     string    `json:"user_role"`
	UserIsActive bool      `json:"user_is_active"`
	UserCreatedAt time.Time `json:"user_created_at"`
}

func FromModelUser(m *userModel.UserModel) UserResponse {
	return UserResponse{
		UserID:        m.UserID,
		UserName:      m.UserName,
		UserEmail:     m.UserEmail,
		UserRole:      m.UserRole,
		UserIsActive:  m.UserIsActive,
		UserCreatedAt: m.UserCreatedAt,
	}
}

func FromModelUsers(ms []userModel.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModelUser(&ms[i]))
	}
	return out
}
