// file: internals/features/users/user/controller/user_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userDto "praktikum_backend/internals/features/users/user/dto"
	userModel "praktikum_backend/internals/features/users/user/model"
	helper "praktikum_backend/internals/helpers"
)

type UserController struct {
	DB        *gorm.DB
	validator *validator.Validate
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (ctl *UserController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

// GET /api/a/users?role=&q=&page=&per_page=
func (ctl *UserController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 25, 200)

	q := ctl.DB.Model(&userModel.UserModel{})
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("user_role = ?", role)
	}
	if search := strings.TrimSpace(c.Query("q")); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(user_name) LIKE ? OR LOWER(user_email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung users")
	}

	var users []userModel.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil users")
	}

	return helper.JsonList(c, "Daftar users", userDto.FromModelUsers(users), helper.BuildPagination(total, paging))
}

// POST /api/a/users — admin membuat akun instructor/reviewer
func (ctl *UserController) Create(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req userDto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.UserPassword), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memproses password")
	}

	u := userModel.UserModel{
		UserName:     req.UserName,
		UserEmail:    strings.ToLower(strings.TrimSpace(req.UserEmail)),
		UserPassword: string(hashed),
		UserRole:     req.UserRole,
		UserIsActive: true,
	}
	if err := ctl.DB.Create(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
	}
	return helper.JsonCreated(c, "User dibuat", userDto.FromModelUser(&u))
}

// PATCH /api/a/users/:id
func (ctl *UserController) Patch(c *fiber.Ctx) error {
	ctl.ensureValidator()

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}

	var req userDto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"body": {err.Error()}})
	}

	var u userModel.UserModel
	if err := ctl.DB.First(&u, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil user")
	}

	req.ApplyToModel(&u)
	if err := ctl.DB.Save(&u).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan user")
	}
	return helper.JsonUpdated(c, "User diperbarui", userDto.FromModelUser(&u))
}

// DELETE /api/a/users/:id (soft delete)
func (ctl *UserController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
	}
	res := ctl.DB.Delete(&userModel.UserModel{}, "user_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User tidak ditemukan")
	}
	return helper.JsonDeleted(c, "User dihapus", fiber.Map{"user_id": id})
}
