// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	validator "github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	authService "praktikum_backend/internals/features/users/auth/service"
	helper "praktikum_backend/internals/helpers"
)

type AuthController struct {
	Service   *authService.AuthService
	validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Service: authService.NewAuthService(db)}
}

func (ctl *AuthController) ensureValidator() {
	if ctl.validator == nil {
		ctl.validator = validator.New()
	}
}

type registerRequest struct {
	UserName     string `json:"user_name" validate:"required,min=3,max=50"`
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required,min=8"`
}

type loginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// POST /auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	// register publik selalu student; role lain diset admin lewat user admin endpoint
	u, err := ctl.Service.Register(c.UserContext(), req.UserName, req.UserEmail, req.UserPassword, "")
	if err != nil {
		if errors.Is(err, authService.ErrEmailTaken) {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mendaftarkan user")
	}
	return helper.JsonCreated(c, "Registrasi berhasil", u)
}

// POST /auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	u, pair, err := ctl.Service.Login(c.UserContext(), req.UserEmail, req.UserPassword)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidCredentials):
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		case errors.Is(err, authService.ErrUserInactive):
			return helper.JsonError(c, fiber.StatusForbidden, err.Error())
		default:
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal login")
		}
	}
	return helper.JsonOK(c, "Login berhasil", fiber.Map{
		"user":   u,
		"tokens": pair,
	})
}

// POST /auth/refresh
func (ctl *AuthController) Refresh(c *fiber.Ctx) error {
	ctl.ensureValidator()

	var req refreshRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := ctl.validator.Struct(req); err != nil {
		return helper.JsonValidationError(c, validationMap(err))
	}

	pair, err := ctl.Service.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak valid")
	}
	return helper.JsonOK(c, "Token diperbarui", pair)
}

// POST /auth/logout
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	authHeader := strings.TrimSpace(c.Get("Authorization"))
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak ditemukan")
	}
	if err := ctl.Service.Logout(c.UserContext(), strings.TrimSpace(parts[1])); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Token tidak valid")
	}
	return helper.JsonOK(c, "Logout berhasil", nil)
}

func validationMap(err error) map[string][]string {
	out := map[string][]string{}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			f := strings.ToLower(fe.Field())
			out[f] = append(out[f], fe.Tag())
		}
	}
	return out
}
