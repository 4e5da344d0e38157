// file: internals/helpers/actor.go
package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"praktikum_backend/internals/constants"
)

// ActorContext adalah identitas eksplisit yang dioper ke semua operasi
// workflow/bulk/audit — bukan dibaca dari global.
type ActorContext struct {
	UserID uuid.UUID
	Role   string
	IP     string
}

func (a ActorContext) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

func (a ActorContext) HasRole(roles ...string) bool {
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}

// ActorFromCtx membangun ActorContext dari Locals yang diisi auth middleware.
// Dipanggil setelah AuthMiddleware: kalau belum login, UserID = uuid.Nil.
func ActorFromCtx(c *fiber.Ctx) ActorContext {
	uid, err := GetUserIDFromToken(c)
	if err != nil {
		uid = uuid.Nil
	}
	return ActorContext{
		UserID: uid,
		Role:   GetRoleFromToken(c),
		IP:     c.IP(),
	}
}

// GetUserIDFromToken ambil user_id dari c.Locals("user_id").
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals("user_id")
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		id, err := uuid.Parse(s)
		if err != nil {
			return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
		}
		return id, nil
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
}

// GetRoleFromToken ambil role dari c.Locals("role")
func GetRoleFromToken(c *fiber.Ctx) string {
	if r, ok := c.Locals("role").(string); ok {
		return r
	}
	return ""
}
