package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userRoute "praktikum_backend/internals/features/users/user/route"
)

// UserRoutes: manajemen akun di bawah /api/a (sudah dibungkus auth + role
// check oleh pemanggil).
func UserRoutes(admin fiber.Router, db *gorm.DB) {
	userRoute.UserAdminRoutes(admin, db)
}
