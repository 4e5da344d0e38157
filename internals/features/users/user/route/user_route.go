// file: internals/features/users/user/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"praktikum_backend/internals/constants"
	userController "praktikum_backend/internals/features/users/user/controller"
	authMiddleware "praktikum_backend/internals/middlewares/auth"
)

// UserAdminRoutes: manajemen akun — admin saja.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := userController.NewUserController(db)

	users := r.Group("/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("manajemen user"), constants.AdminOnly...),
	)
	users.Get("/", ctl.List)
	users.Post("/", ctl.Create)
	users.Patch("/:id", ctl.Patch)
	users.Delete("/:id", ctl.Delete)
}
