// file: internals/features/users/auth/route/auth_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "praktikum_backend/internals/features/users/auth/controller"
	rateLimiter "praktikum_backend/internals/middlewares"
	authMiddleware "praktikum_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	ctl := authController.NewAuthController(db)

	auth := app.Group("/auth")
	auth.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)
	auth.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)
	auth.Post("/refresh-token", ctl.Refresh)
	auth.Post("/logout", authMiddleware.AuthMiddleware(db), ctl.Logout)
}
