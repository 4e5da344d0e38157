package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"praktikum_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware dasar urut: recovery → cors → logger → limiter global
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
