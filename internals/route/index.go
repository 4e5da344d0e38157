// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	casebankRoute "praktikum_backend/internals/features/casebank/route"
	routeDetails "praktikum_backend/internals/route/details"
	rateLimiter "praktikum_backend/internals/middlewares"
	authMiddleware "praktikum_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, deps casebankRoute.Deps) {
	startTime = time.Now()

	// ===================== BASE =====================
	BaseRoutes(app, db)

	// ===================== AUTH =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================
	api := app.Group("/api", rateLimiter.GlobalRateLimiter())

	// 🔐 /api/a — instructor/reviewer/admin area (role dicek per grup fitur)
	log.Println("[INFO] Setting up ADMIN group...")
	admin := api.Group("/a", authMiddleware.AuthMiddleware(db))
	routeDetails.UserRoutes(admin, db)
	routeDetails.CasebankAdminRoutes(admin, deps)

	// 👤 /api/u — semua user login
	log.Println("[INFO] Setting up USER group...")
	user := api.Group("/u", authMiddleware.AuthMiddleware(db))
	routeDetails.CasebankReviewerRoutes(user, deps)
	routeDetails.CasebankUserRoutes(user, deps)
}
