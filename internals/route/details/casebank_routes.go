package details

import (
	"github.com/gofiber/fiber/v2"

	casebankRoute "praktikum_backend/internals/features/casebank/route"
)

func CasebankAdminRoutes(admin fiber.Router, d casebankRoute.Deps) {
	casebankRoute.CasebankAdminRoutes(admin, d)
}

func CasebankReviewerRoutes(user fiber.Router, d casebankRoute.Deps) {
	casebankRoute.CasebankReviewerRoutes(user, d)
}

func CasebankUserRoutes(user fiber.Router, d casebankRoute.Deps) {
	casebankRoute.CasebankUserRoutes(user, d)
}
