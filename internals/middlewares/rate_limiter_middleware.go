package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/google/uuid"

	helper "praktikum_backend/internals/helpers"
	"praktikum_backend/internals/helpers/ratelimit"
)

// Global limiter per-IP: untuk semua endpoint biasa
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "❌ Terlalu banyak permintaan. Silakan coba lagi nanti.",
			})
		},
	})
}

// Rate limiter untuk login route (lebih ketat)
func LoginRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        5,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "❌ Terlalu banyak percobaan login. Coba beberapa saat lagi.",
			})
		},
	})
}

// Rate limiter untuk register route
func RegisterRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        3,
		Expiration: 5 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "❌ Terlalu banyak percobaan pendaftaran. Tunggu beberapa menit ya.",
			})
		},
	})
}

// ActorRateLimiter: sliding window per (user, operation) di atas cache.
// Dipasang per-route sesudah auth middleware; admin lolos otomatis.
func ActorRateLimiter(l *ratelimit.Limiter, op string, kind ratelimit.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := helper.ActorFromCtx(c)
		if actor.UserID == uuid.Nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, "User belum login")
		}
		if !l.Allow(actor.UserID, op, kind, actor.IsAdmin()) {
			return helper.JsonError(c, fiber.StatusTooManyRequests,
				"Terlalu banyak operasi "+op+". Silakan coba lagi sebentar lagi.")
		}
		return c.Next()
	}
}
