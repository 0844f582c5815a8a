package serverutils

import (
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/pkg/ratelimit"

	"github.com/gofiber/fiber/v2"
)

// RateLimitMiddleware rejects a client IP that asks again inside the limiter's window.
// Limiter failures let the request through.
func RateLimitMiddleware(limiter ratelimit.Limiter, message string, log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		allowed, err := limiter.Allow(ctx.UserContext(), ctx.IP())
		if err != nil {
			log.Warn("RateLimit", "Limiter unavailable, admitting request", map[string]interface{}{"error": err.Error()})
			return ctx.Next()
		}
		if !allowed {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(message))
		}
		return ctx.Next()
	}
}
