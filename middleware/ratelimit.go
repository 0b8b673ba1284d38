package middleware

import (
	"context"
	"strconv"

	"sellinginfinity/services/ratelimit"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Allower interface {
	Allow(ctx context.Context, key string) (ratelimit.Decision, error)
}

// RateLimit limits requests per client IP. A nil limiter disables it and
// limiter failures let the request through.
func RateLimit(limiter Allower, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}

		d, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			log.Warn("rate limiter unavailable", zap.Error(err))
			return c.Next()
		}

		c.Set("X-RateLimit-Remaining", strconv.FormatInt(d.Remaining, 10))
		if !d.Allowed {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(d.RetryAfter.Seconds())))
			return ErrorResponse(c, fiber.StatusTooManyRequests, CodeRateLimited, "Too many submissions, please try again later")
		}
		return c.Next()
	}
}
