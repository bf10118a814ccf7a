package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/ratelimit"
)

// RateLimit gates every request through the injected admission-control
// component, keyed by client address.
func RateLimit(limiter *ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, remaining, retryAfter := limiter.Admit(c.IP(), time.Now())

		c.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Max()))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 0 {
				secs = 0
			}
			c.Set("Retry-After", strconv.Itoa(secs))
			return apperr.TooManyRequests("too many requests, try again later")
		}

		return c.Next()
	}
}
