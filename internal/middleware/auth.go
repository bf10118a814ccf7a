package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/config"
	"github.com/example/kerapido/internal/models"
	"github.com/example/kerapido/internal/store"
	"github.com/example/kerapido/internal/utils"
)

const userContextKey = "currentUser"

// Auth validates the bearer token, resolves the user behind its subject and
// loads the record into the request context. Signature failures, expiry and
// unknown subjects are all the same Unauthorized outcome. Users whose email
// is not verified are rejected as inactive.
func Auth(cfg *config.Config, st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return apperr.Unauthorized("missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return apperr.Unauthorized("invalid authorization header")
		}

		email, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return apperr.Unauthorized("could not validate credentials")
		}

		user, err := st.FindUserByEmail(email)
		if err != nil {
			return apperr.Unauthorized("could not validate credentials")
		}

		if !user.EmailVerified {
			return apperr.Invalid("inactive user")
		}

		c.Locals(userContextKey, user)
		return c.Next()
	}
}

// CurrentUser extracts the authenticated user from context.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(userContextKey).(*models.User)
	return user, ok
}
