package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/config"
	"github.com/example/kerapido/internal/store"
	"github.com/example/kerapido/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	st  *store.Store
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(st *store.Store, cfg *config.Config) *AuthHandler {
	return &AuthHandler{st: st, cfg: cfg}
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token exchanges credentials for a session token. Unknown email and wrong
// password produce the same answer so account existence never leaks.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req tokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}

	user, err := h.st.FindUserByEmail(req.Email)
	if err != nil || !utils.CheckPassword(user.PasswordHash, req.Password) {
		return apperr.Unauthorized("invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.Email, h.cfg.TokenExpires)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// Signup creates a user together with its linked customer profile.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	user, err := h.st.Signup(req.toParams())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}
