package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
)

// NotificationHandler manages user notifications.
type NotificationHandler struct {
	st *store.Store
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(st *store.Store) *NotificationHandler {
	return &NotificationHandler{st: st}
}

// ListMine returns the authenticated user's notifications.
func (h *NotificationHandler) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	notifications, err := h.st.ListNotificationsByUser(actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(notifications)
}

type createNotificationRequest struct {
	UserID  uuid.UUID `json:"user_id"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
}

// Create sends a notification to a user. Admin only.
func (h *NotificationHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	var req createNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.UserID == uuid.Nil || req.Title == "" || req.Message == "" {
		return apperr.Invalid("user_id, title and message are required")
	}

	notification, err := h.st.CreateNotification(req.UserID, req.Title, req.Message)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(notification)
}
