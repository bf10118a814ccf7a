package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
)

// PaymentHandler manages payment transactions.
type PaymentHandler struct {
	st *store.Store
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(st *store.Store) *PaymentHandler {
	return &PaymentHandler{st: st}
}

type createPaymentRequest struct {
	AssignmentID        uuid.UUID  `json:"assignment_id"`
	Amount              *float64   `json:"amount"`
	CurrencyID          *uuid.UUID `json:"currency_id"`
	PaymentMethodTypeID *uuid.UUID `json:"payment_method_type_id"`
	PaymentChannelID    *uuid.UUID `json:"payment_channel_id"`
	PaymentStatusID     *uuid.UUID `json:"payment_status_id"`
}

// Create records a payment for an assignment. A participant of the
// assignment or an admin.
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	var req createPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.AssignmentID == uuid.Nil || req.Amount == nil {
		return apperr.Invalid("assignment_id and amount are required")
	}

	assignment, err := h.st.GetAssignment(req.AssignmentID)
	if err != nil {
		return err
	}
	customerUserID, driverUserID, err := h.st.AssignmentParticipants(assignment)
	if err != nil {
		return err
	}
	if err := policy.RequireParticipantOrAdmin(actor, customerUserID, driverUserID); err != nil {
		return err
	}

	payment, err := h.st.CreatePayment(store.CreatePaymentParams{
		AssignmentID:        req.AssignmentID,
		Amount:              *req.Amount,
		CurrencyID:          req.CurrencyID,
		PaymentMethodTypeID: req.PaymentMethodTypeID,
		PaymentChannelID:    req.PaymentChannelID,
		PaymentStatusID:     req.PaymentStatusID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

// Get returns one payment transaction. A participant of the underlying
// assignment or an admin.
func (h *PaymentHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid payment id")
	}

	payment, err := h.st.GetPayment(id)
	if err != nil {
		return err
	}

	assignment, err := h.st.GetAssignment(payment.AssignmentID)
	if err != nil {
		return err
	}
	customerUserID, driverUserID, err := h.st.AssignmentParticipants(assignment)
	if err != nil {
		return err
	}
	if err := policy.RequireParticipantOrAdmin(actor, customerUserID, driverUserID); err != nil {
		return err
	}
	return c.JSON(payment)
}
