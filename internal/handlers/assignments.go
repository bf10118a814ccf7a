package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
)

// AssignmentHandler manages ride assignments ("asignaciones").
type AssignmentHandler struct {
	st *store.Store
}

// NewAssignmentHandler constructs an AssignmentHandler.
func NewAssignmentHandler(st *store.Store) *AssignmentHandler {
	return &AssignmentHandler{st: st}
}

type createAssignmentRequest struct {
	ServiceRequestID uuid.UUID `json:"service_request_id"`
	DriverID         uuid.UUID `json:"driver_id"`
	VehicleID        uuid.UUID `json:"vehicle_id"`
}

// Create binds a request to a driver and vehicle. Admin only.
func (h *AssignmentHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	var req createAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.ServiceRequestID == uuid.Nil || req.DriverID == uuid.Nil || req.VehicleID == uuid.Nil {
		return apperr.Invalid("service_request_id, driver_id and vehicle_id are required")
	}

	assignment, err := h.st.CreateAssignment(req.ServiceRequestID, req.DriverID, req.VehicleID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(assignment)
}

// Get returns one assignment. Its customer, its driver, or an admin.
func (h *AssignmentHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid assignment id")
	}

	assignment, err := h.st.GetAssignment(id)
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
	return c.JSON(assignment)
}

type setPriceRequest struct {
	Price *float64 `json:"price"`
}

// SetPrice updates an assignment's final price. The assigned driver or an
// admin.
func (h *AssignmentHandler) SetPrice(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid assignment id")
	}

	var req setPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.Price == nil {
		return apperr.Invalid("price is required")
	}

	assignment, err := h.st.GetAssignment(id)
	if err != nil {
		return err
	}

	driver, err := h.st.GetDriver(assignment.DriverID)
	if err != nil {
		return err
	}
	if err := policy.RequireAssignedDriverOrAdmin(actor, driver.UserID); err != nil {
		return err
	}

	updated, err := h.st.SetFinalPrice(id, *req.Price)
	if err != nil {
		return err
	}
	return c.JSON(updated)
}
