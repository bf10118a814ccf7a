package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
)

// IncidentHandler manages incident and emergency reports.
type IncidentHandler struct {
	st *store.Store
}

// NewIncidentHandler constructs an IncidentHandler.
func NewIncidentHandler(st *store.Store) *IncidentHandler {
	return &IncidentHandler{st: st}
}

type createIncidentRequest struct {
	Description      string     `json:"description"`
	LocationLat      *float64   `json:"location_lat"`
	LocationLon      *float64   `json:"location_lon"`
	IncidentTypeID   *uuid.UUID `json:"incident_type_id"`
	IncidentStatusID *uuid.UUID `json:"incident_status_id"`
	ServiceRequestID *uuid.UUID `json:"service_request_id"`
}

// Create files an incident report. The reporter is always the authenticated
// actor, regardless of the request body.
func (h *IncidentHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	var req createIncidentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.Description == "" {
		return apperr.Invalid("description is required")
	}

	incident, err := h.st.CreateIncident(store.CreateIncidentParams{
		UserID:           actor.ID,
		Description:      req.Description,
		LocationLat:      req.LocationLat,
		LocationLon:      req.LocationLon,
		IncidentTypeID:   req.IncidentTypeID,
		IncidentStatusID: req.IncidentStatusID,
		ServiceRequestID: req.ServiceRequestID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(incident)
}

// Get returns one incident. The reporter or an admin.
func (h *IncidentHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid incident id")
	}

	incident, err := h.st.GetIncident(id)
	if err != nil {
		return err
	}

	if err := policy.RequireSelfOrAdmin(actor, incident.UserID); err != nil {
		return err
	}
	return c.JSON(incident)
}
