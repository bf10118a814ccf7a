package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
	"github.com/example/kerapido/internal/utils"
)

// RequestHandler manages service requests ("solicitudes").
type RequestHandler struct {
	st *store.Store
}

// NewRequestHandler constructs a RequestHandler.
func NewRequestHandler(st *store.Store) *RequestHandler {
	return &RequestHandler{st: st}
}

type createRequestRequest struct {
	OriginLat          *float64   `json:"origin_lat"`
	OriginLon          *float64   `json:"origin_lon"`
	DestinationLat     *float64   `json:"destination_lat"`
	DestinationLon     *float64   `json:"destination_lon"`
	OriginAddress      string     `json:"origin_address"`
	DestinationAddress string     `json:"destination_address"`
	Comments           string     `json:"comments"`
	SuggestedPrice     *float64   `json:"suggested_price"`
	ServiceTypeID      *uuid.UUID `json:"service_type_id"`
}

// Create files a new service request. Customer role required; the request is
// bound to the customer profile behind the actor, never to a client-supplied
// id.
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	if err := policy.RequireCustomer(actor); err != nil {
		return err
	}

	customer, err := h.st.FindCustomerByUser(actor.ID)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.OriginLat == nil || req.OriginLon == nil {
		return apperr.Invalid("origin_lat and origin_lon are required")
	}

	request, err := h.st.CreateServiceRequest(store.CreateServiceRequestParams{
		CustomerID:         customer.ID,
		OriginLat:          *req.OriginLat,
		OriginLon:          *req.OriginLon,
		DestinationLat:     req.DestinationLat,
		DestinationLon:     req.DestinationLon,
		OriginAddress:      req.OriginAddress,
		DestinationAddress: req.DestinationAddress,
		Comments:           req.Comments,
		SuggestedPrice:     req.SuggestedPrice,
		ServiceTypeID:      req.ServiceTypeID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(request)
}

// Get returns one service request. The owning customer or an admin.
func (h *RequestHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid request id")
	}

	request, err := h.st.GetServiceRequest(id)
	if err != nil {
		return err
	}

	if !actor.IsAdmin {
		customer, err := h.st.FindCustomerByUser(actor.ID)
		if err != nil || request.CustomerID != customer.ID {
			return apperr.Forbidden("not authorized to view this service request")
		}
	}
	return c.JSON(request)
}

// List returns all service requests. Admin only.
func (h *RequestHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	requests, err := h.st.ListServiceRequests(pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(requests)
}
