package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
)

// VehicleHandler manages vehicle registrations.
type VehicleHandler struct {
	st *store.Store
}

// NewVehicleHandler constructs a VehicleHandler.
func NewVehicleHandler(st *store.Store) *VehicleHandler {
	return &VehicleHandler{st: st}
}

type createVehicleRequest struct {
	DriverID          uuid.UUID  `json:"driver_id"`
	Brand             string     `json:"brand"`
	Model             string     `json:"model"`
	Plate             string     `json:"plate"`
	Color             string     `json:"color"`
	Year              int        `json:"year"`
	PassengerCapacity int        `json:"passenger_capacity"`
	CargoCapacity     float64    `json:"cargo_capacity"`
	VolumeCapacity    float64    `json:"volume_capacity"`
	VehicleTypeID     *uuid.UUID `json:"vehicle_type_id"`
	VehicleStatusID   *uuid.UUID `json:"vehicle_status_id"`
}

// Create registers a vehicle for a driver. The owning driver or an admin.
func (h *VehicleHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	var req createVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.DriverID == uuid.Nil || req.Brand == "" || req.Model == "" || req.Plate == "" {
		return apperr.Invalid("driver_id, brand, model and plate are required")
	}

	driver, err := h.st.GetDriver(req.DriverID)
	if err != nil {
		return err
	}
	if err := policy.RequireSelfOrAdmin(actor, driver.UserID); err != nil {
		return err
	}

	vehicle, err := h.st.CreateVehicle(store.CreateVehicleParams{
		DriverID:          req.DriverID,
		Brand:             req.Brand,
		Model:             req.Model,
		Plate:             req.Plate,
		Color:             req.Color,
		Year:              req.Year,
		PassengerCapacity: req.PassengerCapacity,
		CargoCapacity:     req.CargoCapacity,
		VolumeCapacity:    req.VolumeCapacity,
		VehicleTypeID:     req.VehicleTypeID,
		VehicleStatusID:   req.VehicleStatusID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(vehicle)
}

// Get returns one vehicle. The owning driver or an admin.
func (h *VehicleHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid vehicle id")
	}

	vehicle, err := h.st.GetVehicle(id)
	if err != nil {
		return err
	}

	driver, err := h.st.GetDriver(vehicle.DriverID)
	if err != nil {
		return err
	}
	if err := policy.RequireSelfOrAdmin(actor, driver.UserID); err != nil {
		return err
	}
	return c.JSON(vehicle)
}

// ListByDriver returns a driver's vehicles. The owning driver or an admin.
func (h *VehicleHandler) ListByDriver(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	driverID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid driver id")
	}

	driver, err := h.st.GetDriver(driverID)
	if err != nil {
		return err
	}
	if err := policy.RequireSelfOrAdmin(actor, driver.UserID); err != nil {
		return err
	}

	vehicles, err := h.st.ListVehiclesByDriver(driverID)
	if err != nil {
		return err
	}
	return c.JSON(vehicles)
}
