package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
	"github.com/example/kerapido/internal/utils"
)

// DriverHandler manages driver profiles and their service associations.
type DriverHandler struct {
	st *store.Store
}

// NewDriverHandler constructs a DriverHandler.
func NewDriverHandler(st *store.Store) *DriverHandler {
	return &DriverHandler{st: st}
}

type createDriverRequest struct {
	UserID         uuid.UUID  `json:"user_id"`
	LicenseNumber  string     `json:"license_number"`
	LicenseExpiry  *time.Time `json:"license_expiry"`
	DriverStatusID *uuid.UUID `json:"driver_status_id"`
}

// Create makes an existing user a driver. Admin only.
func (h *DriverHandler) Create(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	var req createDriverRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.UserID == uuid.Nil || req.LicenseNumber == "" {
		return apperr.Invalid("user_id and license_number are required")
	}

	driver, err := h.st.CreateDriver(store.CreateDriverParams{
		UserID:         req.UserID,
		LicenseNumber:  req.LicenseNumber,
		LicenseExpiry:  req.LicenseExpiry,
		DriverStatusID: req.DriverStatusID,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(driver)
}

// List returns all drivers. Admin only.
func (h *DriverHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	drivers, err := h.st.ListDrivers(pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(drivers)
}

// Get returns one driver profile. The driver themselves or an admin.
func (h *DriverHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid driver id")
	}

	driver, err := h.st.GetDriver(id)
	if err != nil {
		return err
	}

	if err := policy.RequireSelfOrAdmin(actor, driver.UserID); err != nil {
		return err
	}
	return c.JSON(driver)
}

type addServiceRequest struct {
	DriverID      uuid.UUID  `json:"driver_id"`
	ServiceTypeID uuid.UUID  `json:"service_type_id"`
	EnabledAt     *time.Time `json:"enabled_at"`
}

// AddService associates a service type with a driver. The driver themselves
// or an admin.
func (h *DriverHandler) AddService(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	var req addServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.DriverID == uuid.Nil || req.ServiceTypeID == uuid.Nil {
		return apperr.Invalid("driver_id and service_type_id are required")
	}

	driver, err := h.st.GetDriver(req.DriverID)
	if err != nil {
		return err
	}
	if err := policy.RequireSelfOrAdmin(actor, driver.UserID); err != nil {
		return err
	}

	assoc, err := h.st.AddDriverService(req.DriverID, req.ServiceTypeID, req.EnabledAt)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(assoc)
}

// ListServices returns the services offered by a driver. Any authenticated
// user may look them up.
func (h *DriverHandler) ListServices(c *fiber.Ctx) error {
	if _, ok := middleware.CurrentUser(c); !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid driver id")
	}

	services, err := h.st.ListDriverServices(id)
	if err != nil {
		return err
	}
	return c.JSON(services)
}
