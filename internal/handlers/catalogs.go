package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/kerapido/internal/store"
)

// CatalogHandler serves the read-only reference tables.
type CatalogHandler struct {
	st *store.Store
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(st *store.Store) *CatalogHandler {
	return &CatalogHandler{st: st}
}

func list[T any](c *fiber.Ctx, fetch func() ([]T, error)) error {
	rows, err := fetch()
	if err != nil {
		return err
	}
	return c.JSON(rows)
}

func (h *CatalogHandler) CustomerTypes(c *fiber.Ctx) error {
	return list(c, h.st.ListCustomerTypes)
}

func (h *CatalogHandler) DriverStatuses(c *fiber.Ctx) error {
	return list(c, h.st.ListDriverStatuses)
}

func (h *CatalogHandler) VehicleTypes(c *fiber.Ctx) error {
	return list(c, h.st.ListVehicleTypes)
}

func (h *CatalogHandler) VehicleStatuses(c *fiber.Ctx) error {
	return list(c, h.st.ListVehicleStatuses)
}

func (h *CatalogHandler) ServiceTypes(c *fiber.Ctx) error {
	return list(c, h.st.ListServiceTypes)
}

func (h *CatalogHandler) RequestStatuses(c *fiber.Ctx) error {
	return list(c, h.st.ListRequestStatuses)
}

func (h *CatalogHandler) CargoTypes(c *fiber.Ctx) error {
	return list(c, h.st.ListCargoTypes)
}

func (h *CatalogHandler) IncidentTypes(c *fiber.Ctx) error {
	return list(c, h.st.ListIncidentTypes)
}

func (h *CatalogHandler) IncidentStatuses(c *fiber.Ctx) error {
	return list(c, h.st.ListIncidentStatuses)
}

func (h *CatalogHandler) ReservationStatuses(c *fiber.Ctx) error {
	return list(c, h.st.ListReservationStatuses)
}

func (h *CatalogHandler) Currencies(c *fiber.Ctx) error {
	return list(c, h.st.ListCurrencies)
}

func (h *CatalogHandler) PaymentMethodTypes(c *fiber.Ctx) error {
	return list(c, h.st.ListPaymentMethodTypes)
}

func (h *CatalogHandler) PaymentChannels(c *fiber.Ctx) error {
	return list(c, h.st.ListPaymentChannels)
}

func (h *CatalogHandler) PaymentStatuses(c *fiber.Ctx) error {
	return list(c, h.st.ListPaymentStatuses)
}

func (h *CatalogHandler) FareTypes(c *fiber.Ctx) error {
	return list(c, h.st.ListFareTypes)
}

func (h *CatalogHandler) Fares(c *fiber.Ctx) error {
	return list(c, h.st.ListFares)
}

func (h *CatalogHandler) Routes(c *fiber.Ctx) error {
	return list(c, h.st.ListRoutes)
}
