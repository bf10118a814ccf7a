package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/kerapido/internal/config"
	"github.com/example/kerapido/internal/handlers"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/store"
)

// Register wires up all HTTP routes. The rate limiter is installed by the
// caller ahead of this, so every route below is already behind admission
// control.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	st := store.New(db)

	authHandler := handlers.NewAuthHandler(st, cfg)
	userHandler := handlers.NewUserHandler(st)
	driverHandler := handlers.NewDriverHandler(st)
	vehicleHandler := handlers.NewVehicleHandler(st)
	requestHandler := handlers.NewRequestHandler(st)
	assignmentHandler := handlers.NewAssignmentHandler(st)
	paymentHandler := handlers.NewPaymentHandler(st)
	incidentHandler := handlers.NewIncidentHandler(st)
	notificationHandler := handlers.NewNotificationHandler(st)
	catalogHandler := handlers.NewCatalogHandler(st)

	requireAuth := middleware.Auth(cfg, st)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "message": "KE RAPIDO API activa"})
	})

	auth := app.Group("/auth")
	auth.Post("/token", authHandler.Token)
	auth.Post("/signup", authHandler.Signup)

	// Legacy registration alias kept for older mobile clients.
	app.Post("/registro/cliente", authHandler.Signup)

	users := app.Group("/users")
	users.Post("/", userHandler.Create)
	users.Get("/", requireAuth, userHandler.List)
	users.Get("/me", requireAuth, userHandler.Me)
	users.Get("/:id", requireAuth, userHandler.Get)
	users.Put("/:id", requireAuth, userHandler.Update)
	users.Delete("/:id", requireAuth, userHandler.Delete)

	drivers := app.Group("/conductores", requireAuth)
	drivers.Post("/", driverHandler.Create)
	drivers.Get("/", driverHandler.List)
	drivers.Post("/servicios", driverHandler.AddService)
	drivers.Get("/servicios/:id", driverHandler.ListServices)
	drivers.Get("/:id", driverHandler.Get)

	vehicles := app.Group("/vehiculos", requireAuth)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/conductor/:id", vehicleHandler.ListByDriver)
	vehicles.Get("/:id", vehicleHandler.Get)

	requests := app.Group("/solicitudes", requireAuth)
	requests.Post("/", requestHandler.Create)
	requests.Get("/", requestHandler.List)
	requests.Get("/:id", requestHandler.Get)

	assignments := app.Group("/asignaciones", requireAuth)
	assignments.Post("/", assignmentHandler.Create)
	assignments.Get("/:id", assignmentHandler.Get)
	assignments.Put("/:id/precio", assignmentHandler.SetPrice)

	payments := app.Group("/transacciones_pago", requireAuth)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/:id", paymentHandler.Get)

	incidents := app.Group("/incidente_emergencia", requireAuth)
	incidents.Post("/", incidentHandler.Create)
	incidents.Get("/:id", incidentHandler.Get)

	notifications := app.Group("/notificaciones", requireAuth)
	notifications.Get("/", notificationHandler.ListMine)
	notifications.Post("/", notificationHandler.Create)

	catalogs := app.Group("/catalogos")
	catalogs.Get("/tipos_cliente", catalogHandler.CustomerTypes)
	catalogs.Get("/estados_conductor", catalogHandler.DriverStatuses)
	catalogs.Get("/tipos_vehiculo", catalogHandler.VehicleTypes)
	catalogs.Get("/estados_vehiculo", catalogHandler.VehicleStatuses)
	catalogs.Get("/tipos_servicio", catalogHandler.ServiceTypes)
	catalogs.Get("/estados_solicitud", catalogHandler.RequestStatuses)
	catalogs.Get("/tipos_carga", catalogHandler.CargoTypes)
	catalogs.Get("/tipos_incidente", catalogHandler.IncidentTypes)
	catalogs.Get("/estados_incidente", catalogHandler.IncidentStatuses)
	catalogs.Get("/estados_reserva", catalogHandler.ReservationStatuses)
	catalogs.Get("/monedas", catalogHandler.Currencies)
	catalogs.Get("/tipos_metodo_pago", catalogHandler.PaymentMethodTypes)
	catalogs.Get("/canales_pago", catalogHandler.PaymentChannels)
	catalogs.Get("/estados_pago", catalogHandler.PaymentStatuses)
	catalogs.Get("/tipos_tarifa", catalogHandler.FareTypes)
	catalogs.Get("/tarifas", catalogHandler.Fares)
	catalogs.Get("/rutas", catalogHandler.Routes)
}
