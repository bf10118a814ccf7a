package store

import "github.com/example/kerapido/internal/models"

// Catalog reads. All read-only, no pagination: these are small static tables.

func (s *Store) ListCustomerTypes() ([]models.CustomerType, error) {
	var rows []models.CustomerType
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListDriverStatuses() ([]models.DriverStatus, error) {
	var rows []models.DriverStatus
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListVehicleTypes() ([]models.VehicleType, error) {
	var rows []models.VehicleType
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListVehicleStatuses() ([]models.VehicleStatus, error) {
	var rows []models.VehicleStatus
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListServiceTypes() ([]models.ServiceType, error) {
	var rows []models.ServiceType
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListRequestStatuses() ([]models.RequestStatus, error) {
	var rows []models.RequestStatus
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListCargoTypes() ([]models.CargoType, error) {
	var rows []models.CargoType
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListIncidentTypes() ([]models.IncidentType, error) {
	var rows []models.IncidentType
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListIncidentStatuses() ([]models.IncidentStatus, error) {
	var rows []models.IncidentStatus
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListReservationStatuses() ([]models.ReservationStatus, error) {
	var rows []models.ReservationStatus
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListCurrencies() ([]models.Currency, error) {
	var rows []models.Currency
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListPaymentMethodTypes() ([]models.PaymentMethodType, error) {
	var rows []models.PaymentMethodType
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListPaymentChannels() ([]models.PaymentChannel, error) {
	var rows []models.PaymentChannel
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListPaymentStatuses() ([]models.PaymentStatus, error) {
	var rows []models.PaymentStatus
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListFareTypes() ([]models.FareType, error) {
	var rows []models.FareType
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListFares() ([]models.Fare, error) {
	var rows []models.Fare
	return rows, s.db.Find(&rows).Error
}

func (s *Store) ListRoutes() ([]models.Route, error) {
	var rows []models.Route
	return rows, s.db.Find(&rows).Error
}
