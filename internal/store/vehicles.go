package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/models"
)

// CreateVehicleParams carries the fields of a new vehicle registration.
type CreateVehicleParams struct {
	DriverID          uuid.UUID
	Brand             string
	Model             string
	Plate             string
	Color             string
	Year              int
	PassengerCapacity int
	CargoCapacity     float64
	VolumeCapacity    float64
	VehicleTypeID     *uuid.UUID
	VehicleStatusID   *uuid.UUID
}

// GetVehicle fetches a vehicle by id.
func (s *Store) GetVehicle(id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.first(&vehicle, apperr.NotFound("vehicle %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListVehiclesByDriver returns all vehicles registered to a driver.
func (s *Store) ListVehiclesByDriver(driverID uuid.UUID) ([]models.Vehicle, error) {
	if _, err := s.GetDriver(driverID); err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := s.db.Where("driver_id = ?", driverID).Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// CreateVehicle registers a vehicle for an existing driver. A reused plate is
// a conflict.
func (s *Store) CreateVehicle(p CreateVehicleParams) (*models.Vehicle, error) {
	if _, err := s.GetDriver(p.DriverID); err != nil {
		return nil, err
	}

	var existing models.Vehicle
	err := s.db.Where("plate = ?", p.Plate).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("a vehicle with this plate already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	vehicle := models.Vehicle{
		DriverID:          p.DriverID,
		Brand:             p.Brand,
		Model:             p.Model,
		Plate:             p.Plate,
		Color:             p.Color,
		Year:              p.Year,
		PassengerCapacity: p.PassengerCapacity,
		CargoCapacity:     p.CargoCapacity,
		VolumeCapacity:    p.VolumeCapacity,
		VehicleTypeID:     p.VehicleTypeID,
		VehicleStatusID:   p.VehicleStatusID,
	}
	if err := s.db.Create(&vehicle).Error; err != nil {
		return nil, conflictOn(err, apperr.Conflict("a vehicle with this plate already exists"))
	}
	return &vehicle, nil
}

// DeleteVehicle removes a vehicle by id.
func (s *Store) DeleteVehicle(id uuid.UUID) error {
	vehicle, err := s.GetVehicle(id)
	if err != nil {
		return err
	}
	return s.db.Delete(vehicle).Error
}
