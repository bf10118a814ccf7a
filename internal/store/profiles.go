package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/models"
)

// GetCustomer fetches a customer profile by id.
func (s *Store) GetCustomer(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.first(&customer, apperr.NotFound("customer %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &customer, nil
}

// FindCustomerByUser fetches the customer profile owned by a user. This is
// the explicit replacement for an ORM back-reference.
func (s *Store) FindCustomerByUser(userID uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.first(&customer, apperr.NotFound("customer profile not found"), "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &customer, nil
}

// GetDriver fetches a driver profile by id.
func (s *Store) GetDriver(id uuid.UUID) (*models.Driver, error) {
	var driver models.Driver
	if err := s.first(&driver, apperr.NotFound("driver %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &driver, nil
}

// FindDriverByUser fetches the driver profile owned by a user.
func (s *Store) FindDriverByUser(userID uuid.UUID) (*models.Driver, error) {
	var driver models.Driver
	if err := s.first(&driver, apperr.NotFound("driver profile not found"), "user_id = ?", userID); err != nil {
		return nil, err
	}
	return &driver, nil
}

// ListDrivers returns a page of drivers.
func (s *Store) ListDrivers(limit, offset int) ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.db.Limit(limit).Offset(offset).Find(&drivers).Error; err != nil {
		return nil, err
	}
	return drivers, nil
}

// CreateDriverParams carries the fields of a new driver profile.
type CreateDriverParams struct {
	UserID         uuid.UUID
	LicenseNumber  string
	LicenseExpiry  *time.Time
	DriverStatusID *uuid.UUID
}

// CreateDriver creates a driver profile for an existing user and flips the
// user's driver role flag, all in one transaction. A second profile for the
// same user is a conflict.
func (s *Store) CreateDriver(p CreateDriverParams) (*models.Driver, error) {
	var driver *models.Driver
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", p.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user %s not found", p.UserID)
			}
			return err
		}

		var existing models.Driver
		err := tx.Where("user_id = ?", p.UserID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("user is already a driver")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if !user.IsDriver {
			if err := tx.Model(&user).Update("is_driver", true).Error; err != nil {
				return err
			}
		}

		created := models.Driver{
			UserID:         p.UserID,
			LicenseNumber:  p.LicenseNumber,
			LicenseExpiry:  p.LicenseExpiry,
			DriverStatusID: p.DriverStatusID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return conflictOn(err, apperr.Conflict("license number already registered"))
		}

		driver = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return driver, nil
}

// AddDriverService associates a service type with a driver. The pair is
// unique; repeating it is a conflict.
func (s *Store) AddDriverService(driverID, serviceTypeID uuid.UUID, enabledAt *time.Time) (*models.DriverService, error) {
	if _, err := s.GetDriver(driverID); err != nil {
		return nil, err
	}

	var existing models.DriverService
	err := s.db.Where("driver_id = ? AND service_type_id = ?", driverID, serviceTypeID).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("service already associated with this driver")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	assoc := models.DriverService{
		DriverID:      driverID,
		ServiceTypeID: serviceTypeID,
		EnabledAt:     enabledAt,
	}
	if err := s.db.Create(&assoc).Error; err != nil {
		return nil, conflictOn(err, apperr.Conflict("service already associated with this driver"))
	}
	return &assoc, nil
}

// ListDriverServices returns the service associations of a driver.
func (s *Store) ListDriverServices(driverID uuid.UUID) ([]models.DriverService, error) {
	if _, err := s.GetDriver(driverID); err != nil {
		return nil, err
	}

	var services []models.DriverService
	if err := s.db.Where("driver_id = ?", driverID).Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}
