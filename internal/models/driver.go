package models

import (
	"time"

	"github.com/google/uuid"
)

// Driver is the driver profile. Exactly one per user.
type Driver struct {
	BaseModel
	UserID         uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User           *User         `json:"user,omitempty"`
	LicenseNumber  string        `gorm:"uniqueIndex" json:"license_number"`
	LicenseExpiry  *time.Time    `json:"license_expiry"`
	AverageRating  float64       `json:"average_rating"`
	DriverStatusID *uuid.UUID    `gorm:"type:uuid" json:"driver_status_id"`
	DriverStatus   *DriverStatus `json:"driver_status,omitempty"`
	Vehicles       []Vehicle     `json:"vehicles,omitempty"`
}

// DriverService links a driver to a service type they offer.
type DriverService struct {
	BaseModel
	DriverID      uuid.UUID    `gorm:"type:uuid;uniqueIndex:idx_driver_service" json:"driver_id"`
	Driver        *Driver      `json:"driver,omitempty"`
	ServiceTypeID uuid.UUID    `gorm:"type:uuid;uniqueIndex:idx_driver_service" json:"service_type_id"`
	ServiceType   *ServiceType `json:"service_type,omitempty"`
	EnabledAt     *time.Time   `json:"enabled_at"`
}
