package models

import "github.com/google/uuid"

// Vehicle belongs to exactly one driver.
type Vehicle struct {
	BaseModel
	DriverID          uuid.UUID      `gorm:"type:uuid;index" json:"driver_id"`
	Driver            *Driver        `json:"driver,omitempty"`
	Brand             string         `json:"brand"`
	Model             string         `json:"model"`
	Plate             string         `gorm:"uniqueIndex" json:"plate"`
	Color             string         `json:"color"`
	Year              int            `json:"year"`
	PassengerCapacity int            `json:"passenger_capacity"`
	CargoCapacity     float64        `json:"cargo_capacity"`
	VolumeCapacity    float64        `json:"volume_capacity"`
	VehicleTypeID     *uuid.UUID     `gorm:"type:uuid" json:"vehicle_type_id"`
	VehicleType       *VehicleType   `json:"vehicle_type,omitempty"`
	VehicleStatusID   *uuid.UUID     `gorm:"type:uuid" json:"vehicle_status_id"`
	VehicleStatus     *VehicleStatus `json:"vehicle_status,omitempty"`
}
