package models

import (
	"time"

	"github.com/google/uuid"
)

// Catalog tables: static reference rows, read-only via the API.

type CustomerType struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type DriverStatus struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type VehicleType struct {
	BaseModel
	Name                 string  `gorm:"uniqueIndex" json:"name"`
	MaxPassengerCapacity int     `json:"max_passenger_capacity"`
	MaxCargoCapacity     float64 `json:"max_cargo_capacity"`
	MaxVolumeCapacity    float64 `json:"max_volume_capacity"`
}

type VehicleStatus struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type ServiceType struct {
	BaseModel
	Name         string `gorm:"uniqueIndex" json:"name"`
	Description  string `json:"description"`
	IsCollective bool   `json:"is_collective"`
}

type RequestStatus struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type CargoType struct {
	BaseModel
	Name        string `gorm:"uniqueIndex" json:"name"`
	Description string `json:"description"`
}

type IncidentType struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type IncidentStatus struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type ReservationStatus struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type Currency struct {
	BaseModel
	Code string `gorm:"uniqueIndex" json:"code"`
	Name string `gorm:"uniqueIndex" json:"name"`
}

type PaymentMethodType struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type PaymentChannel struct {
	BaseModel
	Name        string `gorm:"uniqueIndex" json:"name"`
	Description string `json:"description"`
}

type PaymentStatus struct {
	BaseModel
	Name string `gorm:"uniqueIndex" json:"name"`
}

type FareType struct {
	BaseModel
	Name        string `gorm:"uniqueIndex" json:"name"`
	Description string `json:"description"`
}

// Fare is a priced tariff row referencing a currency and a fare type.
type Fare struct {
	BaseModel
	Value         float64    `json:"value"`
	EffectiveDate time.Time  `json:"effective_date"`
	IsFixed       bool       `json:"is_fixed"`
	CurrencyID    *uuid.UUID `gorm:"type:uuid" json:"currency_id"`
	Currency      *Currency  `json:"currency,omitempty"`
	FareTypeID    *uuid.UUID `gorm:"type:uuid" json:"fare_type_id"`
	FareType      *FareType  `json:"fare_type,omitempty"`
}

// Route is a named origin/destination pair.
type Route struct {
	BaseModel
	Name           string  `json:"name"`
	OriginLat      float64 `json:"origin_lat"`
	OriginLon      float64 `json:"origin_lon"`
	DestinationLat float64 `json:"destination_lat"`
	DestinationLon float64 `json:"destination_lon"`
}

// Request lifecycle status names seeded into the request_statuses catalog.
// State transitions resolve these by name, never by hardcoded id.
const (
	RequestStatusPending   = "pendiente"
	RequestStatusAssigned  = "asignada"
	RequestStatusInService = "en_servicio"
	RequestStatusCompleted = "completada"
)
