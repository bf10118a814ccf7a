package models

import (
	"time"

	"github.com/google/uuid"
)

// ServiceRequest is a customer-initiated ride or transport request
// ("solicitud"). Origin coordinates are mandatory, destination optional.
type ServiceRequest struct {
	BaseModel
	CustomerID         uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer           *Customer      `json:"customer,omitempty"`
	OriginLat          float64        `json:"origin_lat"`
	OriginLon          float64        `json:"origin_lon"`
	DestinationLat     *float64       `json:"destination_lat"`
	DestinationLon     *float64       `json:"destination_lon"`
	OriginAddress      string         `json:"origin_address"`
	DestinationAddress string         `json:"destination_address"`
	Comments           string         `json:"comments"`
	SuggestedPrice     *float64       `json:"suggested_price"`
	ServiceTypeID      *uuid.UUID     `gorm:"type:uuid" json:"service_type_id"`
	ServiceType        *ServiceType   `json:"service_type,omitempty"`
	RequestStatusID    *uuid.UUID     `gorm:"type:uuid" json:"request_status_id"`
	RequestStatus      *RequestStatus `json:"request_status,omitempty"`
	RequestedAt        time.Time      `json:"requested_at"`
}

// Assignment binds a service request to a driver and a vehicle
// ("asignacion"). A request may have at most one assignment; the final
// price is the only field mutable after creation.
type Assignment struct {
	BaseModel
	ServiceRequestID uuid.UUID       `gorm:"type:uuid;uniqueIndex" json:"service_request_id"`
	ServiceRequest   *ServiceRequest `json:"service_request,omitempty"`
	DriverID         uuid.UUID       `gorm:"type:uuid;index" json:"driver_id"`
	Driver           *Driver         `json:"driver,omitempty"`
	VehicleID        uuid.UUID       `gorm:"type:uuid" json:"vehicle_id"`
	Vehicle          *Vehicle        `json:"vehicle,omitempty"`
	AssignedAt       time.Time       `json:"assigned_at"`
	ServiceStartedAt *time.Time      `json:"service_started_at"`
	ServiceEndedAt   *time.Time      `json:"service_ended_at"`
	FinalPrice       *float64        `json:"final_price"`
}

// PaymentTransaction records the payment for an assignment. At most one per
// assignment, enforced by the unique index.
type PaymentTransaction struct {
	BaseModel
	AssignmentID        uuid.UUID          `gorm:"type:uuid;uniqueIndex" json:"assignment_id"`
	Assignment          *Assignment        `json:"assignment,omitempty"`
	Amount              float64            `json:"amount"`
	PaidAt              time.Time          `json:"paid_at"`
	CurrencyID          *uuid.UUID         `gorm:"type:uuid" json:"currency_id"`
	Currency            *Currency          `json:"currency,omitempty"`
	PaymentMethodTypeID *uuid.UUID         `gorm:"type:uuid" json:"payment_method_type_id"`
	PaymentMethodType   *PaymentMethodType `json:"payment_method_type,omitempty"`
	PaymentChannelID    *uuid.UUID         `gorm:"type:uuid" json:"payment_channel_id"`
	PaymentChannel      *PaymentChannel    `json:"payment_channel,omitempty"`
	PaymentStatusID     *uuid.UUID         `gorm:"type:uuid" json:"payment_status_id"`
	PaymentStatus       *PaymentStatus     `json:"payment_status,omitempty"`
}
