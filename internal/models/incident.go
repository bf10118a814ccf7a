package models

import (
	"time"

	"github.com/google/uuid"
)

// Incident is a report filed by any authenticated user, optionally tied to a
// service request.
type Incident struct {
	BaseModel
	Description      string          `json:"description"`
	OccurredAt       time.Time       `json:"occurred_at"`
	LocationLat      *float64        `json:"location_lat"`
	LocationLon      *float64        `json:"location_lon"`
	IncidentTypeID   *uuid.UUID      `gorm:"type:uuid" json:"incident_type_id"`
	IncidentType     *IncidentType   `json:"incident_type,omitempty"`
	IncidentStatusID *uuid.UUID      `gorm:"type:uuid" json:"incident_status_id"`
	IncidentStatus   *IncidentStatus `json:"incident_status,omitempty"`
	UserID           uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	User             *User           `json:"user,omitempty"`
	ServiceRequestID *uuid.UUID      `gorm:"type:uuid" json:"service_request_id"`
	ServiceRequest   *ServiceRequest `json:"service_request,omitempty"`
}

// Notification is a message delivered to a single user.
type Notification struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	User    *User     `json:"user,omitempty"`
	Title   string    `json:"title"`
	Message string    `json:"message"`
	Read    bool      `json:"read"`
	SentAt  time.Time `json:"sent_at"`
}
