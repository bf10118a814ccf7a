package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/models"
)

// CreateIncidentParams carries the fields of a new incident report. The
// reporting user is forced to the authenticated actor by the handler.
type CreateIncidentParams struct {
	UserID           uuid.UUID
	Description      string
	LocationLat      *float64
	LocationLon      *float64
	IncidentTypeID   *uuid.UUID
	IncidentStatusID *uuid.UUID
	ServiceRequestID *uuid.UUID
}

// GetIncident fetches an incident by id.
func (s *Store) GetIncident(id uuid.UUID) (*models.Incident, error) {
	var incident models.Incident
	if err := s.first(&incident, apperr.NotFound("incident %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &incident, nil
}

// CreateIncident files an incident report. A linked service request, when
// given, must exist.
func (s *Store) CreateIncident(p CreateIncidentParams) (*models.Incident, error) {
	if p.ServiceRequestID != nil {
		if _, err := s.GetServiceRequest(*p.ServiceRequestID); err != nil {
			return nil, err
		}
	}

	incident := models.Incident{
		Description:      p.Description,
		OccurredAt:       time.Now(),
		LocationLat:      p.LocationLat,
		LocationLon:      p.LocationLon,
		IncidentTypeID:   p.IncidentTypeID,
		IncidentStatusID: p.IncidentStatusID,
		UserID:           p.UserID,
		ServiceRequestID: p.ServiceRequestID,
	}
	if err := s.db.Create(&incident).Error; err != nil {
		return nil, err
	}
	return &incident, nil
}

// CreateNotification delivers a message to a user.
func (s *Store) CreateNotification(userID uuid.UUID, title, message string) (*models.Notification, error) {
	if _, err := s.GetUser(userID); err != nil {
		return nil, err
	}

	notification := models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		SentAt:  time.Now(),
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// ListNotificationsByUser returns a user's notifications, newest first.
func (s *Store) ListNotificationsByUser(userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.db.Where("user_id = ?", userID).Order("sent_at desc").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
