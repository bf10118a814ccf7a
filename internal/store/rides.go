package store

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/models"
)

// CreateServiceRequestParams carries the fields of a new service request.
// The owning customer is resolved from the authenticated actor by the
// caller, never taken from the client.
type CreateServiceRequestParams struct {
	CustomerID         uuid.UUID
	OriginLat          float64
	OriginLon          float64
	DestinationLat     *float64
	DestinationLon     *float64
	OriginAddress      string
	DestinationAddress string
	Comments           string
	SuggestedPrice     *float64
	ServiceTypeID      *uuid.UUID
}

// GetServiceRequest fetches a service request by id.
func (s *Store) GetServiceRequest(id uuid.UUID) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := s.first(&request, apperr.NotFound("service request %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListServiceRequests returns a page of service requests.
func (s *Store) ListServiceRequests(limit, offset int) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	if err := s.db.Limit(limit).Offset(offset).Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// requestStatusByName resolves a lifecycle state to its catalog row.
func (s *Store) requestStatusByName(tx *gorm.DB, name string) (*models.RequestStatus, error) {
	var status models.RequestStatus
	if err := tx.Where("name = ?", name).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("request status %q not seeded", name)
		}
		return nil, err
	}
	return &status, nil
}

// CreateServiceRequest creates a request in the pending state.
func (s *Store) CreateServiceRequest(p CreateServiceRequestParams) (*models.ServiceRequest, error) {
	if _, err := s.GetCustomer(p.CustomerID); err != nil {
		return nil, err
	}

	pending, err := s.requestStatusByName(s.db, models.RequestStatusPending)
	if err != nil {
		return nil, err
	}

	request := models.ServiceRequest{
		CustomerID:         p.CustomerID,
		OriginLat:          p.OriginLat,
		OriginLon:          p.OriginLon,
		DestinationLat:     p.DestinationLat,
		DestinationLon:     p.DestinationLon,
		OriginAddress:      p.OriginAddress,
		DestinationAddress: p.DestinationAddress,
		Comments:           p.Comments,
		SuggestedPrice:     p.SuggestedPrice,
		ServiceTypeID:      p.ServiceTypeID,
		RequestStatusID:    &pending.ID,
		RequestedAt:        time.Now(),
	}
	if err := s.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// GetAssignment fetches an assignment by id.
func (s *Store) GetAssignment(id uuid.UUID) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := s.first(&assignment, apperr.NotFound("assignment %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CreateAssignment binds a pending request to a driver and vehicle. The
// request, driver and vehicle must all exist; a request that already has an
// assignment is a conflict. This is the sole operation that advances the
// request's state.
func (s *Store) CreateAssignment(requestID, driverID, vehicleID uuid.UUID) (*models.Assignment, error) {
	var assignment *models.Assignment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var request models.ServiceRequest
		if err := tx.First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("service request %s not found", requestID)
			}
			return err
		}
		if err := tx.First(&models.Driver{}, "id = ?", driverID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("driver %s not found", driverID)
			}
			return err
		}
		if err := tx.First(&models.Vehicle{}, "id = ?", vehicleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("vehicle %s not found", vehicleID)
			}
			return err
		}

		var existing models.Assignment
		err := tx.Where("service_request_id = ?", requestID).First(&existing).Error
		if err == nil {
			return apperr.Conflict("service request already has an assignment")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created := models.Assignment{
			ServiceRequestID: requestID,
			DriverID:         driverID,
			VehicleID:        vehicleID,
			AssignedAt:       time.Now(),
		}
		if err := tx.Create(&created).Error; err != nil {
			return conflictOn(err, apperr.Conflict("service request already has an assignment"))
		}

		assigned, err := s.requestStatusByName(tx, models.RequestStatusAssigned)
		if err != nil {
			return err
		}
		if err := tx.Model(&request).Update("request_status_id", assigned.ID).Error; err != nil {
			return err
		}

		assignment = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// SetFinalPrice updates the final price of an assignment. Always legal on an
// existing assignment and idempotent; the price is deliberately not gated by
// service status.
func (s *Store) SetFinalPrice(id uuid.UUID, price float64) (*models.Assignment, error) {
	assignment, err := s.GetAssignment(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(assignment).Update("final_price", price).Error; err != nil {
		return nil, err
	}
	return s.GetAssignment(id)
}

// AssignmentParticipants resolves the user ids behind an assignment's
// customer and driver, for the participant-or-admin check.
func (s *Store) AssignmentParticipants(a *models.Assignment) (customerUserID, driverUserID uuid.UUID, err error) {
	request, err := s.GetServiceRequest(a.ServiceRequestID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	customer, err := s.GetCustomer(request.CustomerID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	driver, err := s.GetDriver(a.DriverID)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return customer.UserID, driver.UserID, nil
}
