package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/models"
)

// CreatePaymentParams carries the fields of a new payment transaction.
type CreatePaymentParams struct {
	AssignmentID        uuid.UUID
	Amount              float64
	CurrencyID          *uuid.UUID
	PaymentMethodTypeID *uuid.UUID
	PaymentChannelID    *uuid.UUID
	PaymentStatusID     *uuid.UUID
}

// GetPayment fetches a payment transaction by id.
func (s *Store) GetPayment(id uuid.UUID) (*models.PaymentTransaction, error) {
	var payment models.PaymentTransaction
	if err := s.first(&payment, apperr.NotFound("payment transaction %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreatePayment records the payment for an assignment. One payment per
// assignment is enforced by the unique index alone; a duplicate insert
// surfaces as Conflict.
func (s *Store) CreatePayment(p CreatePaymentParams) (*models.PaymentTransaction, error) {
	if _, err := s.GetAssignment(p.AssignmentID); err != nil {
		return nil, err
	}

	payment := models.PaymentTransaction{
		AssignmentID:        p.AssignmentID,
		Amount:              p.Amount,
		PaidAt:              time.Now(),
		CurrencyID:          p.CurrencyID,
		PaymentMethodTypeID: p.PaymentMethodTypeID,
		PaymentChannelID:    p.PaymentChannelID,
		PaymentStatusID:     p.PaymentStatusID,
	}
	if err := s.db.Create(&payment).Error; err != nil {
		return nil, conflictOn(err, apperr.Conflict("assignment already has a payment"))
	}
	return &payment, nil
}
