// Package policy holds the pure authorization decision functions. Each one
// takes the authenticated actor and the owning user id(s) of the target
// resource and returns nil or a Forbidden error. Handlers must resolve the
// target entity first so that NotFound is never conflated with Forbidden.
package policy

import (
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/models"
)

// RequireAdmin allows admins only.
func RequireAdmin(actor *models.User) error {
	if !actor.IsAdmin {
		return apperr.Forbidden("admin access required")
	}
	return nil
}

// RequireSelfOrAdmin allows the owner of the resource or an admin.
func RequireSelfOrAdmin(actor *models.User, ownerUserID uuid.UUID) error {
	if !actor.IsAdmin && actor.ID != ownerUserID {
		return apperr.Forbidden("not authorized to access this resource")
	}
	return nil
}

// RequireCustomer allows users carrying the customer role flag.
func RequireCustomer(actor *models.User) error {
	if !actor.IsCustomer {
		return apperr.Forbidden("only customers can create service requests")
	}
	return nil
}

// RequireParticipantOrAdmin allows the assignment's customer, its driver, or
// an admin. The three-way union check over the linked user ids.
func RequireParticipantOrAdmin(actor *models.User, customerUserID, driverUserID uuid.UUID) error {
	if actor.IsAdmin || actor.ID == customerUserID || actor.ID == driverUserID {
		return nil
	}
	return apperr.Forbidden("not authorized to access this assignment")
}

// RequireAssignedDriverOrAdmin allows the assigned driver or an admin.
func RequireAssignedDriverOrAdmin(actor *models.User, driverUserID uuid.UUID) error {
	if !actor.IsAdmin && actor.ID != driverUserID {
		return apperr.Forbidden("only the assigned driver can update this assignment")
	}
	return nil
}
