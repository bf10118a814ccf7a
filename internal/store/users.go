package store

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/models"
	"github.com/example/kerapido/internal/utils"
)

// CreateUserParams carries the fields accepted when registering a user.
type CreateUserParams struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Password       string
	IsDriver       bool
	IsCustomer     bool
	IsAdmin        bool
	NationalID     string
	CurrentAddress string
	PostalCode     string
}

// UserPatch carries the optional fields of a partial user update. Only
// non-nil fields are applied; Password is hashed before storing.
type UserPatch struct {
	FirstName      *string
	LastName       *string
	Email          *string
	Phone          *string
	Password       *string
	IsDriver       *bool
	IsCustomer     *bool
	IsAdmin        *bool
	NationalID     *string
	CurrentAddress *string
	PostalCode     *string
	EmailVerified  *bool
	PhoneConfirmed *bool
}

// GetUser fetches a user by id.
func (s *Store) GetUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.first(&user, apperr.NotFound("user %s not found", id), "id = ?", id); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByEmail fetches a user by email.
func (s *Store) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.first(&user, apperr.NotFound("user with email %s not found", email), "email = ?", email); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsers returns a page of users.
func (s *Store) ListUsers(limit, offset int) ([]models.User, error) {
	var users []models.User
	if err := s.db.Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUser registers a user. The email is pre-checked for friendliness;
// phone and national-ID duplicates surface from the unique indexes.
func (s *Store) CreateUser(p CreateUserParams) (*models.User, error) {
	return s.createUser(s.db, p)
}

func (s *Store) createUser(tx *gorm.DB, p CreateUserParams) (*models.User, error) {
	var existing models.User
	err := tx.Where("email = ?", p.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.Conflict("email already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(p.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		Email:          p.Email,
		Phone:          p.Phone,
		PasswordHash:   hash,
		IsDriver:       p.IsDriver,
		IsCustomer:     p.IsCustomer,
		IsAdmin:        p.IsAdmin,
		NationalID:     p.NationalID,
		CurrentAddress: p.CurrentAddress,
		PostalCode:     p.PostalCode,
	}

	if err := tx.Create(&user).Error; err != nil {
		return nil, conflictOn(err, apperr.Conflict("user already exists"))
	}
	return &user, nil
}

// Signup registers a user and its linked customer profile in one
// transaction. The customer role flag is always set.
func (s *Store) Signup(p CreateUserParams) (*models.User, error) {
	p.IsCustomer = true

	var user *models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		created, err := s.createUser(tx, p)
		if err != nil {
			return err
		}

		customer := models.Customer{UserID: created.ID}
		if err := tx.Create(&customer).Error; err != nil {
			return conflictOn(err, apperr.Conflict("user already has a customer profile"))
		}

		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a partial update. Absent fields keep their value.
func (s *Store) UpdateUser(id uuid.UUID, patch UserPatch) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Phone != nil {
		updates["phone"] = *patch.Phone
	}
	if patch.Password != nil {
		hash, err := utils.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if patch.IsDriver != nil {
		updates["is_driver"] = *patch.IsDriver
	}
	if patch.IsCustomer != nil {
		updates["is_customer"] = *patch.IsCustomer
	}
	if patch.IsAdmin != nil {
		updates["is_admin"] = *patch.IsAdmin
	}
	if patch.NationalID != nil {
		updates["national_id"] = *patch.NationalID
	}
	if patch.CurrentAddress != nil {
		updates["current_address"] = *patch.CurrentAddress
	}
	if patch.PostalCode != nil {
		updates["postal_code"] = *patch.PostalCode
	}
	if patch.EmailVerified != nil {
		updates["email_verified"] = *patch.EmailVerified
	}
	if patch.PhoneConfirmed != nil {
		updates["phone_confirmed"] = *patch.PhoneConfirmed
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, conflictOn(err, apperr.Conflict("user with conflicting unique fields already exists"))
	}
	return s.GetUser(id)
}

// DeleteUser removes a user by id.
func (s *Store) DeleteUser(id uuid.UUID) error {
	user, err := s.GetUser(id)
	if err != nil {
		return err
	}
	return s.db.Delete(user).Error
}
