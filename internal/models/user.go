package models

import "github.com/google/uuid"

// User represents any platform account: customers, drivers and admins share
// this table and are distinguished by non-exclusive role flags.
type User struct {
	BaseModel
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `gorm:"uniqueIndex" json:"email"`
	Phone          string `gorm:"uniqueIndex" json:"phone"`
	PasswordHash   string `json:"-"`
	IsDriver       bool   `json:"is_driver"`
	IsCustomer     bool   `json:"is_customer"`
	IsAdmin        bool   `json:"is_admin"`
	NationalID     string `gorm:"uniqueIndex" json:"national_id"`
	CurrentAddress string `json:"current_address"`
	PostalCode     string `json:"postal_code"`
	EmailVerified  bool   `json:"email_verified"`
	PhoneConfirmed bool   `json:"phone_confirmed"`
}

// Customer is the rider profile. Exactly one per user.
type Customer struct {
	BaseModel
	UserID         uuid.UUID     `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	User           *User         `json:"user,omitempty"`
	CustomerTypeID *uuid.UUID    `gorm:"type:uuid" json:"customer_type_id"`
	CustomerType   *CustomerType `json:"customer_type,omitempty"`
}
