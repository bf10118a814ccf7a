package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/kerapido/internal/apperr"
	"github.com/example/kerapido/internal/middleware"
	"github.com/example/kerapido/internal/policy"
	"github.com/example/kerapido/internal/store"
	"github.com/example/kerapido/internal/utils"
)

// UserHandler manages user accounts.
type UserHandler struct {
	st *store.Store
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(st *store.Store) *UserHandler {
	return &UserHandler{st: st}
}

type createUserRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Password       string `json:"password"`
	IsDriver       bool   `json:"is_driver"`
	IsCustomer     bool   `json:"is_customer"`
	IsAdmin        bool   `json:"is_admin"`
	NationalID     string `json:"national_id"`
	CurrentAddress string `json:"current_address"`
	PostalCode     string `json:"postal_code"`
}

func (r createUserRequest) validate() error {
	if r.FirstName == "" || r.Email == "" || r.Password == "" {
		return apperr.Invalid("first_name, email and password are required")
	}
	if len(r.Password) < 8 {
		return apperr.Invalid("password must be at least 8 characters")
	}
	return nil
}

func (r createUserRequest) toParams() store.CreateUserParams {
	return store.CreateUserParams{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		Password:       r.Password,
		IsDriver:       r.IsDriver,
		IsCustomer:     r.IsCustomer,
		IsAdmin:        r.IsAdmin,
		NationalID:     r.NationalID,
		CurrentAddress: r.CurrentAddress,
		PostalCode:     r.PostalCode,
	}
}

// Create registers a user account.
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if err := req.validate(); err != nil {
		return err
	}

	user, err := h.st.CreateUser(req.toParams())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// List returns all users. Admin only.
func (h *UserHandler) List(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	if err := policy.RequireAdmin(actor); err != nil {
		return err
	}

	pg := utils.ParsePagination(c)
	users, err := h.st.ListUsers(pg.Limit, pg.Offset)
	if err != nil {
		return err
	}
	return c.JSON(users)
}

// Me returns the authenticated user's own profile.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}
	return c.JSON(actor)
}

// Get returns one user. Self or admin.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid user id")
	}

	if err := policy.RequireSelfOrAdmin(actor, id); err != nil {
		return err
	}

	user, err := h.st.GetUser(id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

type updateUserRequest struct {
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Password       *string `json:"password"`
	IsDriver       *bool   `json:"is_driver"`
	IsCustomer     *bool   `json:"is_customer"`
	IsAdmin        *bool   `json:"is_admin"`
	NationalID     *string `json:"national_id"`
	CurrentAddress *string `json:"current_address"`
	PostalCode     *string `json:"postal_code"`
	EmailVerified  *bool   `json:"email_verified"`
	PhoneConfirmed *bool   `json:"phone_confirmed"`
}

// Update applies a partial update to one user. Self or admin.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid user id")
	}

	if err := policy.RequireSelfOrAdmin(actor, id); err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Invalid("invalid request body")
	}
	if req.Password != nil && len(*req.Password) < 8 {
		return apperr.Invalid("password must be at least 8 characters")
	}

	user, err := h.st.UpdateUser(id, store.UserPatch{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		IsDriver:       req.IsDriver,
		IsCustomer:     req.IsCustomer,
		IsAdmin:        req.IsAdmin,
		NationalID:     req.NationalID,
		CurrentAddress: req.CurrentAddress,
		PostalCode:     req.PostalCode,
		EmailVerified:  req.EmailVerified,
		PhoneConfirmed: req.PhoneConfirmed,
	})
	if err != nil {
		return err
	}
	return c.JSON(user)
}

// Delete removes one user. Self or admin.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return apperr.Unauthorized("unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return apperr.Invalid("invalid user id")
	}

	if err := policy.RequireSelfOrAdmin(actor, id); err != nil {
		return err
	}

	if err := h.st.DeleteUser(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
