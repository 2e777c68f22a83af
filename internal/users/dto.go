package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/camposur/reservas-backend/pkg/db/models"
	"github.com/camposur/reservas-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Username    string         `json:"username"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Phone       *string        `json:"phone,omitempty"`
	Role        enums.UserRole `json:"role"`
	IsActive    bool           `json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
// The role is not settable by callers: it is fixed by the constructor, so a
// registration payload can never smuggle in an elevated role.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string

	role enums.UserRole
}

// NewCustomer builds a creation DTO pinned to the customer role.
func NewCustomer(username, email, passwordHash string) CreateUserDTO {
	return CreateUserDTO{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		role:         enums.UserRoleCustomer,
	}
}

// NewAdministrator builds a creation DTO pinned to the administrator role.
func NewAdministrator(username, email, passwordHash string) CreateUserDTO {
	return CreateUserDTO{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		role:         enums.UserRoleAdministrator,
	}
}

// Role exposes the pinned role for logging and metrics.
func (c CreateUserDTO) Role() enums.UserRole {
	return c.role
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.role
	if !role.IsValid() {
		role = enums.UserRoleCustomer
	}

	return &models.User{
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Role:         role,
		IsActive:     true,
	}
}
