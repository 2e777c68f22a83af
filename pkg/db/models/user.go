package models

import (
	"strings"
	"time"

	"github.com/camposur/reservas-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the canonical identity record shared by every role. The role tag is
// fixed at construction time by the role-specific create paths; nothing in the
// persistence layer mutates it afterwards.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string         `gorm:"type:text;not null;uniqueIndex:users_username_key"`
	Email        string         `gorm:"type:text;not null;uniqueIndex:users_email_key"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FirstName    string         `gorm:"column:first_name;not null"`
	LastName     string         `gorm:"column:last_name;not null"`
	Phone        *string        `gorm:"column:phone"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an ID when the dialect has no server-side default
// (sqlite in dev and tests).
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// IsCustomer reports whether the account carries the customer role.
func (u *User) IsCustomer() bool {
	return u != nil && u.Role == enums.UserRoleCustomer
}

// IsEmployee reports whether the account carries the employee role.
func (u *User) IsEmployee() bool {
	return u != nil && u.Role == enums.UserRoleEmployee
}

// IsAdministrator reports whether the account carries the administrator role.
func (u *User) IsAdministrator() bool {
	return u != nil && u.Role == enums.UserRoleAdministrator
}

// DisplayName joins first and last name, tolerating either being empty.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}
