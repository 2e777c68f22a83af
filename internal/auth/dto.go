package auth

import (
	"github.com/camposur/reservas-backend/internal/users"
)

// RegisterRequest captures the customer self-registration payload. Validator
// tags cover presence and shape; the password pair rules live in the service
// so every field problem is reported in one response.
type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,max=150"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required"`
	PasswordConfirm string  `json:"password_confirm" validate:"required"`
	FirstName       string  `json:"first_name" validate:"required"`
	LastName        string  `json:"last_name" validate:"required"`
	Phone           *string `json:"phone,omitempty"`
}

// RegisterResponse returns the created account.
type RegisterResponse struct {
	User *users.UserDTO `json:"user"`
}

// LoginRequest captures the credentials sent to the unified login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair, the role-derived landing path, and
// the authenticated user.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Landing      string         `json:"landing"`
	User         *users.UserDTO `json:"user"`
}

// RefreshRequest carries the refresh token; the (possibly expired) access
// token travels in the auth header.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse mirrors LoginResponse minus the user payload.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// LogoutResponse points the client back at the login screen regardless of
// whether a session was actually revoked.
type LogoutResponse struct {
	Redirect string `json:"redirect"`
}

// HomeResponse describes where the authenticated user should land.
type HomeResponse struct {
	Landing string         `json:"landing"`
	User    *users.UserDTO `json:"user"`
}
