package auth

import (
	"context"
	"strings"

	"github.com/camposur/reservas-backend/internal/users"
	"github.com/camposur/reservas-backend/pkg/db"
	pkgerrors "github.com/camposur/reservas-backend/pkg/errors"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// RegisterService handles customer self-registration.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// CredentialHasher is the hashing surface injected into the auth services.
type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB     *db.Client
	Hasher CredentialHasher
}

type registerService struct {
	db     *db.Client
	hasher CredentialHasher
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "credential hasher required")
	}
	return &registerService{db: params.DB, hasher: params.Hasher}, nil
}

// Register validates the payload, checking every field before reporting, so
// the client can surface the complete error set in one round trip.
func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	fieldErrors := map[string]string{}
	if username == "" {
		fieldErrors["username"] = "username is required"
	}
	if email == "" {
		fieldErrors["email"] = "email is required"
	}
	validatePasswordPair(req.Password, req.PasswordConfirm, fieldErrors)

	// Uniqueness is checked even when other fields failed, so one response
	// carries the complete error set.
	if err := s.checkAvailability(ctx, username, email, fieldErrors); err != nil {
		return nil, err
	}
	if len(fieldErrors) > 0 {
		return nil, validationError(fieldErrors)
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	txErr := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		dto := users.NewCustomer(username, email, passwordHash)
		dto.FirstName = strings.TrimSpace(req.FirstName)
		dto.LastName = strings.TrimSpace(req.LastName)
		dto.Phone = req.Phone

		user, err := users.NewRepository(tx).Create(ctx, dto)
		if err != nil {
			// A concurrent registration can slip past the availability check;
			// translate the constraint back into the same field errors.
			if db.IsUniqueViolation(err) {
				return uniqueViolationError(err)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		created = users.FromModel(user)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &RegisterResponse{User: created}, nil
}

func (s *registerService) checkAvailability(ctx context.Context, username, email string, fieldErrors map[string]string) error {
	repo := users.NewRepository(s.db.DB())

	if username != "" {
		taken, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}
		if taken {
			fieldErrors["username"] = "username already exists"
		}
	}

	if email != "" {
		taken, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if taken {
			fieldErrors["email"] = "email already registered"
		}
	}
	return nil
}

func validatePasswordPair(password, confirm string, fieldErrors map[string]string) {
	switch {
	case password == "":
		fieldErrors["password"] = "password is required"
	case len(password) < minPasswordLength:
		fieldErrors["password"] = "password must be at least 8 characters"
	}
	switch {
	case confirm == "":
		fieldErrors["password_confirm"] = "password confirmation is required"
	case password != "" && password != confirm:
		fieldErrors["password_confirm"] = "passwords do not match"
	}
}

func validationError(fieldErrors map[string]string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(fieldErrors)
}

func uniqueViolationError(err error) error {
	hint := db.UniqueConstraintHint(err)
	fieldErrors := map[string]string{}
	if strings.Contains(hint, "email") {
		fieldErrors["email"] = "email already registered"
	}
	if strings.Contains(hint, "username") {
		fieldErrors["username"] = "username already exists"
	}
	if len(fieldErrors) == 0 {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "account already exists")
	}
	return validationError(fieldErrors)
}
