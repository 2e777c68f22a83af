package auth

import (
	"context"
	"strings"

	"github.com/camposur/reservas-backend/internal/users"
	"github.com/camposur/reservas-backend/pkg/db"
	pkgerrors "github.com/camposur/reservas-backend/pkg/errors"
	"gorm.io/gorm"
)

// defaultAdminPassword is applied when a provisioning request carries no
// password. Carried over from the legacy tooling so existing runbooks keep
// working.
// TODO: require an explicit password once the provisioning CLI passes one.
const defaultAdminPassword = "123456"

// ProvisionAdminRequest contains the data for creating an administrator
// account. Password is optional; see defaultAdminPassword.
type ProvisionAdminRequest struct {
	Username  string  `json:"username" validate:"required,max=150"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password,omitempty"`
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name" validate:"required"`
	Phone     *string `json:"phone,omitempty"`
}

// ProvisionAdminResponse reports the created administrator and whether the
// weak fallback password was used.
type ProvisionAdminResponse struct {
	User            *users.UserDTO `json:"user"`
	DefaultPassword bool           `json:"default_password"`
}

// ProvisionService creates administrator accounts. It is reachable only from
// the provisioning CLI and the admin-gated endpoint.
type ProvisionService interface {
	ProvisionAdmin(ctx context.Context, req ProvisionAdminRequest) (*ProvisionAdminResponse, error)
}

// ProvisionServiceParams names the dependencies for the provisioning flow.
type ProvisionServiceParams struct {
	DB     *db.Client
	Hasher CredentialHasher
}

type provisionService struct {
	db     *db.Client
	hasher CredentialHasher
}

// NewProvisionService builds an administrator provisioning service.
func NewProvisionService(params ProvisionServiceParams) (ProvisionService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	if params.Hasher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "credential hasher required")
	}
	return &provisionService{db: params.DB, hasher: params.Hasher}, nil
}

func (s *provisionService) ProvisionAdmin(ctx context.Context, req ProvisionAdminRequest) (*ProvisionAdminResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	fieldErrors := map[string]string{}
	if username == "" {
		fieldErrors["username"] = "username is required"
	}
	if email == "" {
		fieldErrors["email"] = "email is required"
	}
	if len(fieldErrors) > 0 {
		return nil, validationError(fieldErrors)
	}

	password := req.Password
	usedDefault := false
	if password == "" {
		password = defaultAdminPassword
		usedDefault = true
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var created *users.UserDTO
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := users.NewRepository(tx)

		taken, err := repo.ExistsByUsername(ctx, username)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already exists")
		}

		taken, err = repo.ExistsByEmail(ctx, email)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}

		dto := users.NewAdministrator(username, email, passwordHash)
		dto.FirstName = strings.TrimSpace(req.FirstName)
		dto.LastName = strings.TrimSpace(req.LastName)
		dto.Phone = req.Phone

		user, err := repo.Create(ctx, dto)
		if err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "account already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create administrator")
		}
		created = users.FromModel(user)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ProvisionAdminResponse{User: created, DefaultPassword: usedDefault}, nil
}
