package controllers

import (
	"net/http"

	"github.com/camposur/reservas-backend/api/responses"
	"github.com/camposur/reservas-backend/api/validators"
	"github.com/camposur/reservas-backend/internal/auth"
	pkgerrors "github.com/camposur/reservas-backend/pkg/errors"
	"github.com/camposur/reservas-backend/pkg/logger"
)

// ProvisionAdmin creates an administrator account. The route is gated by
// RequireRole(administrator); the same service backs the provisioning CLI.
func ProvisionAdmin(svc auth.ProvisionService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "provision service unavailable"))
			return
		}

		var body auth.ProvisionAdminRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ProvisionAdmin(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if result.DefaultPassword && logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{"username": body.Username})
			logg.Warn(ctx, "administrator provisioned with default password")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
