package controllers

import (
	"net/http"

	"github.com/camposur/reservas-backend/api/middleware"
	"github.com/camposur/reservas-backend/api/responses"
	"github.com/camposur/reservas-backend/internal/auth"
	pkgerrors "github.com/camposur/reservas-backend/pkg/errors"
	"github.com/camposur/reservas-backend/pkg/logger"
	"github.com/google/uuid"
)

// Home resolves the landing target for the authenticated user.
func Home(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		userID, err := uuid.Parse(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
			return
		}

		result, err := svc.Home(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
