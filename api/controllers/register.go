package controllers

import (
	"net/http"

	"github.com/camposur/reservas-backend/api/middleware"
	"github.com/camposur/reservas-backend/api/responses"
	"github.com/camposur/reservas-backend/api/validators"
	"github.com/camposur/reservas-backend/internal/auth"
	pkgAuth "github.com/camposur/reservas-backend/pkg/auth"
	"github.com/camposur/reservas-backend/pkg/auth/session"
	"github.com/camposur/reservas-backend/pkg/config"
	pkgerrors "github.com/camposur/reservas-backend/pkg/errors"
	"github.com/camposur/reservas-backend/pkg/logger"
	"github.com/camposur/reservas-backend/pkg/metrics"
)

// AuthRegister handles customer self-registration. A request that already
// carries a live session is not re-registered; it is pointed at the caller's
// landing page instead. On success the new customer is logged in immediately.
func AuthRegister(reg auth.RegisterService, svc auth.Service, cfg config.JWTConfig, checker session.AccessSessionChecker, authMetrics *metrics.AuthMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if claims := activeSessionClaims(r, cfg, checker); claims != nil {
			responses.WriteSuccess(w, map[string]string{"redirect": claims.Role.LandingPath()})
			return
		}

		var body auth.RegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			authMetrics.IncRegistration("validation_error")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := reg.Register(r.Context(), body)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeValidation {
				authMetrics.IncRegistration("validation_error")
			} else {
				authMetrics.IncRegistration("error")
				if logg != nil {
					logg.Error(r.Context(), "register failed", err)
				}
			}
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		authMetrics.IncRegistration("success")

		if svc != nil {
			if login, err := svc.Login(r.Context(), auth.LoginRequest{Username: body.Username, Password: body.Password}); err == nil {
				w.Header().Set(tokenHeader, login.AccessToken)
				responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
					"user":          result.User,
					"access_token":  login.AccessToken,
					"refresh_token": login.RefreshToken,
					"landing":       login.Landing,
				})
				return
			}
		}

		// Account exists but the immediate login did not; the client signs in
		// manually.
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"user":     result.User,
			"redirect": auth.LoginRedirect,
		})
	}
}

// activeSessionClaims returns the claims of a valid, unrevoked session token
// presented on an otherwise-anonymous endpoint, or nil.
func activeSessionClaims(r *http.Request, cfg config.JWTConfig, checker session.AccessSessionChecker) *pkgAuth.AccessTokenClaims {
	token := middleware.BearerToken(r)
	if token == "" {
		return nil
	}
	claims, err := pkgAuth.ParseAccessToken(cfg, token)
	if err != nil || claims.ID == "" {
		return nil
	}
	if checker != nil {
		ok, err := checker.HasSession(r.Context(), claims.ID)
		if err != nil || !ok {
			return nil
		}
	}
	return claims
}
