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

// tokenHeader carries the freshly minted access token on login and refresh.
const tokenHeader = "X-RSV-Token"

// AuthLogin is the single entry point for every role. Already-authenticated
// callers skip the credential check and get their landing target back.
func AuthLogin(svc auth.Service, cfg config.JWTConfig, checker session.AccessSessionChecker, authMetrics *metrics.AuthMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if claims := activeSessionClaims(r, cfg, checker); claims != nil {
			responses.WriteSuccess(w, map[string]string{"redirect": claims.Role.LandingPath()})
			return
		}

		var body auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			authMetrics.IncLogin("invalid_credentials", "")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		authMetrics.IncLogin("success", string(result.User.Role))
		w.Header().Set(tokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}

// AuthLogout tears down the session tied to the presented token. Missing,
// expired, or already-revoked tokens still produce a success with the login
// redirect: logging out twice is not an error.
func AuthLogout(svc auth.Service, cfg config.JWTConfig, authMetrics *metrics.AuthMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := ""
		if token := middleware.BearerToken(r); token != "" {
			if claims, err := pkgAuth.ParseAccessTokenAllowExpired(cfg, token); err == nil {
				accessID = claims.ID
			}
		}

		result, err := svc.Logout(r.Context(), accessID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		authMetrics.IncLogout()
		responses.WriteSuccess(w, result)
	}
}

// AuthRefresh rotates the refresh token and issues a new access token.
func AuthRefresh(svc auth.Service, authMetrics *metrics.AuthMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RefreshRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token := middleware.BearerToken(r)
		if token == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		result, err := svc.Refresh(r.Context(), token, body.RefreshToken)
		if err != nil {
			authMetrics.IncRefresh("rejected")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		authMetrics.IncRefresh("success")
		w.Header().Set(tokenHeader, result.AccessToken)
		responses.WriteSuccess(w, result)
	}
}
