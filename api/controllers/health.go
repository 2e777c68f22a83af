package controllers

import (
	"context"
	"net/http"

	"github.com/camposur/reservas-backend/api/responses"
	"github.com/camposur/reservas-backend/pkg/config"
	pkgerrors "github.com/camposur/reservas-backend/pkg/errors"
	"github.com/camposur/reservas-backend/pkg/logger"
)

const envHeader = "X-Reservas-Env"

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady verifies the backing stores are reachable. Nil pingers are
// skipped so partial wiring (tests, CLI) still reports ready.
func HealthReady(cfg *config.Config, dbPing, redisPing pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)

		checks := map[string]pinger{"database": dbPing, "redis": redisPing}
		for name, p := range checks {
			if p == nil {
				continue
			}
			if err := p.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
