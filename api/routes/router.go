package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/camposur/reservas-backend/api/controllers"
	"github.com/camposur/reservas-backend/api/middleware"
	"github.com/camposur/reservas-backend/internal/auth"
	"github.com/camposur/reservas-backend/pkg/auth/session"
	"github.com/camposur/reservas-backend/pkg/config"
	"github.com/camposur/reservas-backend/pkg/db"
	"github.com/camposur/reservas-backend/pkg/enums"
	"github.com/camposur/reservas-backend/pkg/logger"
	"github.com/camposur/reservas-backend/pkg/metrics"
	redisclient "github.com/camposur/reservas-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPing db.Pinger,
	redisClient *redisclient.Client,
	sessionManager session.AccessSessionChecker,
	authService auth.Service,
	registerService auth.RegisterService,
	provisionService auth.ProvisionService,
	authMetrics *metrics.AuthMetrics,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if redisClient != nil {
			r.Get("/ready", controllers.HealthReady(cfg, dbPing, redisClient, logg))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, dbPing, nil, logg))
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(authLimiter(registerPolicy, redisClient, logg)).
			Post("/register", controllers.AuthRegister(registerService, authService, cfg.JWT, sessionManager, authMetrics, logg))
		r.With(authLimiter(loginPolicy, redisClient, logg)).
			Post("/login", controllers.AuthLogin(authService, cfg.JWT, sessionManager, authMetrics, logg))
		r.Post("/logout", controllers.AuthLogout(authService, cfg.JWT, authMetrics, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, authMetrics, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))

		r.Get("/home", controllers.Home(authService, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleAdministrator, logg))
			r.Post("/users/administrators", controllers.ProvisionAdmin(provisionService, logg))
		})
	})

	return r
}

// authLimiter avoids handing a typed-nil redis client to the middleware, which
// would defeat its nil-store bypass.
func authLimiter(policy middleware.AuthRateLimitPolicy, client *redisclient.Client, logg *logger.Logger) func(http.Handler) http.Handler {
	if client == nil {
		return middleware.AuthRateLimit(policy, nil, logg)
	}
	return middleware.AuthRateLimit(policy, client, logg)
}
