package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// AuthMetrics records outcomes of the authentication endpoints.
type AuthMetrics struct {
	registrations *prometheus.CounterVec
	logins        *prometheus.CounterVec
	logouts       prometheus.Counter
	refreshes     *prometheus.CounterVec
}

// NewAuthMetrics registers the auth metrics on the provided registerer.
func NewAuthMetrics(reg prometheus.Registerer) *AuthMetrics {
	if reg == nil {
		return &AuthMetrics{}
	}
	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_registrations_total",
		Help: "Customer registration attempts by outcome.",
	}, []string{"outcome"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_logins_total",
		Help: "Login attempts by outcome and role.",
	}, []string{"outcome", "role"})
	logouts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auth_logouts_total",
		Help: "Logout requests.",
	})
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_token_refreshes_total",
		Help: "Token refresh attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(registrations, logins, logouts, refreshes)
	return &AuthMetrics{
		registrations: registrations,
		logins:        logins,
		logouts:       logouts,
		refreshes:     refreshes,
	}
}

// IncRegistration increments the registration counter for the outcome.
func (a *AuthMetrics) IncRegistration(outcome string) {
	if a == nil || a.registrations == nil {
		return
	}
	a.registrations.WithLabelValues(normalizeLabel(outcome)).Inc()
}

// IncLogin increments the login counter for the outcome/role pair.
func (a *AuthMetrics) IncLogin(outcome, role string) {
	if a == nil || a.logins == nil {
		return
	}
	a.logins.WithLabelValues(normalizeLabel(outcome), normalizeLabel(role)).Inc()
}

// IncLogout increments the logout counter.
func (a *AuthMetrics) IncLogout() {
	if a == nil || a.logouts == nil {
		return
	}
	a.logouts.Inc()
}

// IncRefresh increments the token refresh counter for the outcome.
func (a *AuthMetrics) IncRefresh(outcome string) {
	if a == nil || a.refreshes == nil {
		return
	}
	a.refreshes.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
