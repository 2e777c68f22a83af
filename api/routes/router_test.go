package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/camposur/reservas-backend/internal/auth"
	"github.com/camposur/reservas-backend/internal/users"
	pkgAuth "github.com/camposur/reservas-backend/pkg/auth"
	"github.com/camposur/reservas-backend/pkg/auth/session"
	"github.com/camposur/reservas-backend/pkg/config"
	"github.com/camposur/reservas-backend/pkg/enums"
	"github.com/camposur/reservas-backend/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{
		AccessToken:  "token",
		RefreshToken: "refresh",
		Landing:      "/home/customer",
		User:         &users.UserDTO{Username: req.Username, Role: enums.UserRoleCustomer},
	}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) (*auth.LogoutResponse, error) {
	return &auth.LogoutResponse{Redirect: auth.LoginRedirect}, nil
}

func (stubAuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{AccessToken: "token", RefreshToken: "refresh"}, nil
}

func (stubAuthService) Home(ctx context.Context, userID uuid.UUID) (*auth.HomeResponse, error) {
	return &auth.HomeResponse{
		Landing: enums.UserRoleCustomer.LandingPath(),
		User:    &users.UserDTO{ID: userID, Role: enums.UserRoleCustomer},
	}, nil
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{
		User: &users.UserDTO{Username: req.Username, Role: enums.UserRoleCustomer},
	}, nil
}

type stubProvisionService struct{}

func (stubProvisionService) ProvisionAdmin(ctx context.Context, req auth.ProvisionAdminRequest) (*auth.ProvisionAdminResponse, error) {
	return &auth.ProvisionAdminResponse{
		User: &users.UserDTO{Username: req.Username, Role: enums.UserRoleAdministrator},
	}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil, // redis client: rate limiting disabled
		stubSessionManager{},
		stubAuthService{},
		stubRegisterService{},
		stubProvisionService{},
		nil, // metrics
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "tester",
		Role:     role,
		JTI:      session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Reservas-Env") != "test" {
		t.Fatalf("expected env header on health response")
	}
}

func TestHealthReady(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestLoginRouteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	body := `{"username":"ana","password":"long-enough"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestLogoutRouteNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("logout must succeed without a token, got %d", resp.Code)
	}
}

func TestHomeRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/home", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestHomeSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/home", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleCustomer))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for home got %d", resp.Code)
	}
}

func TestProvisionRequiresAdministratorRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	body := `{"username":"root","email":"root@example.com","first_name":"Root","last_name":"Admin"}`

	for _, role := range []enums.UserRole{enums.UserRoleCustomer, enums.UserRoleEmployee} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users/administrators", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, role))
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for %s got %d", role, resp.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/users/administrators", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleAdministrator))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for administrator got %d: %s", resp.Code, resp.Body.String())
	}
}
