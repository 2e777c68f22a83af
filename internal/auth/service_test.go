package auth

import (
	"context"
	"testing"
	"time"

	pkgAuth "github.com/camposur/reservas-backend/pkg/auth"
	"github.com/camposur/reservas-backend/pkg/auth/session"
	"github.com/camposur/reservas-backend/pkg/config"
	"github.com/camposur/reservas-backend/pkg/db/models"
	"github.com/camposur/reservas-backend/pkg/enums"
	pkgerrors "github.com/camposur/reservas-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var testJWTConfig = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "reservas",
	ExpirationMinutes: 30,
}

type stubUserRepo struct {
	user *models.User
	err  error
}

func (s stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.Username != username {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s stubUserRepo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if s.user != nil && s.user.ID == id {
		s.user.LastLoginAt = &at
	}
	return nil
}

type stubSessionManager struct {
	refreshToken string
	generated    []string
	revoked      []string
	rotateErr    error
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.generated = append(s.generated, accessID)
	return s.refreshToken, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	if provided != s.refreshToken {
		return "", "", session.ErrInvalidRefreshToken
	}
	return "rotated-access-id", "rotated-refresh-token", nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testUser(t *testing.T, username, password string, role enums.UserRole) *models.User {
	t.Helper()
	hash, err := testRegisterHasher().Hash(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
}

func buildTestService(t *testing.T, user *models.User) (Service, *stubSessionManager) {
	t.Helper()
	sessionMgr := &stubSessionManager{refreshToken: "refresh-token"}
	svc, err := NewService(ServiceParams{
		UserRepo:       stubUserRepo{user: user},
		SessionManager: sessionMgr,
		Hasher:         testRegisterHasher(),
		JWTConfig:      testJWTConfig,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc, sessionMgr
}

func requireInvalidCredentials(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("expected uniform message %q, got %q", invalidCredentialsMessage, typed.Message())
	}
}

func TestServiceLoginDispatchesByRole(t *testing.T) {
	cases := []struct {
		role    enums.UserRole
		landing string
	}{
		{enums.UserRoleCustomer, "/home/customer"},
		{enums.UserRoleEmployee, "/home/employee"},
		{enums.UserRoleAdministrator, "/home/administrator"},
	}

	for _, tc := range cases {
		user := testUser(t, "user-"+string(tc.role), "secret-pass", tc.role)
		svc, mgr := buildTestService(t, user)

		resp, err := svc.Login(context.Background(), LoginRequest{
			Username: user.Username,
			Password: "secret-pass",
		})
		if err != nil {
			t.Fatalf("login as %s: %v", tc.role, err)
		}
		if resp.Landing != tc.landing {
			t.Fatalf("expected landing %q for %s, got %q", tc.landing, tc.role, resp.Landing)
		}
		if resp.RefreshToken != "refresh-token" {
			t.Fatalf("expected refresh token from session manager")
		}
		if len(mgr.generated) != 1 {
			t.Fatalf("expected one session generated, got %d", len(mgr.generated))
		}
		if user.LastLoginAt == nil {
			t.Fatal("expected last login to be recorded")
		}

		claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
		if err != nil {
			t.Fatalf("parse access token: %v", err)
		}
		if claims.Role != tc.role {
			t.Fatalf("expected role claim %s, got %s", tc.role, claims.Role)
		}
		if claims.ID != mgr.generated[0] {
			t.Fatalf("jti should match the session access id")
		}
	}
}

func TestServiceLoginFailuresAreUniform(t *testing.T) {
	user := testUser(t, "ana", "secret-pass", enums.UserRoleCustomer)
	inactive := testUser(t, "ina", "secret-pass", enums.UserRoleCustomer)
	inactive.IsActive = false

	cases := []struct {
		name string
		user *models.User
		req  LoginRequest
	}{
		{"unknown username", user, LoginRequest{Username: "nobody", Password: "secret-pass"}},
		{"wrong password", user, LoginRequest{Username: "ana", Password: "wrong-pass"}},
		{"wrong case username", user, LoginRequest{Username: "Ana", Password: "secret-pass"}},
		{"inactive account", inactive, LoginRequest{Username: "ina", Password: "secret-pass"}},
		{"empty credentials", user, LoginRequest{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _ := buildTestService(t, tc.user)
			_, err := svc.Login(context.Background(), tc.req)
			requireInvalidCredentials(t, err)
		})
	}
}

func TestServiceLogoutIsIdempotent(t *testing.T) {
	user := testUser(t, "ana", "secret-pass", enums.UserRoleCustomer)
	svc, mgr := buildTestService(t, user)

	resp, err := svc.Logout(context.Background(), "some-access-id")
	if err != nil {
		t.Fatalf("logout: %v", err)
	}
	if resp.Redirect != LoginRedirect {
		t.Fatalf("expected login redirect, got %q", resp.Redirect)
	}

	// second logout with the same (now revoked) id still succeeds
	if _, err := svc.Logout(context.Background(), "some-access-id"); err != nil {
		t.Fatalf("second logout: %v", err)
	}
	// and so does logout without a session at all
	if _, err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("anonymous logout: %v", err)
	}
	if len(mgr.revoked) != 3 {
		t.Fatalf("expected three revoke calls, got %d", len(mgr.revoked))
	}
}

func TestServiceRefreshRotatesSession(t *testing.T) {
	user := testUser(t, "ana", "secret-pass", enums.UserRoleCustomer)
	svc, _ := buildTestService(t, user)

	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig, time.Now().Add(-time.Hour), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		JTI:      "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint expired token: %v", err)
	}

	resp, err := svc.Refresh(context.Background(), accessToken, "refresh-token")
	if err != nil {
		t.Fatalf("refresh with expired access token: %v", err)
	}
	if resp.RefreshToken != "rotated-refresh-token" {
		t.Fatalf("expected rotated refresh token, got %q", resp.RefreshToken)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig, resp.AccessToken)
	if err != nil {
		t.Fatalf("parse new access token: %v", err)
	}
	if claims.ID != "rotated-access-id" {
		t.Fatalf("expected rotated jti, got %s", claims.ID)
	}
}

func TestServiceRefreshRejectsBadToken(t *testing.T) {
	user := testUser(t, "ana", "secret-pass", enums.UserRoleCustomer)
	svc, _ := buildTestService(t, user)

	if _, err := svc.Refresh(context.Background(), "not-a-jwt", "refresh-token"); err == nil {
		t.Fatal("expected error for malformed access token")
	}

	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		JTI:      "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	_, err = svc.Refresh(context.Background(), accessToken, "stolen-token")
	if err == nil {
		t.Fatal("expected error for mismatched refresh token")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestServiceRefreshRevokesForDeactivatedAccount(t *testing.T) {
	user := testUser(t, "ana", "secret-pass", enums.UserRoleCustomer)
	user.IsActive = false
	svc, mgr := buildTestService(t, user)

	accessToken, err := pkgAuth.MintAccessToken(testJWTConfig, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		JTI:      "old-access-id",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	if _, err := svc.Refresh(context.Background(), accessToken, "refresh-token"); err == nil {
		t.Fatal("expected error for deactivated account")
	}
	if len(mgr.revoked) != 1 || mgr.revoked[0] != "rotated-access-id" {
		t.Fatalf("expected freshly rotated session to be revoked, got %v", mgr.revoked)
	}
}

func TestServiceHome(t *testing.T) {
	user := testUser(t, "root", "secret-pass", enums.UserRoleAdministrator)
	svc, _ := buildTestService(t, user)

	resp, err := svc.Home(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("home: %v", err)
	}
	if resp.Landing != "/home/administrator" {
		t.Fatalf("unexpected landing %q", resp.Landing)
	}
	if resp.User == nil || resp.User.Username != "root" {
		t.Fatalf("expected user payload")
	}

	if _, err := svc.Home(context.Background(), uuid.New()); err == nil {
		t.Fatal("expected error for unknown user")
	}
}
