package services

import (
	"errors"
	"testing"
	"time"

	"github.com/exam-portal/backend/internal/config"
	"github.com/exam-portal/backend/internal/store"
)

func testAuthService() (*AuthService, *store.Store) {
	cfg := &config.Config{
		JWT: config.JWTConfig{
			Secret:       "test-secret",
			AccessExpiry: 12 * time.Hour,
		},
		Admin: config.AdminConfig{
			Password: "portalAdmin",
		},
	}
	st := store.New(store.NewMemoryKV())
	return NewAuthService(cfg, st), st
}

func TestLoginWrongPassword(t *testing.T) {
	svc, st := testAuthService()

	_, err := svc.Login("wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("Login error = %v, expected ErrInvalidPassword", err)
	}

	if authed, _ := st.AdminAuthenticated(); authed {
		t.Error("a failed login must not set the session flag")
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, st := testAuthService()

	token, err := svc.Login("portalAdmin")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected a signed token")
	}

	claims, err := svc.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, expected admin", claims.Role)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > 12*time.Hour {
		t.Error("token expiry should honor the configured window")
	}

	if authed, _ := st.AdminAuthenticated(); !authed {
		t.Error("login must persist the session flag")
	}
}

func TestLogout(t *testing.T) {
	svc, st := testAuthService()

	if _, err := svc.Login("portalAdmin"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if err := svc.Logout(); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if authed, _ := st.AdminAuthenticated(); authed {
		t.Error("logout must clear the session flag")
	}
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _ := testAuthService()

	if _, err := svc.VerifyToken("not.a.token"); err == nil {
		t.Error("expected an error for a malformed token")
	}
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	svc, _ := testAuthService()
	token, err := svc.Login("portalAdmin")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	other := &config.Config{
		JWT:   config.JWTConfig{Secret: "different-secret", AccessExpiry: time.Hour},
		Admin: config.AdminConfig{Password: "portalAdmin"},
	}
	otherSvc := NewAuthService(other, store.New(store.NewMemoryKV()))

	if _, err := otherSvc.VerifyToken(token); err == nil {
		t.Error("a token signed with another secret must not verify")
	}
}
