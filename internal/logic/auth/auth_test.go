package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/agentkit/agentkit/internal/config"
	"github.com/agentkit/agentkit/internal/db"
	"github.com/agentkit/agentkit/internal/middleware"
	"github.com/agentkit/agentkit/internal/svc"
	"github.com/agentkit/agentkit/internal/types"
)

func newTestSvc(t *testing.T) *svc.ServiceContext {
	t.Helper()
	t.Setenv("AGENTKIT_ENCRYPTION_KEY", "")

	store, err := db.NewMemory()
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	var c config.Config
	c.Database.SQLitePath = filepath.Join(t.TempDir(), "agentkit.db")
	c.Auth.AccessSecret = "test-secret"
	c.Auth.AccessExpire = 3600
	c.Auth.RefreshTokenExpire = 3600
	c.Chat.DefaultModel = "gpt-4"
	c.Chat.DefaultTemperature = 0.7

	svcCtx, err := svc.NewServiceContext(c, store)
	if err != nil {
		t.Fatalf("service context: %v", err)
	}
	t.Cleanup(svcCtx.Close)
	return svcCtx
}

func register(t *testing.T, svcCtx *svc.ServiceContext, email, password string) *types.AuthResponse {
	t.Helper()
	resp, err := NewRegisterLogic(context.Background(), svcCtx).Register(&types.RegisterRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return resp
}

func TestRegisterAndLogin(t *testing.T) {
	svcCtx := newTestSvc(t)
	ctx := context.Background()

	resp := register(t, svcCtx, " User@Example.com ", "password123")
	if resp.User.Email != "user@example.com" {
		t.Errorf("email not normalized: %q", resp.User.Email)
	}
	if resp.Token == "" || resp.RefreshToken == "" {
		t.Error("missing tokens in register response")
	}
	if resp.ExpiresIn != 3600 {
		t.Errorf("unexpected expiresIn %d", resp.ExpiresIn)
	}

	// Duplicate registration, same email after normalization
	_, err := NewRegisterLogic(ctx, svcCtx).Register(&types.RegisterRequest{
		Email: "user@example.com", Password: "password123",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	// Weak password
	_, err = NewRegisterLogic(ctx, svcCtx).Register(&types.RegisterRequest{
		Email: "other@example.com", Password: "short",
	})
	if err == nil {
		t.Error("short password accepted")
	}

	// Wrong password and unknown email collapse to the same error
	_, err = NewLoginLogic(ctx, svcCtx).Login(&types.LoginRequest{
		Email: "user@example.com", Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	_, err = NewLoginLogic(ctx, svcCtx).Login(&types.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	login, err := NewLoginLogic(ctx, svcCtx).Login(&types.LoginRequest{
		Email: "User@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if login.User.Id != resp.User.Id {
		t.Error("login resolved a different user")
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	svcCtx := newTestSvc(t)
	ctx := context.Background()

	resp := register(t, svcCtx, "u@example.com", "password123")

	rotated, err := NewRefreshTokenLogic(ctx, svcCtx).RefreshToken(&types.RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rotated.RefreshToken == resp.RefreshToken {
		t.Error("refresh token not rotated")
	}

	// The rotated-out token is revoked and cannot be replayed
	_, err = NewRefreshTokenLogic(ctx, svcCtx).RefreshToken(&types.RefreshRequest{
		RefreshToken: resp.RefreshToken,
	})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("replayed token accepted: %v", err)
	}

	// The fresh one still works
	if _, err := NewRefreshTokenLogic(ctx, svcCtx).RefreshToken(&types.RefreshRequest{
		RefreshToken: rotated.RefreshToken,
	}); err != nil {
		t.Errorf("rotated token rejected: %v", err)
	}

	for _, token := range []string{"", "not-a-real-token"} {
		_, err := NewRefreshTokenLogic(ctx, svcCtx).RefreshToken(&types.RefreshRequest{
			RefreshToken: token,
		})
		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("token %q: expected ErrInvalidRefreshToken, got %v", token, err)
		}
	}
}

func TestLogoutRevokesOneToken(t *testing.T) {
	svcCtx := newTestSvc(t)

	first := register(t, svcCtx, "u@example.com", "password123")
	second, err := NewLoginLogic(context.Background(), svcCtx).Login(&types.LoginRequest{
		Email: "u@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	userCtx := context.WithValue(context.Background(), middleware.UserIDKey, first.User.Id)

	out, err := NewLogoutLogic(userCtx, svcCtx).Logout(&types.LogoutRequest{
		RefreshToken: first.RefreshToken,
	})
	if err != nil || !out.Success {
		t.Fatalf("logout failed: %v", err)
	}

	// Only the presented token is dead
	_, err = NewRefreshTokenLogic(context.Background(), svcCtx).RefreshToken(&types.RefreshRequest{
		RefreshToken: first.RefreshToken,
	})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Errorf("revoked token still refreshes: %v", err)
	}
	if _, err := NewRefreshTokenLogic(context.Background(), svcCtx).RefreshToken(&types.RefreshRequest{
		RefreshToken: second.RefreshToken,
	}); err != nil {
		t.Errorf("unrelated session was revoked: %v", err)
	}

	// An unknown token logs out cleanly
	out, err = NewLogoutLogic(userCtx, svcCtx).Logout(&types.LogoutRequest{
		RefreshToken: "already-gone",
	})
	if err != nil || !out.Success {
		t.Errorf("logout with unknown token: %v", err)
	}
}

func TestLogoutWithoutTokenRevokesAll(t *testing.T) {
	svcCtx := newTestSvc(t)

	first := register(t, svcCtx, "u@example.com", "password123")
	second, err := NewLoginLogic(context.Background(), svcCtx).Login(&types.LoginRequest{
		Email: "u@example.com", Password: "password123",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	userCtx := context.WithValue(context.Background(), middleware.UserIDKey, first.User.Id)
	if _, err := NewLogoutLogic(userCtx, svcCtx).Logout(&types.LogoutRequest{}); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	for _, token := range []string{first.RefreshToken, second.RefreshToken} {
		_, err := NewRefreshTokenLogic(context.Background(), svcCtx).RefreshToken(&types.RefreshRequest{
			RefreshToken: token,
		})
		if !errors.Is(err, ErrInvalidRefreshToken) {
			t.Errorf("session survived logout-all: %v", err)
		}
	}
}

func TestLogoutRejectsForeignToken(t *testing.T) {
	svcCtx := newTestSvc(t)

	victim := register(t, svcCtx, "victim@example.com", "password123")
	attacker := register(t, svcCtx, "attacker@example.com", "password123")

	attackerCtx := context.WithValue(context.Background(), middleware.UserIDKey, attacker.User.Id)
	_, err := NewLogoutLogic(attackerCtx, svcCtx).Logout(&types.LogoutRequest{
		RefreshToken: victim.RefreshToken,
	})
	if !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("foreign token accepted for logout: %v", err)
	}

	// The victim's session is untouched
	if _, err := NewRefreshTokenLogic(context.Background(), svcCtx).RefreshToken(&types.RefreshRequest{
		RefreshToken: victim.RefreshToken,
	}); err != nil {
		t.Errorf("victim session was revoked: %v", err)
	}
}
