package services

import (
	"context"
	"testing"

	"github.com/vampi-007/AI-Interviewer/internal/models"
	"github.com/vampi-007/AI-Interviewer/internal/utils"
)

const testSecret = "test-secret"

func registeredUser(t *testing.T) (*fakeUserRepo, AuthService, *models.User) {
	t.Helper()
	users := newFakeUserRepo()
	svc := NewAuthService(users, nil, testSecret, testLogger())

	user, err := svc.Register(context.Background(), "dana", "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return users, svc, user
}

func TestRegister(t *testing.T) {
	users, _, user := registeredUser(t)

	if user.Role != models.RoleUser {
		t.Fatalf("role %q, want USER", user.Role)
	}
	if !user.IsActive {
		t.Fatal("new user should be active")
	}
	if user.HashedPassword == "hunter22" {
		t.Fatal("password stored in the clear")
	}
	if err := utils.CheckPassword(user.HashedPassword, "hunter22"); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
	if _, err := users.GetByID(context.Background(), user.UserID); err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
}

func TestRegisterRejections(t *testing.T) {
	_, svc, _ := registeredUser(t)
	ctx := context.Background()

	cases := []struct {
		name                      string
		username, email, password string
		code                      utils.Code
	}{
		{"short password", "eve", "eve@example.com", "12345", utils.CodeInvalidArgument},
		{"missing email", "eve", "", "hunter22", utils.CodeInvalidArgument},
		{"username taken", "dana", "other@example.com", "hunter22", utils.CodeConflict},
		{"email taken", "other", "dana@example.com", "hunter22", utils.CodeConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tc.username, tc.email, tc.password); !wantCode(err, tc.code) {
				t.Fatalf("got %v, want %s", err, tc.code)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	users, svc, user := registeredUser(t)
	ctx := context.Background()

	pair, err := svc.Login(ctx, "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty token pair: %+v", pair)
	}

	claims, err := utils.ParseToken(testSecret, pair.AccessToken)
	if err != nil {
		t.Fatalf("access token does not parse: %v", err)
	}
	if claims.Subject != user.UserID || claims.Role != "USER" {
		t.Fatalf("claims %+v", claims)
	}
	if users.byID[user.UserID].RefreshToken != pair.RefreshToken {
		t.Fatal("refresh token not stored for rotation")
	}
}

func TestLoginRejections(t *testing.T) {
	users, svc, user := registeredUser(t)
	ctx := context.Background()

	// Wrong password and unknown email produce the same answer.
	if _, err := svc.Login(ctx, "dana@example.com", "wrong"); !wantCode(err, utils.CodeUnauthorized) {
		t.Fatalf("wrong password got %v, want UNAUTHORIZED", err)
	}
	if _, err := svc.Login(ctx, "ghost@example.com", "hunter22"); !wantCode(err, utils.CodeUnauthorized) {
		t.Fatalf("unknown email got %v, want UNAUTHORIZED", err)
	}

	users.byID[user.UserID].IsActive = false
	if _, err := svc.Login(ctx, "dana@example.com", "hunter22"); !wantCode(err, utils.CodeForbidden) {
		t.Fatalf("deactivated account got %v, want FORBIDDEN", err)
	}
}

func TestRefreshRotation(t *testing.T) {
	_, svc, _ := registeredUser(t)
	ctx := context.Background()

	first, err := svc.Login(ctx, "dana@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	second, err := svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if second.AccessToken == "" {
		t.Fatal("refresh issued no access token")
	}

	// Rotation: the superseded refresh token is dead.
	if second.RefreshToken == first.RefreshToken {
		t.Fatal("refresh did not rotate the token")
	}
	if _, err := svc.Refresh(ctx, first.RefreshToken); !wantCode(err, utils.CodeUnauthorized) {
		t.Fatalf("stale refresh got %v, want UNAUTHORIZED", err)
	}

	if _, err := svc.Refresh(ctx, "not-a-jwt"); !wantCode(err, utils.CodeUnauthorized) {
		t.Fatalf("garbage token got %v, want UNAUTHORIZED", err)
	}
}
