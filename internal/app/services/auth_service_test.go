package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/curricula/internal/app/models/dto"
	"github.com/yigit/curricula/internal/pkg/apperrors"
	"github.com/yigit/curricula/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*AuthService, *auth.JWTService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "curricula-test",
	})
	admin := AdminCredentials{Username: "admin", PasswordHash: string(hash)}
	return NewAuthService(admin, jwtService, testLogger), jwtService
}

func TestLoginIssuesAdminToken(t *testing.T) {
	svc, jwtService := newAuthFixture(t)

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{Username: " admin ", Password: "s3cret-pass"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.TokenType != "Bearer" || resp.ExpiresIn != int64(time.Hour.Seconds()) {
		t.Fatalf("unexpected token response: %+v", resp)
	}

	claims, err := jwtService.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Username != "admin" || claims.Role != auth.RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthFixture(t)

	cases := []struct {
		name string
		req  dto.LoginRequest
	}{
		{"wrong password", dto.LoginRequest{Username: "admin", Password: "nope"}},
		{"wrong username", dto.LoginRequest{Username: "root", Password: "s3cret-pass"}},
		{"empty", dto.LoginRequest{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tc.req)
			if !errors.Is(err, apperrors.ErrInvalidCredentials) {
				t.Fatalf("expected invalid credentials, got %v", err)
			}
		})
	}
}

func TestLoginWithoutConfiguredHash(t *testing.T) {
	svc := NewAuthService(AdminCredentials{Username: "admin"}, auth.NewJWTService(auth.JWTConfig{SecretKey: "x"}), testLogger)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "anything"})
	if !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}
