package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	appControllers "github.com/yigit/curricula/internal/app/controllers"
	appRoutes "github.com/yigit/curricula/internal/app/routes"
	appMiddleware "github.com/yigit/curricula/internal/middleware"
	pkgAuth "github.com/yigit/curricula/internal/pkg/auth"
)

const testConfig = `
server:
  port: "9090"
  mode: production
jwt:
  secret: bootstrap-test-secret
curriculum:
  max_credits: 12
logging:
  level: warn
  format: json
`

func TestLoadConfigAndSetupLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := LoadConfigAndSetupLogger(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Curriculum.MaxCredits != 12 {
		t.Fatalf("file values not applied: %+v", cfg.Server)
	}
	if cfg.Database.MigrationsDir != "migrations" {
		t.Fatalf("defaults should survive a partial file, got %q", cfg.Database.MigrationsDir)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Fatalf("log level = %s", zerolog.GlobalLevel())
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestLoadConfigRejectsMissingSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: \"1\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("JWT_SECRET", "")

	if _, _, err := LoadConfigAndSetupLogger(path); err == nil {
		t.Fatalf("expected a missing JWT secret to be rejected")
	}
}

func TestSetupRouter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, lgr, err := LoadConfigAndSetupLogger(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{SecretKey: "s", AccessTokenExp: time.Minute})
	deps := &Dependencies{
		AuthMiddleware: appMiddleware.NewAuthMiddleware(jwtService),
		Controllers: appRoutes.Controllers{
			Auth:      appControllers.NewAuthController(nil, lgr),
			Programme: appControllers.NewProgrammeController(nil),
			Course:    appControllers.NewCourseController(nil),
			Graph:     appControllers.NewGraphController(nil),
			Health:    appControllers.NewHealthController(nil, lgr),
			Events:    appControllers.NewEventsController(nil, nil),
		},
	}
	router := SetupRouter(cfg, deps, lgr)

	cases := []struct {
		path     string
		status   int
		contains string
	}{
		{path: "/ping", status: http.StatusOK, contains: "pong"},
		{path: "/swagger/doc.json", status: http.StatusOK, contains: "Curricula API"},
		{path: "/api/v1/health", status: http.StatusOK, contains: "ok"},
		{path: "/metrics", status: http.StatusOK, contains: "curricula_"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
			if !strings.Contains(rec.Body.String(), tc.contains) {
				t.Fatalf("body does not contain %q: %s", tc.contains, rec.Body.String())
			}
			if rec.Header().Get("X-Request-Id") == "" {
				t.Fatalf("request id header missing")
			}
		})
	}
}
