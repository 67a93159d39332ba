package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsAndEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CURRICULUM_MAX_CREDITS", "30")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Fatalf("port: got=%q want=%q", cfg.Server.Port, "9090")
	}
	if cfg.Curriculum.MaxCredits != 30 {
		t.Fatalf("max credits: got=%d want=30", cfg.Curriculum.MaxCredits)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("allowed origins: got=%v", cfg.Server.AllowedOrigins)
	}
	if cfg.Tracing.SampleRatio != 0.5 {
		t.Fatalf("sample ratio: got=%v", cfg.Tracing.SampleRatio)
	}
	if cfg.Database.DBName != "curricula" {
		t.Fatalf("db name default: got=%q", cfg.Database.DBName)
	}
	if cfg.RedisEnabled() {
		t.Fatalf("redis should be disabled without an address")
	}
}

func TestLoadConfigFromYAML(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "7000"
jwt:
  secret: from-file
redis:
  addr: localhost:6379
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	os.Unsetenv("JWT_SECRET")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "7000" || cfg.JWT.Secret != "from-file" {
		t.Fatalf("unexpected config: port=%q secret=%q", cfg.Server.Port, cfg.JWT.Secret)
	}
	if !cfg.RedisEnabled() {
		t.Fatalf("redis should be enabled")
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"missing secret":  {"JWT_SECRET": ""},
		"bad window":      {"JWT_SECRET": "s", "RATE_LIMIT_WINDOW": "soon"},
		"bad credits":     {"JWT_SECRET": "s", "CURRICULUM_MAX_CREDITS": "0"},
		"bad hash":        {"JWT_SECRET": "s", "ADMIN_PASSWORD_HASH": "plaintext"},
		"bad int":         {"JWT_SECRET": "s", "DB_MAX_OPEN_CONNS": "many"},
		"bad sample rate": {"JWT_SECRET": "s", "OTEL_SAMPLER_RATIO": "2"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
