package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/yigit/curricula/internal/app/services"
	"github.com/yigit/curricula/internal/config"
	"github.com/yigit/curricula/internal/db"
	"github.com/yigit/curricula/internal/pkg/auth"
	"github.com/yigit/curricula/internal/pkg/validation"
)

func TestHashPassword(t *testing.T) {
	cases := []struct {
		name  string
		args  []string
		stdin string
	}{
		{name: "argument", args: []string{"curricula", "hash-password", "s3cret"}},
		{name: "stdin", args: []string{"curricula", "hash-password"}, stdin: "s3cret\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			app := newApp()
			app.Writer = &out
			app.Reader = strings.NewReader(tc.stdin)

			if err := app.Run(tc.args); err != nil {
				t.Fatalf("run: %v", err)
			}
			hash := strings.TrimSpace(out.String())
			if !auth.CheckPassword(hash, "s3cret") {
				t.Fatalf("printed hash does not match the password: %q", hash)
			}
		})
	}
}

func TestWriteReports(t *testing.T) {
	var out bytes.Buffer
	if err := writeReports(&out, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if strings.TrimSpace(out.String()) != "[]" {
		t.Fatalf("empty audit should print an empty list, got %q", out.String())
	}

	reports := []services.AuditReport{
		{ProgrammeID: 1, Issues: []validation.Violation{{Code: "EDGE_SELF_LOOP"}}},
		{ProgrammeID: 2},
	}
	out.Reset()
	if err := writeReports(&out, reports); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.Contains(out.String(), `"EDGE_SELF_LOOP"`) {
		t.Fatalf("report should carry the issue code: %s", out.String())
	}
	if countIssues(reports) != 1 {
		t.Fatalf("countIssues = %d", countIssues(reports))
	}
}

func TestAuditConnectsWithoutMigrating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := "jwt:\n  secret: audit-test-secret\n"
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	errOffline := errors.New("database offline")
	calls := 0
	orig := openAuditDatabase
	openAuditDatabase = func(context.Context, *config.Config, zerolog.Logger) (*db.PostgresDB, error) {
		calls++
		return nil, errOffline
	}
	t.Cleanup(func() { openAuditDatabase = orig })

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"curricula", "--config", path, "audit"})
	if !errors.Is(err, errOffline) {
		t.Fatalf("expected the connect-only path to be used, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("connect called %d times", calls)
	}
}
