package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingRequired(t *testing.T) {
	_, err := Load("")
	if !errors.Is(err, ErrMissingRequired) {
		t.Fatalf("expected ErrMissingRequired, got %v", err)
	}
	for _, key := range []string{"database.name", "database.user", "ai.api_key"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %q in error, got %v", key, err)
		}
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("JOBSENSE_DATABASE_NAME", "jobsense")
	t.Setenv("JOBSENSE_DATABASE_USER", "app")
	t.Setenv("JOBSENSE_AI_API_KEY", "test-key")
	t.Setenv("JOBSENSE_APP_HTTP_PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.Database.Name != "jobsense" || cfg.Database.User != "app" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.AI.APIKey != "test-key" {
		t.Fatalf("unexpected ai config: %+v", cfg.AI)
	}
	if cfg.App.HTTPPort != "9090" {
		t.Fatalf("unexpected http port: %q", cfg.App.HTTPPort)
	}

	if cfg.Database.Host != "localhost" || cfg.Database.Port != "5432" {
		t.Fatalf("expected database defaults, got %+v", cfg.Database)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("expected redis default addr, got %q", cfg.Redis.Addr)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Fatalf("expected default ai timeout, got %v", cfg.AI.Timeout)
	}
}

func TestLoad_FromFile(t *testing.T) {
	raw := `
app:
  http_port: "7070"
  debug: true
database:
  name: jobs
  user: svc
  password: secret
ai:
  api_key: abc
  model: gemini-2.5-pro
  timeout: 45s
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "7070" || !cfg.App.Debug {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Database.Password != "secret" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.AI.Model != "gemini-2.5-pro" || cfg.AI.Timeout != 45*time.Second {
		t.Fatalf("unexpected ai config: %+v", cfg.AI)
	}
}
