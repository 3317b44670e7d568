package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
server:
  port: "9000"
redis:
  addr: "localhost:6379"
quiz:
  answer_window: 45s
  teams:
    - id: red
      name: Red Team
    - id: blue
      name: Blue Team
ai:
  provider: bank
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9000" || cfg.Redis.Addr != "redis:6380" || cfg.Admin.Password != "s3cret" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if len(cfg.Quiz.Teams) != 2 || cfg.Quiz.Teams[1].Name != "Blue Team" || cfg.AI.Provider != "bank" {
		t.Fatalf("unexpected quiz config %+v", cfg.Quiz)
	}
	if d := TTLDuration(cfg.Quiz.AnswerWindow, 30*time.Second); d != 45*time.Second {
		t.Fatalf("unexpected answer window %v", d)
	}
}

func TestLoadMissingFileUsesEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "7070" {
		t.Fatalf("expected env port, got %q", cfg.Server.Port)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := LoadDotEnv(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DUK_TEST_DOTENV=loaded\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("DUK_TEST_DOTENV", "")
	os.Unsetenv("DUK_TEST_DOTENV")
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv("DUK_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if d := TTLDuration("", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback, got %v", d)
	}
	if d := TTLDuration("soon", time.Minute); d != time.Minute {
		t.Fatalf("expected fallback on bad input, got %v", d)
	}
}
