package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
environment: development
server:
  port: 9090
engine:
  url: http://localhost:8501
session:
  ttl: 1h
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port: got %d", cfg.Server.Port)
	}
	if cfg.Session.TTL != time.Hour {
		t.Fatalf("ttl: got %v", cfg.Session.TTL)
	}
	// defaults
	if cfg.Session.Backend != "memory" {
		t.Fatalf("backend default: got %s", cfg.Session.Backend)
	}
	if cfg.Engine.Timeout != 30*time.Second {
		t.Fatalf("engine timeout default: got %v", cfg.Engine.Timeout)
	}
}

func TestLoadMissingEngineURL(t *testing.T) {
	_, err := Load(writeConfig(t, "environment: development\n"))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadBadSessionBackend(t *testing.T) {
	yaml := `
environment: development
engine:
  url: http://localhost:8501
session:
  backend: dynamo
`
	_, err := Load(writeConfig(t, yaml))
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestAlertsRequireBrokers(t *testing.T) {
	yaml := validYAML + `
alerts:
  enabled: true
`
	_, err := Load(writeConfig(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing brokers")
	}
}

func TestLoadWithEnvOverride(t *testing.T) {
	t.Setenv("ENGINE_URL", "http://engine:9000")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Engine.URL != "http://engine:9000" {
		t.Fatalf("engine url: got %s", cfg.Engine.URL)
	}
	if cfg.Session.Backend != "redis" || cfg.Session.Redis.Addr != "redis:6379" {
		t.Fatalf("session override not applied")
	}
}
