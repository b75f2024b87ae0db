package config

import (
	"testing"
	"time"
)

func TestLoadClient_Defaults(t *testing.T) {
	t.Setenv("UNISHOP_API", "")
	t.Setenv("UNISHOP_DB", "")

	cfg := LoadClient()

	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q, want default", cfg.APIBaseURL)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should never be empty")
	}
	if cfg.Timeout != 15*time.Second {
		t.Errorf("Timeout = %v, want 15s", cfg.Timeout)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadClient_EnvOverrides(t *testing.T) {
	t.Setenv("UNISHOP_API", "https://shop.example.edu")
	t.Setenv("UNISHOP_DB", ":memory:")
	t.Setenv("UNISHOP_LOG_LEVEL", "debug")

	cfg := LoadClient()

	if cfg.APIBaseURL != "https://shop.example.edu" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.DBPath != ":memory:" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadDevServer_Defaults(t *testing.T) {
	t.Setenv("UNISHOP_DEV_ADDR", "")

	cfg := LoadDevServer()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.RateLimit <= 0 || cfg.RateBurst <= 0 {
		t.Errorf("rate limiting should be enabled by default: %v/%v", cfg.RateLimit, cfg.RateBurst)
	}
}
