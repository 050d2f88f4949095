package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8000" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.MaxTokens != 300 {
		t.Errorf("max_tokens = %d", cfg.MaxTokens)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("request_timeout = %v", cfg.RequestTimeout)
	}
	if cfg.DBPath != "hart.db" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("allowed_origins = %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hart.yaml")
	body := "addr: \":9100\"\nprovider: anthropic\nmax_tokens: 512\ndb_path: \"\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9100" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q", cfg.Provider)
	}
	if cfg.MaxTokens != 512 {
		t.Errorf("max_tokens = %d", cfg.MaxTokens)
	}
	if cfg.DBPath != "" {
		t.Errorf("db_path = %q, want auditing disabled", cfg.DBPath)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HART_ADDR", ":7000")
	t.Setenv("HART_API_TOKEN", "prefixed-token")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.APIToken != "prefixed-token" {
		t.Errorf("api_token = %q", cfg.APIToken)
	}
}

func TestLoadConventionalEnvFallbacks(t *testing.T) {
	t.Setenv("API_TOKEN", "legacy-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIToken != "legacy-token" {
		t.Errorf("api_token = %q", cfg.APIToken)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("api_key = %q", cfg.APIKey)
	}
}

func TestPrefixedEnvBeatsConventional(t *testing.T) {
	t.Setenv("HART_API_TOKEN", "prefixed")
	t.Setenv("API_TOKEN", "legacy")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIToken != "prefixed" {
		t.Errorf("api_token = %q", cfg.APIToken)
	}
}
