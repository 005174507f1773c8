package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
xano:
  instance: x8ki-letl-twmt
  timeout_seconds: 15
  rate_limit_rps: 5
observability:
  addr: ":9090"
log_level: debug
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTemp(t, validYAML)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Xano.Instance != "x8ki-letl-twmt" {
		t.Errorf("Instance = %q", cfg.Xano.Instance)
	}
	if cfg.Xano.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d, want 15", cfg.Xano.TimeoutSeconds)
	}
	if cfg.Xano.RateLimitRPS != 5 {
		t.Errorf("RateLimitRPS = %v, want 5", cfg.Xano.RateLimitRPS)
	}
	if cfg.Observability.Addr != ":9090" {
		t.Errorf("Observability.Addr = %q", cfg.Observability.Addr)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestDefaults(t *testing.T) {
	path := writeTemp(t, "xano:\n  instance: abc\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Xano.DomainSuffix != "n7c.xano.io" {
		t.Errorf("DomainSuffix default = %q, want n7c.xano.io", cfg.Xano.DomainSuffix)
	}
	if cfg.Xano.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds default = %d, want 30", cfg.Xano.TimeoutSeconds)
	}
	if cfg.Xano.RateLimitRPS != 0 {
		t.Errorf("RateLimitRPS default = %v, want 0 (disabled)", cfg.Xano.RateLimitRPS)
	}
	if cfg.Observability.Addr != "" {
		t.Errorf("Observability.Addr default = %q, want disabled", cfg.Observability.Addr)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel default = %q, want info", cfg.LogLevel)
	}
}

func TestFileNotFoundUsesDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.Xano.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30", cfg.Xano.TimeoutSeconds)
	}
	if cfg.Xano.Instance != "" {
		t.Errorf("Instance = %q, want empty", cfg.Xano.Instance)
	}
}

func TestInvalidDomainSuffix(t *testing.T) {
	path := writeTemp(t, "xano:\n  domain_suffix: https://evil.example/path\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for non-bare domain suffix")
	}
	if !strings.Contains(err.Error(), "domain_suffix") {
		t.Errorf("error should mention domain_suffix: %v", err)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	path := writeTemp(t, "log_level: verbose\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level: %v", err)
	}
}

func TestNegativeRateLimit(t *testing.T) {
	path := writeTemp(t, "xano:\n  rate_limit_rps: -1\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for negative rate limit")
	}
	if !strings.Contains(err.Error(), "rate_limit_rps") {
		t.Errorf("error should mention rate_limit_rps: %v", err)
	}
}

func TestEnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_XANO_INSTANCE", "env-instance")

	path := writeTemp(t, "xano:\n  instance: ${TEST_XANO_INSTANCE}\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Xano.Instance != "env-instance" {
		t.Errorf("Instance = %q, want env value", cfg.Xano.Instance)
	}
}

func TestResolveInstance(t *testing.T) {
	cfg := &Config{Xano: XanoConfig{Instance: "from-config"}}

	t.Run("env wins", func(t *testing.T) {
		t.Setenv("XANO_INSTANCE", "from-env")
		got := cfg.ResolveInstance([]string{"--instance", "from-args"})
		if got != "from-env" {
			t.Errorf("ResolveInstance = %q, want from-env", got)
		}
	})

	t.Run("args beat config", func(t *testing.T) {
		t.Setenv("XANO_INSTANCE", "")
		got := cfg.ResolveInstance([]string{"--instance", "from-args"})
		if got != "from-args" {
			t.Errorf("ResolveInstance = %q, want from-args", got)
		}
	})

	t.Run("config fallback", func(t *testing.T) {
		t.Setenv("XANO_INSTANCE", "")
		got := cfg.ResolveInstance(nil)
		if got != "from-config" {
			t.Errorf("ResolveInstance = %q, want from-config", got)
		}
	})

	t.Run("trailing flag without value", func(t *testing.T) {
		t.Setenv("XANO_INSTANCE", "")
		got := cfg.ResolveInstance([]string{"--instance"})
		if got != "from-config" {
			t.Errorf("ResolveInstance = %q, want from-config", got)
		}
	})
}
