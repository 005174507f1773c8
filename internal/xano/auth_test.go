package xano

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XANO_API_TOKEN", "")
	t.Setenv("xanoApiToken", "")
}

func TestEnvTokenSource_PrimaryEnvVar(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("XANO_API_TOKEN", "primary-token")
	t.Setenv("xanoApiToken", "legacy-token")

	src := NewEnvTokenSource([]string{"--token", "arg-token"}, testLogger())
	if got := src.Token(); got != "primary-token" {
		t.Errorf("Token() = %q, want primary-token", got)
	}
}

func TestEnvTokenSource_LegacyEnvVar(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("xanoApiToken", "legacy-token")

	src := NewEnvTokenSource(nil, testLogger())
	if got := src.Token(); got != "legacy-token" {
		t.Errorf("Token() = %q, want legacy-token", got)
	}
}

func TestEnvTokenSource_ArgFlag(t *testing.T) {
	clearTokenEnv(t)

	src := NewEnvTokenSource([]string{"-config", "x.yaml", "--token", "arg-token"}, testLogger())
	if got := src.Token(); got != "arg-token" {
		t.Errorf("Token() = %q, want arg-token", got)
	}
}

func TestEnvTokenSource_Placeholder(t *testing.T) {
	clearTokenEnv(t)

	src := NewEnvTokenSource(nil, testLogger())
	if got := src.Token(); got != PlaceholderToken {
		t.Errorf("Token() = %q, want %q", got, PlaceholderToken)
	}
}

func TestEnvTokenSource_TrailingFlagIgnored(t *testing.T) {
	clearTokenEnv(t)

	// --token with no following value cannot yield a credential.
	src := NewEnvTokenSource([]string{"--token"}, testLogger())
	if got := src.Token(); got != PlaceholderToken {
		t.Errorf("Token() = %q, want %q", got, PlaceholderToken)
	}
}

func TestEnvTokenSource_FreshResolution(t *testing.T) {
	clearTokenEnv(t)

	src := NewEnvTokenSource(nil, testLogger())
	if got := src.Token(); got != PlaceholderToken {
		t.Fatalf("Token() = %q, want placeholder before env is set", got)
	}

	// The environment is re-read on every call.
	t.Setenv("XANO_API_TOKEN", "late-token")
	if got := src.Token(); got != "late-token" {
		t.Errorf("Token() = %q, want late-token after env export", got)
	}
}

func TestStaticTokenSource(t *testing.T) {
	src := StaticTokenSource("fixed")
	if got := src.Token(); got != "fixed" {
		t.Errorf("Token() = %q, want fixed", got)
	}
}
