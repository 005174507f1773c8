// Credential resolution for Xano Metadata API access.
//
// # Resolution Order
//
// The bearer token is resolved fresh on every tool invocation (cheap, no
// I/O), first match wins:
//
//  1. Environment variable XANO_API_TOKEN
//  2. Environment variable xanoApiToken (legacy casing, kept for
//     compatibility with older client configurations)
//  3. The value following a --token flag in the launch arguments
//  4. The placeholder sentinel "missing_token"
//
// # Soft-Failure Policy
//
// A missing credential does not abort the process. The placeholder is sent
// as-is and the Meta API rejects it with 401/403, which reaches the caller
// through the normal non-200 error envelope. A long-lived stdio server must
// not die because one client forgot to export a token.
package xano

import (
	"log/slog"
	"os"
)

// PlaceholderToken is the sentinel credential used when no token is found.
const PlaceholderToken = "missing_token"

// tokenEnvVars are checked in order; no other casing variants are accepted.
var tokenEnvVars = []string{"XANO_API_TOKEN", "xanoApiToken"}

// TokenSource yields the current bearer credential. Implementations must be
// safe for concurrent use.
type TokenSource interface {
	// Token returns the raw bearer token, never an error: absence of a
	// credential is reported by the remote API, not locally.
	Token() string
}

// EnvTokenSource resolves the credential from the environment and the
// process launch arguments on every call. Nothing is cached, so exporting a
// token into the server's environment takes effect on the next invocation.
type EnvTokenSource struct {
	args   []string
	logger *slog.Logger
}

// NewEnvTokenSource creates an EnvTokenSource scanning the given launch
// arguments (typically os.Args[1:]).
func NewEnvTokenSource(args []string, logger *slog.Logger) *EnvTokenSource {
	return &EnvTokenSource{
		args:   args,
		logger: logger.With("component", "token-source"),
	}
}

// Token resolves the credential per the documented order.
func (s *EnvTokenSource) Token() string {
	for _, name := range tokenEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	for i, arg := range s.args {
		if arg == "--token" && i+1 < len(s.args) {
			return s.args[i+1]
		}
	}
	s.logger.Warn("xano api token not provided; proceeding with placeholder",
		"hint", "set XANO_API_TOKEN or pass --token",
	)
	return PlaceholderToken
}

// StaticTokenSource returns a fixed token. Useful for tests and for callers
// that manage credentials themselves.
type StaticTokenSource string

// Token returns the fixed token.
func (s StaticTokenSource) Token() string { return string(s) }
