// Package config provides YAML-based configuration loading, validation, and
// defaults for the Xano MCP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// instanceEnvVar is the environment variable consulted before the config
// file when resolving the default instance name.
const instanceEnvVar = "XANO_INSTANCE"

// Config is the top-level configuration for the server.
type Config struct {
	Xano          XanoConfig          `yaml:"xano"`
	Observability ObservabilityConfig `yaml:"observability"`
	LogLevel      string              `yaml:"log_level"`
}

// XanoConfig holds Xano Metadata API connection settings.
type XanoConfig struct {
	// Instance is the default instance name used when a tool call does not
	// supply one, e.g. "x8ki-letl-twmt".
	Instance string `yaml:"instance"`

	// DomainSuffix is appended to the instance name to form the API host.
	DomainSuffix string `yaml:"domain_suffix"`

	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
}

// ObservabilityConfig controls the optional metrics/health HTTP server.
// An empty Addr disables it, which is the normal mode for a stdio server.
type ObservabilityConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads a YAML config file, expands environment variables, and
// validates. A missing file is not an error: the server is usually launched
// by an MCP client with no config of its own, so defaults apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Expand ${VAR} and $VAR references in the YAML.
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// ResolveInstance returns the default instance name, consulting in order:
// the XANO_INSTANCE environment variable, an "--instance" command-line
// argument, then the config file value. Returns "" when none is set, in
// which case tools that need an instance report it per call.
func (c *Config) ResolveInstance(args []string) string {
	if v := os.Getenv(instanceEnvVar); v != "" {
		return v
	}
	for i, arg := range args {
		if arg == "--instance" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return c.Xano.Instance
}

// applyDefaults sets default values for unset fields.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	x := &cfg.Xano
	if x.DomainSuffix == "" {
		x.DomainSuffix = "n7c.xano.io"
	}
	if x.TimeoutSeconds == 0 {
		x.TimeoutSeconds = 30
	}
}

// validate checks that all set fields are valid. The instance name is not
// required here: it can arrive per tool call.
func validate(cfg *Config) error {
	var errs []error

	x := cfg.Xano
	if strings.Contains(x.DomainSuffix, "://") || strings.Contains(x.DomainSuffix, "/") {
		errs = append(errs, fmt.Errorf("xano.domain_suffix must be a bare host suffix, got %q", x.DomainSuffix))
	}
	if x.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("xano.timeout_seconds must be positive, got %d", x.TimeoutSeconds))
	}
	if x.RateLimitRPS < 0 {
		errs = append(errs, fmt.Errorf("xano.rate_limit_rps must not be negative, got %v", x.RateLimitRPS))
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level must be debug, info, warn, or error, got %q", cfg.LogLevel))
	}

	return errors.Join(errs...)
}
