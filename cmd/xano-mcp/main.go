// Xano MCP Server
//
// A standalone Go binary that exposes the Xano Metadata API as MCP tools
// over stdio, letting an AI assistant manage instances, workspaces, tables,
// schemas, indexes, records, files, and API groups without hand-crafting
// HTTP calls.
//
// # Usage
//
//	xano-mcp [flags]
//
//	Flags:
//	  -config string     Path to config YAML file (default "config.yaml";
//	                     a missing file falls back to defaults)
//	  --token string     Xano API token (XANO_API_TOKEN env var preferred)
//	  --instance string  Default instance name (XANO_INSTANCE env var preferred)
//	  -version           Print version information and exit
//
// # Architecture
//
//  1. MCP stdio transport (always): serves tool calls until stdin closes
//  2. Observability server (optional): /healthz, /readyz, /metrics when
//     observability.addr is configured
//
// Both run under an errgroup for coordinated lifecycle. On SIGINT/SIGTERM
// or stdin close, everything shuts down gracefully.
//
// All logging goes to stderr: stdout carries the MCP wire protocol.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/xano-community/xano-mcp/internal/config"
	"github.com/xano-community/xano-mcp/internal/observability"
	"github.com/xano-community/xano-mcp/internal/tools"
	"github.com/xano-community/xano-mcp/internal/xano"
)

// Build-time variables injected via ldflags.
var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration YAML file")
	flag.String("token", "", "Xano API token (prefer the XANO_API_TOKEN environment variable)")
	flag.String("instance", "", "Default Xano instance name (prefer the XANO_INSTANCE environment variable)")
	showVersion := flag.Bool("version", false, "Print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("xano-mcp %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Best-effort .env loading so MCP client configs can ship credentials
	// next to the binary.
	_ = godotenv.Load()

	// Bootstrap logger; replaced once the configured level is known. Logs
	// go to stderr — stdout is the MCP wire.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", "path", *configPath, "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting xano-mcp",
		"version", version,
		"commit", commit,
		"build_date", buildDate,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("server shutdown complete")
}

// run sets up all components and serves until the context is cancelled or
// stdin closes. Separated from main() for testability.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	args := os.Args[1:]

	tokens := xano.NewEnvTokenSource(args, logger)

	var clientOpts []xano.ClientOption
	if cfg.Xano.RateLimitRPS > 0 {
		clientOpts = append(clientOpts, xano.WithRateLimiter(cfg.Xano.RateLimitRPS))
	}
	client := xano.NewClient(cfg.Xano, logger, clientOpts...)

	instance := cfg.ResolveInstance(args)
	if instance == "" {
		logger.Warn("no default instance configured; tool calls must supply instance_name")
	}

	registry := tools.NewRegistry(client, tokens, cfg.Xano, instance, logger)

	mcpServer := server.NewMCPServer("xano", version)
	registry.Register(mcpServer)

	// runCtx ends when either the parent context is cancelled or the stdio
	// transport finishes, so the observability server never outlives it.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(runCtx)

	// Optional metrics/health server. Off by default: a stdio MCP process
	// is usually spawned per client session.
	var obsSrv *observability.Server
	if cfg.Observability.Addr != "" {
		obsSrv = observability.NewServer(cfg.Observability.Addr, logger)
		defer obsSrv.SetReady(false)
		g.Go(func() error {
			return obsSrv.Start(gCtx)
		})
	}

	g.Go(func() error {
		defer cancel()
		stdio := server.NewStdioServer(mcpServer)
		stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))
		if err := stdio.Listen(gCtx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("stdio transport: %w", err)
		}
		return nil
	})

	if obsSrv != nil {
		obsSrv.SetReady(true)
	}
	logger.Info("xano-mcp is ready",
		"default_instance", instance,
		"observability_addr", cfg.Observability.Addr,
	)

	return g.Wait()
}
