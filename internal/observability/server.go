// Package observability provides the optional HTTP server for health checks
// and Prometheus metrics endpoints.
//
// The server is off by default: an MCP stdio process is usually short-lived
// and spawned by an AI client, so there is nothing to scrape. When an addr is
// configured the server runs alongside the stdio transport.
//
// # Endpoints
//
//   - GET /healthz: Health check endpoint. Returns 200 if the process is
//     running. Used by Docker HEALTHCHECK and Kubernetes liveness probes.
//
//   - GET /readyz: Readiness check endpoint. Returns 200 once the tool
//     registry has been registered and the stdio transport is serving.
//
//   - GET /metrics: Prometheus metrics in text exposition format. Includes
//     both Go runtime metrics and custom server metrics.
//
// # Custom Metrics
//
// The following server-specific metrics are exported:
//
//	┌───────────────────────────────┬─────────┬──────────────────────────────────┐
//	│ Metric Name                   │ Type    │ Description                      │
//	├───────────────────────────────┼─────────┼──────────────────────────────────┤
//	│ xanomcp_tool_calls_total      │ Counter │ Tool invocations (per tool)      │
//	│ xanomcp_tool_errors_total     │ Counter │ Tool calls that returned errors  │
//	│ xanomcp_api_requests_total    │ Counter │ Metadata API requests            │
//	│ xanomcp_api_errors_total      │ Counter │ Metadata API errors (by status)  │
//	│ xanomcp_api_latency_seconds   │ Hist    │ Metadata API response latency    │
//	└───────────────────────────────┴─────────┴──────────────────────────────────┘
//
// # Usage
//
//	srv := observability.NewServer(":9090", logger)
//	go srv.Start(ctx)
//	// When the stdio transport is up:
//	srv.SetReady(true)
package observability

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ----- Prometheus Metrics -----

// Metrics holds all Prometheus metrics used by the server.
// Using promauto for automatic registration with the default registry.
var Metrics = struct {
	// Tool surface metrics
	ToolCallsTotal  *prometheus.CounterVec
	ToolErrorsTotal *prometheus.CounterVec

	// Metadata API metrics
	APIRequestsTotal *prometheus.CounterVec
	APIErrorsTotal   *prometheus.CounterVec
	APILatency       *prometheus.HistogramVec
}{
	ToolCallsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xanomcp_tool_calls_total",
		Help: "Total number of tool invocations.",
	}, []string{"tool"}),

	ToolErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xanomcp_tool_errors_total",
		Help: "Total number of tool invocations that returned an error envelope.",
	}, []string{"tool"}),

	APIRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xanomcp_api_requests_total",
		Help: "Total number of Xano Metadata API requests.",
	}, []string{"method"}),

	APIErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "xanomcp_api_errors_total",
		Help: "Total number of Xano Metadata API errors by status code or failure class.",
	}, []string{"method", "status_code"}),

	APILatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "xanomcp_api_latency_seconds",
		Help:    "Xano Metadata API response latency in seconds.",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"method"}),
}

// ----- Health/Readiness Server -----

// Server provides HTTP endpoints for health checks, readiness probes,
// and Prometheus metrics.
type Server struct {
	addr   string
	ready  atomic.Bool
	logger *slog.Logger
	srv    *http.Server
}

// NewServer creates a new observability HTTP server.
func NewServer(addr string, logger *slog.Logger) *Server {
	s := &Server{
		addr:   addr,
		logger: logger.With("component", "observability"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests. Blocks until the context is
// cancelled, then gracefully shuts down the server.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("observability server starting", "addr", s.addr)

	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down observability server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(shutdownCtx)
	}()

	if err := s.srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("observability server: %w", err)
	}
	return nil
}

// SetReady marks the server as ready (or not ready) for readiness probes.
// Call SetReady(true) once the stdio transport is serving.
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
	s.logger.Info("readiness state changed", "ready", ready)
}

// handleHealth responds with 200 OK — the process is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, `{"status":"healthy"}`)
}

// handleReady responds with 200 if ready, 503 if not yet ready.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if s.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":"ready"}`)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, `{"status":"not_ready"}`)
	}
}
