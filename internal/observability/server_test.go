package observability

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"log/slog"
	"os"
)

func testObsLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

func TestServer_HealthEndpoint(t *testing.T) {
	srv := NewServer(":0", testObsLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx) }()
	time.Sleep(100 * time.Millisecond) // let server start

	// We need to get the actual port — use the mux directly
	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	recorder := newResponseRecorder()
	srv.handleHealth(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("health status = %d, want 200", recorder.Code)
	}
	body := recorder.Body.String()
	if !strings.Contains(body, "healthy") {
		t.Errorf("health body = %q, want 'healthy'", body)
	}
}

func TestServer_ReadyEndpoint_NotReady(t *testing.T) {
	srv := NewServer(":0", testObsLogger())

	req, _ := http.NewRequest(http.MethodGet, "/readyz", nil)
	recorder := newResponseRecorder()
	srv.handleReady(recorder, req)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("ready status = %d, want 503", recorder.Code)
	}
}

func TestServer_ReadyEndpoint_Ready(t *testing.T) {
	srv := NewServer(":0", testObsLogger())
	srv.SetReady(true)

	req, _ := http.NewRequest(http.MethodGet, "/readyz", nil)
	recorder := newResponseRecorder()
	srv.handleReady(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", recorder.Code)
	}

	var resp map[string]string
	_ = json.Unmarshal(recorder.Bytes(), &resp)
	if resp["status"] != "ready" {
		t.Errorf("status = %q, want ready", resp["status"])
	}
}

func TestServer_MetricsEndpoint(t *testing.T) {
	srv := NewServer(":0", testObsLogger())

	// Record a test metric
	Metrics.ToolCallsTotal.WithLabelValues("xano_list_tables").Inc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.Start(ctx) }()
	time.Sleep(100 * time.Millisecond)

	// Test via direct HTTP if server got a real port
	resp, err := http.Get("http://localhost" + srv.addr + "/metrics")
	if err != nil {
		// Server might not have bound yet — just verify handler exists
		t.Skip("could not connect to metrics endpoint")
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "xanomcp_tool_calls_total") {
		t.Error("metrics output should contain xanomcp_tool_calls_total")
	}
}

// Simple response recorder for testing HTTP handlers without a real server.
type testResponseRecorder struct {
	Code   int
	Body   *strings.Builder
	header http.Header
}

func newResponseRecorder() *testResponseRecorder {
	return &testResponseRecorder{
		Code:   http.StatusOK,
		Body:   &strings.Builder{},
		header: make(http.Header),
	}
}

func (r *testResponseRecorder) Header() http.Header {
	return r.header
}

func (r *testResponseRecorder) Write(b []byte) (int, error) {
	return r.Body.Write(b)
}

func (r *testResponseRecorder) WriteHeader(code int) {
	r.Code = code
}

func (r *testResponseRecorder) Bytes() []byte {
	return []byte(r.Body.String())
}
