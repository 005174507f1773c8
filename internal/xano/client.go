// HTTP dispatch for the Xano Metadata API.
//
// # Client Architecture
//
// The Client wraps Go's standard net/http.Client and provides the single
// uniform request path every tool composes with:
//
//   - Method-aware encoding: GET query params, JSON bodies for
//     POST/PUT/PATCH, conditional JSON body for DELETE, multipart form for
//     file uploads.
//   - Uniform outcome: Do never returns a Go error. Every failure mode —
//     non-200 status, undecodable body, transport failure — comes back as an
//     error envelope (see Result), so tool handlers have exactly one
//     branch to take.
//   - No retries: a failed call is terminal for the current invocation.
//     5xx and 4xx are both reported through the same envelope; the caller
//     (an AI assistant driving the tools) decides whether to try again.
//
// # Error Envelope
//
//	┌─────────────────────────┬──────────────────────────────────────────────┐
//	│ Outcome                 │ Returned value                               │
//	├─────────────────────────┼──────────────────────────────────────────────┤
//	│ 200, valid JSON         │ decoded body (object, array, or scalar)      │
//	│ 200, invalid JSON       │ {"error": "Failed to parse response as JSON"}│
//	│ non-200                 │ {"error": "API request failed with status N",│
//	│                         │  "details": <body, truncated to 500 bytes>}  │
//	│ transport error         │ {"error": "Exception during API request: …"} │
//	│ unsupported method      │ panic — a bug in a tool definition           │
//	└─────────────────────────┴──────────────────────────────────────────────┘
//
// # Thread Safety
//
// The Client is safe for concurrent use. It holds no per-request state; the
// underlying http.Client handles connection pooling.
package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/time/rate"

	"github.com/xano-community/xano-mcp/internal/config"
	"github.com/xano-community/xano-mcp/internal/observability"
)

// supportedMethods is the closed set of HTTP methods the dispatcher accepts.
var supportedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Client performs Metadata API requests. Safe for concurrent use.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// ClientOption is a functional option for configuring the client.
type ClientOption func(*Client)

// WithRateLimiter sets a proactive client-side rate limiter.
func WithRateLimiter(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), int(math.Max(1, rps)))
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests to
// substitute a canned transport.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient creates a Metadata API client with the configured timeout.
func NewClient(cfg config.XanoConfig, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		logger: logger.With("component", "xano-client"),
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do performs one Metadata API request and returns the decoded JSON body on
// success or an error envelope on any failure. It never returns a Go error;
// the only way it gives up control abnormally is the unsupported-method
// panic, which indicates a broken tool definition rather than a runtime
// condition.
func (c *Client) Do(ctx context.Context, r Request) any {
	if !supportedMethods[r.Method] {
		panic(fmt.Sprintf("xano: unsupported HTTP method %q", r.Method))
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			observability.Metrics.APIErrorsTotal.WithLabelValues(r.Method, "rate_limited").Inc()
			return Error("Exception during API request: " + err.Error())
		}
	}

	req, err := c.buildRequest(ctx, r)
	if err != nil {
		observability.Metrics.APIErrorsTotal.WithLabelValues(r.Method, "build").Inc()
		return Error("Exception during API request: " + err.Error())
	}

	c.debugRequest(r)

	start := time.Now()
	resp, err := c.http.Do(req)
	observability.Metrics.APIRequestsTotal.WithLabelValues(r.Method).Inc()
	observability.Metrics.APILatency.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.Metrics.APIErrorsTotal.WithLabelValues(r.Method, "network").Inc()
		return Error("Exception during API request: " + err.Error())
	}

	body, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		observability.Metrics.APIErrorsTotal.WithLabelValues(r.Method, "network").Inc()
		return Error("Exception during API request: " + readErr.Error())
	}

	c.logger.Debug("meta api response", "method", r.Method, "url", r.URL, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		observability.Metrics.APIErrorsTotal.WithLabelValues(r.Method, strconv.Itoa(resp.StatusCode)).Inc()
		return Result{
			"error":   fmt.Sprintf("API request failed with status %d", resp.StatusCode),
			"details": truncateBody(body),
		}
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		observability.Metrics.APIErrorsTotal.WithLabelValues(r.Method, "parse").Inc()
		c.logger.Debug("meta api response is not JSON", "url", r.URL, "body", truncateBody(body))
		return Error("Failed to parse response as JSON")
	}
	return decoded
}

// buildRequest assembles the *http.Request for the given method, encoding
// the body per the method's convention.
func (c *Client) buildRequest(ctx context.Context, r Request) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)

	switch r.Method {
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		for k, v := range r.Query {
			q.Set(k, v)
		}
		req.URL.RawQuery = q.Encode()

	case http.MethodPost:
		if len(r.Files) > 0 {
			body, contentType, mErr := encodeMultipart(r)
			if mErr != nil {
				return nil, mErr
			}
			req, err = http.NewRequestWithContext(ctx, http.MethodPost, r.URL, body)
			if err != nil {
				return nil, err
			}
			applyHeaders(req, r.Headers)
			req.Header.Set("Content-Type", contentType)
			return req, nil
		}
		req, err = c.jsonRequest(ctx, r, r.Body != nil)
		if err != nil {
			return nil, err
		}

	case http.MethodPut, http.MethodPatch:
		req, err = c.jsonRequest(ctx, r, r.Body != nil)
		if err != nil {
			return nil, err
		}

	case http.MethodDelete:
		// DELETE carries a JSON body only when one was supplied.
		req, err = c.jsonRequest(ctx, r, len(r.Body) > 0)
		if err != nil {
			return nil, err
		}
	}

	applyHeaders(req, r.Headers)
	return req, nil
}

// jsonRequest builds a request with an optional JSON-encoded body.
func (c *Client) jsonRequest(ctx context.Context, r Request, withBody bool) (*http.Request, error) {
	if !withBody {
		return http.NewRequestWithContext(ctx, r.Method, r.URL, nil)
	}
	payload, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}
	return http.NewRequestWithContext(ctx, r.Method, r.URL, bytes.NewReader(payload))
}

// encodeMultipart renders Body as form fields alongside the file parts.
func encodeMultipart(r Request) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for k, v := range r.Body {
		if err := w.WriteField(k, cast.ToString(v)); err != nil {
			return nil, "", fmt.Errorf("writing form field %s: %w", k, err)
		}
	}
	for _, f := range r.Files {
		part, err := w.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return nil, "", fmt.Errorf("creating file part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("writing file part %s: %w", f.Field, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func applyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

// debugRequest emits the diagnostic line for an outgoing call. Observability
// only — tools must not depend on it.
func (c *Client) debugRequest(r Request) {
	if !c.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{"method", r.Method, "url", r.URL}
	if len(r.Query) > 0 {
		attrs = append(attrs, "params", r.Query)
	}
	if r.Body != nil && len(r.Files) == 0 {
		if data, err := json.Marshal(r.Body); err == nil {
			attrs = append(attrs, "body", truncateBody(data))
		}
	}
	c.logger.Debug("meta api request", attrs...)
}

// truncateBody returns the first 500 bytes of a response body for error
// details and logging.
func truncateBody(body []byte) string {
	if len(body) > 500 {
		return string(body[:500]) + "..."
	}
	return string(body)
}
