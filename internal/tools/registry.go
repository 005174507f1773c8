// Package tools defines the MCP tool surface over the Xano Metadata API.
//
// Every tool follows the same shape: resolve the target instance, build
// bearer headers, assemble the endpoint URL by plain string concatenation,
// dispatch one HTTP call (two for the read-modify-write schema update), and
// hand the Result back to the transport. Tools never return Go errors for
// remote failures; the error envelope from the client is serialized into the
// tool result so the calling assistant can read it.
package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/config"
	"github.com/xano-community/xano-mcp/internal/observability"
	"github.com/xano-community/xano-mcp/internal/xano"
)

// Registry holds the collaborators shared by every tool handler. It carries
// no mutable state, so handlers are safe to run concurrently.
type Registry struct {
	client   *xano.Client
	tokens   xano.TokenSource
	suffix   string
	instance string // default instance, may be empty
	logger   *slog.Logger
}

// NewRegistry creates a Registry. defaultInstance may be empty, in which
// case every tool call must name its instance explicitly.
func NewRegistry(client *xano.Client, tokens xano.TokenSource, cfg config.XanoConfig, defaultInstance string, logger *slog.Logger) *Registry {
	return &Registry{
		client:   client,
		tokens:   tokens,
		suffix:   cfg.DomainSuffix,
		instance: defaultInstance,
		logger:   logger.With("component", "tools"),
	}
}

// Register adds every tool to the MCP server.
func (r *Registry) Register(s *server.MCPServer) {
	r.registerInstanceTools(s)
	r.registerTableTools(s)
	r.registerSchemaTools(s)
	r.registerIndexTools(s)
	r.registerContentTools(s)
	r.registerFileTools(s)
	r.registerAPIGroupTools(s)
	r.registerWorkspaceTools(s)
}

// toolFunc is the domain-level handler shape: it returns whatever JSON value
// the tool produced, success or error envelope alike.
type toolFunc func(ctx context.Context, req mcp.CallToolRequest) any

// handle wraps a toolFunc with metrics and uniform result encoding. A value
// carrying the "error" key becomes an MCP error result; everything else is
// passed through as JSON text.
func (r *Registry) handle(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		observability.Metrics.ToolCallsTotal.WithLabelValues(name).Inc()
		r.logger.Debug("tool invoked", "tool", name)

		v := fn(ctx, req)

		data, err := json.Marshal(v)
		if err != nil {
			observability.Metrics.ToolErrorsTotal.WithLabelValues(name).Inc()
			return mcp.NewToolResultError(`{"error":"failed to encode tool result"}`), nil
		}
		if xano.IsError(v) {
			observability.Metrics.ToolErrorsTotal.WithLabelValues(name).Inc()
			return mcp.NewToolResultError(string(data)), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// instanceName resolves the target instance for a call: the instance_name
// argument when given, the configured default otherwise.
func (r *Registry) instanceName(req mcp.CallToolRequest) string {
	if v := req.GetString("instance_name", ""); v != "" {
		return v
	}
	return r.instance
}

// meta returns the per-instance Metadata API base URL for a call, or "" when
// no instance can be resolved.
func (r *Registry) meta(req mcp.CallToolRequest) string {
	inst := r.instanceName(req)
	if inst == "" {
		return ""
	}
	return xano.MetaAPI(inst, r.suffix)
}

// errNoInstance is the envelope returned when a tool cannot resolve an
// instance at all.
func errNoInstance() xano.Result {
	return xano.Error("instance_name is required; no default instance is configured")
}

// headers builds the standard bearer + JSON headers. The token is resolved
// fresh on every call.
func (r *Registry) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + r.tokens.Token(),
		"Content-Type":  "application/json",
		"Accept":        "application/json",
	}
}

// contentHeaders adds the live data-source selector used by table-content
// reads and mutations. Schema and metadata operations must not send it.
func (r *Registry) contentHeaders() map[string]string {
	h := r.headers()
	h["X-Data-Source"] = "live"
	return h
}

// pageQuery builds the standard pagination query parameters.
func pageQuery(req mcp.CallToolRequest) map[string]string {
	return map[string]string{
		"page":     strconv.Itoa(req.GetInt("page", 1)),
		"per_page": strconv.Itoa(req.GetInt("per_page", 50)),
	}
}

// addQueryIfSet copies optional string filters into the query map, omitting
// anything the caller did not supply.
func addQueryIfSet(req mcp.CallToolRequest, q map[string]string, keys ...string) {
	for _, k := range keys {
		if v := req.GetString(k, ""); v != "" {
			q[k] = v
		}
	}
}

// copyProvided copies the listed arguments into body as-is when the caller
// supplied them. Absent optional parameters stay absent from the payload.
func copyProvided(req mcp.CallToolRequest, body map[string]any, keys ...string) {
	args := req.GetArguments()
	for _, k := range keys {
		if v, ok := args[k]; ok && v != nil {
			body[k] = v
		}
	}
}

// argArray returns an array argument, or nil when absent or mistyped.
func argArray(req mcp.CallToolRequest, key string) []any {
	v, _ := req.GetArguments()[key].([]any)
	return v
}

// argObject returns an object argument, or nil when absent or mistyped.
func argObject(req mcp.CallToolRequest, key string) map[string]any {
	v, _ := req.GetArguments()[key].(map[string]any)
	return v
}

// normalizedID reads an identifier argument of any JSON type and returns its
// canonical string form. "" means the argument was absent.
func normalizedID(req mcp.CallToolRequest, key string) string {
	return xano.NormalizeID(req.GetArguments()[key])
}

// unwrapItems presents a listing response under the given key, flattening
// the Meta API's "items" envelope when present.
func unwrapItems(res any, key string) any {
	if xano.IsError(res) {
		return res
	}
	if m, ok := res.(map[string]any); ok {
		if items, ok := m["items"]; ok {
			return xano.Result{key: items}
		}
	}
	return xano.Result{key: res}
}
