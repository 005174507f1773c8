package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

func (r *Registry) registerInstanceTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_list_instances",
			mcp.WithDescription("List all Xano instances associated with the account."),
		),
		r.handle("xano_list_instances", r.listInstances),
	)

	s.AddTool(
		mcp.NewTool("xano_get_instance_details",
			mcp.WithDescription("Get details for a specific Xano instance."),
			mcp.WithString("instance_name", mcp.Required(), mcp.Description("The name of the Xano instance (e.g., \"xnwv-v1z6-dvnr\")")),
		),
		r.handle("xano_get_instance_details", r.getInstanceDetails),
	)

	s.AddTool(
		mcp.NewTool("xano_list_databases",
			mcp.WithDescription("List all databases (workspaces) in a specific Xano instance."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
		),
		r.handle("xano_list_databases", r.listDatabases),
	)

	s.AddTool(
		mcp.NewTool("xano_get_workspace_details",
			mcp.WithDescription("Get details for a specific Xano workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
		),
		r.handle("xano_get_workspace_details", r.getWorkspaceDetails),
	)
}

// listInstances queries the account-level auth/me endpoint. When that yields
// no instance list (restricted tokens commonly cannot enumerate instances),
// it falls back to the configured default instance so the assistant still
// has something to work with.
func (r *Registry) listInstances(ctx context.Context, req mcp.CallToolRequest) any {
	res := r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     xano.GlobalAPI + "/auth/me",
		Headers: r.headers(),
	})

	if m, ok := res.(map[string]any); ok && !xano.IsError(res) {
		if instances, ok := m["instances"]; ok {
			return xano.Result{"instances": instances}
		}
	}

	if r.instance != "" {
		r.logger.Debug("auth/me yielded no instance list; falling back to configured instance", "instance", r.instance)
		return xano.Result{"instances": []any{r.instanceEntry(r.instance)}}
	}
	if xano.IsError(res) {
		return res
	}
	return xano.Result{"instances": []any{}}
}

// getInstanceDetails is constructed locally; the Meta API has no
// per-instance details endpoint.
func (r *Registry) getInstanceDetails(_ context.Context, req mcp.CallToolRequest) any {
	name, err := req.RequireString("instance_name")
	if err != nil {
		return xano.Error(err.Error())
	}
	return r.instanceEntry(name)
}

// instanceEntry builds the canonical instance description.
func (r *Registry) instanceEntry(name string) xano.Result {
	domain := xano.InstanceDomain(name, r.suffix)
	display := name
	if i := strings.Index(name, "-"); i > 0 {
		display = name[:i]
	}
	return xano.Result{
		"name":         name,
		"display":      strings.ToUpper(display),
		"xano_domain":  domain,
		"rate_limit":   false,
		"meta_api":     xano.MetaAPI(name, r.suffix),
		"meta_swagger": xano.SwaggerURL(name, r.suffix),
	}
}

func (r *Registry) listDatabases(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}

	res := r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     meta + "/workspace",
		Headers: r.headers(),
	})
	if xano.IsError(res) {
		return res
	}
	return xano.Result{"databases": res}
}

func (r *Registry) getWorkspaceDetails(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}
	workspaceID := normalizedID(req, "workspace_id")

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     meta + "/workspace/" + workspaceID,
		Headers: r.headers(),
	})
}
