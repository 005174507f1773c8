package tools

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

func (r *Registry) registerWorkspaceTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_export_workspace",
			mcp.WithDescription("Export a workspace, including schema and content."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace to export")),
			mcp.WithString("branch", mcp.Description("Branch to export (defaults to the live branch)")),
			mcp.WithString("password", mcp.Description("Password protecting the export archive")),
		),
		r.handle("xano_export_workspace", r.exportWorkspace),
	)

	s.AddTool(
		mcp.NewTool("xano_export_workspace_schema",
			mcp.WithDescription("Export only the schema of a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("branch", mcp.Description("Branch to export (defaults to the live branch)")),
			mcp.WithString("password", mcp.Description("Password protecting the export archive")),
		),
		r.handle("xano_export_workspace_schema", r.exportWorkspaceSchema),
	)

	s.AddTool(
		mcp.NewTool("xano_browse_request_history",
			mcp.WithDescription("Browse the API request history of a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithNumber("page", mcp.Description("Page number (default: 1)")),
			mcp.WithNumber("per_page", mcp.Description("Number of entries per page (default: 50)")),
			mcp.WithString("branch", mcp.Description("Filter by branch")),
			mcp.WithString("api_id", mcp.Description("Filter by API ID")),
			mcp.WithString("query_id", mcp.Description("Filter by query ID")),
			mcp.WithBoolean("include_output", mcp.Description("Include response output in the history entries")),
		),
		r.handle("xano_browse_request_history", r.browseRequestHistory),
	)
}

func (r *Registry) workspaceURL(req mcp.CallToolRequest) string {
	meta := r.meta(req)
	if meta == "" {
		return ""
	}
	return meta + "/workspace/" + normalizedID(req, "workspace_id")
}

func (r *Registry) exportWorkspace(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.workspaceURL(req)
	if url == "" {
		return errNoInstance()
	}

	body := map[string]any{}
	copyProvided(req, body, "branch", "password")

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/export",
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) exportWorkspaceSchema(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.workspaceURL(req)
	if url == "" {
		return errNoInstance()
	}

	body := map[string]any{}
	copyProvided(req, body, "branch", "password")

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/export-schema",
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) browseRequestHistory(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.workspaceURL(req)
	if url == "" {
		return errNoInstance()
	}

	q := pageQuery(req)
	addQueryIfSet(req, q, "branch", "api_id", "query_id")
	if _, ok := req.GetArguments()["include_output"]; ok {
		q["include_output"] = strconv.FormatBool(req.GetBool("include_output", false))
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url + "/request_history",
		Headers: r.headers(),
		Query:   q,
	})
}
