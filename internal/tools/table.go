package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

func (r *Registry) registerTableTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_list_tables",
			mcp.WithDescription("List all tables in a specific Xano database (workspace)."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("database_id", mcp.Required(), mcp.Description("The ID of the Xano workspace/database")),
		),
		r.handle("xano_list_tables", r.listTables),
	)

	s.AddTool(
		mcp.NewTool("xano_get_table_details",
			mcp.WithDescription("Get details for a specific Xano table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
		),
		r.handle("xano_get_table_details", r.getTableDetails),
	)

	s.AddTool(
		mcp.NewTool("xano_create_table",
			mcp.WithDescription("Create a new table in a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the new table")),
			mcp.WithString("description", mcp.Description("Table description")),
			mcp.WithString("docs", mcp.Description("Documentation text")),
			mcp.WithBoolean("auth", mcp.Description("Whether authentication is required")),
			mcp.WithArray("tag", mcp.Description("List of tags for the table")),
		),
		r.handle("xano_create_table", r.createTable),
	)

	s.AddTool(
		mcp.NewTool("xano_update_table",
			mcp.WithDescription("Update an existing table in a workspace. Only supplied fields are changed."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table to update")),
			mcp.WithString("name", mcp.Description("The new name of the table")),
			mcp.WithString("description", mcp.Description("New table description")),
			mcp.WithString("docs", mcp.Description("New documentation text")),
			mcp.WithBoolean("auth", mcp.Description("New authentication setting")),
			mcp.WithArray("tag", mcp.Description("New list of tags for the table")),
		),
		r.handle("xano_update_table", r.updateTable),
	)

	s.AddTool(
		mcp.NewTool("xano_delete_table",
			mcp.WithDescription("Delete a table from a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table to delete")),
		),
		r.handle("xano_delete_table", r.deleteTable),
	)
}

func (r *Registry) listTables(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}
	workspaceID := normalizedID(req, "database_id")

	res := r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     meta + "/workspace/" + workspaceID + "/table",
		Headers: r.headers(),
	})
	return unwrapItems(res, "tables")
}

func (r *Registry) getTableDetails(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}
	workspaceID := normalizedID(req, "workspace_id")
	tableID := normalizedID(req, "table_id")

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     meta + "/workspace/" + workspaceID + "/table/" + tableID,
		Headers: r.headers(),
	})
}

func (r *Registry) createTable(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}
	workspaceID := normalizedID(req, "workspace_id")

	body := map[string]any{
		"name":        req.GetString("name", ""),
		"description": req.GetString("description", ""),
		"docs":        req.GetString("docs", ""),
		"auth":        req.GetBool("auth", false),
	}
	if tag := argArray(req, "tag"); tag != nil {
		body["tag"] = tag
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     meta + "/workspace/" + workspaceID + "/table",
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) updateTable(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}
	workspaceID := normalizedID(req, "workspace_id")
	tableID := normalizedID(req, "table_id")

	body := map[string]any{}
	copyProvided(req, body, "name", "description", "docs", "auth", "tag")

	return r.client.Do(ctx, xano.Request{
		Method:  "PUT",
		URL:     meta + "/workspace/" + workspaceID + "/table/" + tableID + "/meta",
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) deleteTable(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}
	workspaceID := normalizedID(req, "workspace_id")
	tableID := normalizedID(req, "table_id")

	return r.client.Do(ctx, xano.Request{
		Method:  "DELETE",
		URL:     meta + "/workspace/" + workspaceID + "/table/" + tableID,
		Headers: r.headers(),
	})
}
