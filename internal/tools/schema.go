package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

// schemaUpdateWarning is attached to every successful read-modify-write
// schema mutation: the read and the write are two separate calls with no
// conditional-write support on the remote side, so a concurrent schema
// change made between them is overwritten.
const schemaUpdateWarning = "schema was updated via read-modify-write without concurrency control; " +
	"a concurrent schema change may have been overwritten"

func (r *Registry) registerSchemaTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_get_table_schema",
			mcp.WithDescription("Get schema for a specific Xano table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
		),
		r.handle("xano_get_table_schema", r.getTableSchema),
	)

	s.AddTool(
		mcp.NewTool("xano_add_field_to_schema",
			mcp.WithDescription("Add a field to a table schema. Reads the current schema, appends the field, and writes the whole schema back."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("field_name", mcp.Required(), mcp.Description("The name of the new field")),
			mcp.WithString("field_type", mcp.Required(), mcp.Description("The type of the new field (e.g., \"text\", \"int\", \"decimal\", \"bool\", \"timestamp\")")),
			mcp.WithString("description", mcp.Description("Field description")),
			mcp.WithBoolean("nullable", mcp.Description("Whether the field can be null")),
			mcp.WithBoolean("required", mcp.Description("Whether the field is required")),
			mcp.WithString("default", mcp.Description("Default value for the field")),
		),
		r.handle("xano_add_field_to_schema", r.addFieldToSchema),
	)

	s.AddTool(
		mcp.NewTool("xano_rename_schema_field",
			mcp.WithDescription("Rename a field in a table schema."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("old_name", mcp.Required(), mcp.Description("The current name of the field")),
			mcp.WithString("new_name", mcp.Required(), mcp.Description("The new name for the field")),
		),
		r.handle("xano_rename_schema_field", r.renameSchemaField),
	)

	s.AddTool(
		mcp.NewTool("xano_delete_field",
			mcp.WithDescription("Delete a field from a table schema."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("field_name", mcp.Required(), mcp.Description("The name of the field to delete")),
		),
		r.handle("xano_delete_field", r.deleteField),
	)
}

func (r *Registry) schemaURL(req mcp.CallToolRequest) string {
	meta := r.meta(req)
	if meta == "" {
		return ""
	}
	workspaceID := normalizedID(req, "workspace_id")
	tableID := normalizedID(req, "table_id")
	return meta + "/workspace/" + workspaceID + "/table/" + tableID + "/schema"
}

func (r *Registry) getTableSchema(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.schemaURL(req)
	if url == "" {
		return errNoInstance()
	}

	res := r.client.Do(ctx, xano.Request{Method: "GET", URL: url, Headers: r.headers()})
	if xano.IsError(res) {
		return res
	}
	return xano.Result{"schema": res}
}

// addFieldToSchema is the one two-step tool: read the current schema, append
// the new field at the end preserving existing order, write the full schema
// back.
func (r *Registry) addFieldToSchema(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.schemaURL(req)
	if url == "" {
		return errNoInstance()
	}

	current := r.client.Do(ctx, xano.Request{Method: "GET", URL: url, Headers: r.headers()})
	if xano.IsError(current) {
		return current
	}
	schema, ok := current.([]any)
	if !ok {
		return xano.Error("unexpected schema format: expected a list of fields")
	}

	field := map[string]any{
		"name": req.GetString("field_name", ""),
		"type": req.GetString("field_type", ""),
	}
	copyProvided(req, field, "description", "nullable", "required", "default")
	schema = append(schema, field)

	res := r.client.Do(ctx, xano.Request{
		Method:  "PUT",
		URL:     url,
		Headers: r.headers(),
		Body:    map[string]any{"schema": schema},
	})
	if xano.IsError(res) {
		return res
	}
	if m, ok := res.(map[string]any); ok {
		m["warning"] = schemaUpdateWarning
		return m
	}
	return xano.Result{"result": res, "warning": schemaUpdateWarning}
}

func (r *Registry) renameSchemaField(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.schemaURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/rename",
		Headers: r.headers(),
		Body: map[string]any{
			"old_name": req.GetString("old_name", ""),
			"new_name": req.GetString("new_name", ""),
		},
	})
}

func (r *Registry) deleteField(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.schemaURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "DELETE",
		URL:     url + "/" + req.GetString("field_name", ""),
		Headers: r.headers(),
	})
}
