package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

// Content tools operate on live table data, so every request here carries
// the X-Data-Source: live header.

func (r *Registry) registerContentTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_browse_table_content",
			mcp.WithDescription("Browse content for a specific Xano table with pagination."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithNumber("page", mcp.Description("Page number (default: 1)")),
			mcp.WithNumber("per_page", mcp.Description("Number of records per page (default: 50)")),
		),
		r.handle("xano_browse_table_content", r.browseTableContent),
	)

	s.AddTool(
		mcp.NewTool("xano_search_table_content",
			mcp.WithDescription("Search table content using structured conditions and sorting."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithArray("search_conditions", mcp.Description("List of search condition objects")),
			mcp.WithObject("sort", mcp.Description("Sort specification, e.g. {\"created_at\": \"desc\"}")),
			mcp.WithNumber("page", mcp.Description("Page number (default: 1)")),
			mcp.WithNumber("per_page", mcp.Description("Number of records per page (default: 50)")),
		),
		r.handle("xano_search_table_content", r.searchTableContent),
	)

	s.AddTool(
		mcp.NewTool("xano_get_table_record",
			mcp.WithDescription("Get a single record from a table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("record_id", mcp.Required(), mcp.Description("The ID of the record")),
		),
		r.handle("xano_get_table_record", r.getTableRecord),
	)

	s.AddTool(
		mcp.NewTool("xano_create_table_record",
			mcp.WithDescription("Create a new record in a table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithObject("record", mcp.Required(), mcp.Description("The record fields to insert")),
		),
		r.handle("xano_create_table_record", r.createTableRecord),
	)

	s.AddTool(
		mcp.NewTool("xano_update_table_record",
			mcp.WithDescription("Update an existing record in a table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("record_id", mcp.Required(), mcp.Description("The ID of the record to update")),
			mcp.WithObject("record", mcp.Required(), mcp.Description("The record fields to update")),
		),
		r.handle("xano_update_table_record", r.updateTableRecord),
	)

	s.AddTool(
		mcp.NewTool("xano_delete_table_record",
			mcp.WithDescription("Delete a record from a table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("record_id", mcp.Required(), mcp.Description("The ID of the record to delete")),
		),
		r.handle("xano_delete_table_record", r.deleteTableRecord),
	)

	s.AddTool(
		mcp.NewTool("xano_bulk_create_records",
			mcp.WithDescription("Create multiple records in a table in a single call."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithArray("records", mcp.Required(), mcp.Description("List of record objects to insert")),
		),
		r.handle("xano_bulk_create_records", r.bulkCreateRecords),
	)

	s.AddTool(
		mcp.NewTool("xano_bulk_update_records",
			mcp.WithDescription("Update multiple records in a table in a single call."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithArray("updates", mcp.Required(), mcp.Description("List of update objects like {\"row_id\": 1, \"updates\": {...}}")),
		),
		r.handle("xano_bulk_update_records", r.bulkUpdateRecords),
	)

	s.AddTool(
		mcp.NewTool("xano_bulk_delete_records",
			mcp.WithDescription("Delete multiple records from a table in a single call."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithArray("record_ids", mcp.Required(), mcp.Description("List of record IDs to delete")),
		),
		r.handle("xano_bulk_delete_records", r.bulkDeleteRecords),
	)

	s.AddTool(
		mcp.NewTool("xano_truncate_table",
			mcp.WithDescription("Delete all records from a table, optionally resetting the primary key counter."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table to truncate")),
			mcp.WithBoolean("reset", mcp.Description("Whether to reset the primary key counter (default: false)")),
		),
		r.handle("xano_truncate_table", r.truncateTable),
	)
}

func (r *Registry) contentURL(req mcp.CallToolRequest) string {
	meta := r.meta(req)
	if meta == "" {
		return ""
	}
	workspaceID := normalizedID(req, "workspace_id")
	tableID := normalizedID(req, "table_id")
	return meta + "/workspace/" + workspaceID + "/table/" + tableID + "/content"
}

func (r *Registry) browseTableContent(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url,
		Headers: r.contentHeaders(),
		Query:   pageQuery(req),
	})
}

func (r *Registry) searchTableContent(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	body := map[string]any{
		"page":     req.GetInt("page", 1),
		"per_page": req.GetInt("per_page", 50),
	}
	if conditions := argArray(req, "search_conditions"); conditions != nil {
		body["search"] = conditions
	}
	if sort := argObject(req, "sort"); sort != nil {
		body["sort"] = sort
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/search",
		Headers: r.contentHeaders(),
		Body:    body,
	})
}

func (r *Registry) getTableRecord(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url + "/" + normalizedID(req, "record_id"),
		Headers: r.contentHeaders(),
	})
}

func (r *Registry) createTableRecord(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url,
		Headers: r.contentHeaders(),
		Body:    argObject(req, "record"),
	})
}

func (r *Registry) updateTableRecord(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "PUT",
		URL:     url + "/" + normalizedID(req, "record_id"),
		Headers: r.contentHeaders(),
		Body:    argObject(req, "record"),
	})
}

func (r *Registry) deleteTableRecord(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "DELETE",
		URL:     url + "/" + normalizedID(req, "record_id"),
		Headers: r.contentHeaders(),
	})
}

func (r *Registry) bulkCreateRecords(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/bulk",
		Headers: r.contentHeaders(),
		Body:    map[string]any{"items": argArray(req, "records")},
	})
}

func (r *Registry) bulkUpdateRecords(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/bulk/patch",
		Headers: r.contentHeaders(),
		Body:    map[string]any{"items": argArray(req, "updates")},
	})
}

func (r *Registry) bulkDeleteRecords(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.contentURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/bulk/delete",
		Headers: r.contentHeaders(),
		Body:    map[string]any{"row_ids": argArray(req, "record_ids")},
	})
}

func (r *Registry) truncateTable(ctx context.Context, req mcp.CallToolRequest) any {
	meta := r.meta(req)
	if meta == "" {
		return errNoInstance()
	}
	workspaceID := normalizedID(req, "workspace_id")
	tableID := normalizedID(req, "table_id")

	// The reset body is only sent when requested; a bare DELETE keeps the
	// primary key counter.
	var body map[string]any
	if req.GetBool("reset", false) {
		body = map[string]any{"reset": true}
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "DELETE",
		URL:     meta + "/workspace/" + workspaceID + "/table/" + tableID + "/truncate",
		Headers: r.contentHeaders(),
		Body:    body,
	})
}
