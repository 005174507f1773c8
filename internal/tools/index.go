package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

func (r *Registry) registerIndexTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_list_indexes",
			mcp.WithDescription("List all indexes on a specific Xano table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
		),
		r.handle("xano_list_indexes", r.listIndexes),
	)

	s.AddTool(
		mcp.NewTool("xano_create_btree_index",
			mcp.WithDescription("Create a btree index on a table. Each field is a name plus sort direction."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithArray("fields", mcp.Required(), mcp.Description("Fields to index: strings (ascending) or objects like {\"name\": \"email\", \"op\": \"desc\"}")),
		),
		r.handle("xano_create_btree_index", r.createBtreeIndex),
	)

	s.AddTool(
		mcp.NewTool("xano_create_unique_index",
			mcp.WithDescription("Create a unique index on a table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithArray("fields", mcp.Required(), mcp.Description("Fields to index: strings (ascending) or objects like {\"name\": \"email\", \"op\": \"asc\"}")),
		),
		r.handle("xano_create_unique_index", r.createUniqueIndex),
	)

	s.AddTool(
		mcp.NewTool("xano_create_search_index",
			mcp.WithDescription("Create a full-text search index on a table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("name", mcp.Required(), mcp.Description("Name for the search index")),
			mcp.WithArray("fields", mcp.Required(), mcp.Description("Fields to index: strings or objects like {\"name\": \"title\", \"priority\": 1}")),
			mcp.WithString("lang", mcp.Description("Search language (default \"english\")")),
		),
		r.handle("xano_create_search_index", r.createSearchIndex),
	)

	s.AddTool(
		mcp.NewTool("xano_delete_index",
			mcp.WithDescription("Delete an index from a table."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("table_id", mcp.Required(), mcp.Description("The ID of the table")),
			mcp.WithString("index_id", mcp.Required(), mcp.Description("The ID of the index to delete")),
		),
		r.handle("xano_delete_index", r.deleteIndex),
	)
}

func (r *Registry) indexURL(req mcp.CallToolRequest) string {
	meta := r.meta(req)
	if meta == "" {
		return ""
	}
	workspaceID := normalizedID(req, "workspace_id")
	tableID := normalizedID(req, "table_id")
	return meta + "/workspace/" + workspaceID + "/table/" + tableID + "/index"
}

func (r *Registry) listIndexes(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.indexURL(req)
	if url == "" {
		return errNoInstance()
	}

	res := r.client.Do(ctx, xano.Request{Method: "GET", URL: url, Headers: r.headers()})
	return unwrapItems(res, "indexes")
}

// indexFields canonicalizes the fields argument: bare strings become
// ascending entries, objects pass through unchanged.
func indexFields(req mcp.CallToolRequest) []any {
	raw := argArray(req, "fields")
	fields := make([]any, 0, len(raw))
	for _, f := range raw {
		if name, ok := f.(string); ok {
			fields = append(fields, map[string]any{"name": name, "op": "asc"})
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

func (r *Registry) createBtreeIndex(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.indexURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/btree",
		Headers: r.headers(),
		Body:    map[string]any{"fields": indexFields(req)},
	})
}

func (r *Registry) createUniqueIndex(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.indexURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/unique",
		Headers: r.headers(),
		Body:    map[string]any{"fields": indexFields(req)},
	})
}

func (r *Registry) createSearchIndex(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.indexURL(req)
	if url == "" {
		return errNoInstance()
	}

	fields := make([]any, 0)
	for i, f := range argArray(req, "fields") {
		if name, ok := f.(string); ok {
			fields = append(fields, map[string]any{"name": name, "priority": i + 1})
			continue
		}
		fields = append(fields, f)
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/search",
		Headers: r.headers(),
		Body: map[string]any{
			"name":   req.GetString("name", ""),
			"lang":   req.GetString("lang", "english"),
			"fields": fields,
		},
	})
}

func (r *Registry) deleteIndex(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.indexURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "DELETE",
		URL:     url + "/" + normalizedID(req, "index_id"),
		Headers: r.headers(),
	})
}
