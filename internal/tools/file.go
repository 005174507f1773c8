package tools

import (
	"context"
	"encoding/base64"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

func (r *Registry) registerFileTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_list_files",
			mcp.WithDescription("List files in a workspace with optional filtering and sorting."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithNumber("page", mcp.Description("Page number (default: 1)")),
			mcp.WithNumber("per_page", mcp.Description("Number of files per page (default: 50)")),
			mcp.WithString("search", mcp.Description("Search term for filtering files")),
			mcp.WithString("access", mcp.Description("Filter by access level (\"public\" or \"private\")")),
			mcp.WithString("sort", mcp.Description("Field to sort by (\"created_at\", \"name\", \"size\", \"mime\")")),
			mcp.WithString("order", mcp.Description("Sort order (\"asc\" or \"desc\")")),
		),
		r.handle("xano_list_files", r.listFiles),
	)

	s.AddTool(
		mcp.NewTool("xano_get_file_details",
			mcp.WithDescription("Get details for a specific file in a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("file_id", mcp.Required(), mcp.Description("The ID of the file")),
		),
		r.handle("xano_get_file_details", r.getFileDetails),
	)

	s.AddTool(
		mcp.NewTool("xano_upload_file",
			mcp.WithDescription("Upload a file to a workspace. Content is passed base64-encoded."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("filename", mcp.Required(), mcp.Description("Name for the uploaded file")),
			mcp.WithString("content_base64", mcp.Required(), mcp.Description("Base64-encoded file content")),
			mcp.WithString("type", mcp.Description("File type hint (\"image\", \"video\", \"audio\", \"attachment\")")),
			mcp.WithString("access", mcp.Description("Access level (\"public\" or \"private\", default \"public\")")),
		),
		r.handle("xano_upload_file", r.uploadFile),
	)

	s.AddTool(
		mcp.NewTool("xano_delete_file",
			mcp.WithDescription("Delete a file from a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("file_id", mcp.Required(), mcp.Description("The ID of the file to delete")),
		),
		r.handle("xano_delete_file", r.deleteFile),
	)

	s.AddTool(
		mcp.NewTool("xano_bulk_delete_files",
			mcp.WithDescription("Delete multiple files from a workspace in a single call."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithArray("file_ids", mcp.Required(), mcp.Description("List of file IDs to delete")),
		),
		r.handle("xano_bulk_delete_files", r.bulkDeleteFiles),
	)
}

func (r *Registry) fileURL(req mcp.CallToolRequest) string {
	meta := r.meta(req)
	if meta == "" {
		return ""
	}
	return meta + "/workspace/" + normalizedID(req, "workspace_id") + "/file"
}

func (r *Registry) listFiles(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.fileURL(req)
	if url == "" {
		return errNoInstance()
	}

	q := pageQuery(req)
	addQueryIfSet(req, q, "search", "access", "sort", "order")

	res := r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url,
		Headers: r.headers(),
		Query:   q,
	})
	return unwrapItems(res, "files")
}

func (r *Registry) getFileDetails(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.fileURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url + "/" + normalizedID(req, "file_id"),
		Headers: r.headers(),
	})
}

func (r *Registry) uploadFile(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.fileURL(req)
	if url == "" {
		return errNoInstance()
	}

	content, err := base64.StdEncoding.DecodeString(req.GetString("content_base64", ""))
	if err != nil {
		return xano.Error("invalid base64 file content: " + err.Error())
	}

	body := map[string]any{
		"access": req.GetString("access", "public"),
	}
	if t := req.GetString("type", ""); t != "" {
		body["type"] = t
	}

	// The Authorization header rides along; the multipart content type is
	// set by the encoder.
	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url,
		Headers: map[string]string{"Authorization": "Bearer " + r.tokens.Token()},
		Body:    body,
		Files: []xano.File{{
			Field:   "content",
			Name:    req.GetString("filename", ""),
			Content: content,
		}},
	})
}

func (r *Registry) deleteFile(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.fileURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "DELETE",
		URL:     url + "/" + normalizedID(req, "file_id"),
		Headers: r.headers(),
	})
}

func (r *Registry) bulkDeleteFiles(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.fileURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url + "/bulk_delete",
		Headers: r.headers(),
		Body:    map[string]any{"ids": argArray(req, "file_ids")},
	})
}
