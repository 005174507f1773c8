package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xano-community/xano-mcp/internal/xano"
)

func (r *Registry) registerAPIGroupTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("xano_browse_api_groups",
			mcp.WithDescription("Browse API groups in a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithNumber("page", mcp.Description("Page number (default: 1)")),
			mcp.WithNumber("per_page", mcp.Description("Number of groups per page (default: 50)")),
			mcp.WithString("search", mcp.Description("Search term for filtering groups")),
			mcp.WithString("sort", mcp.Description("Field to sort by (\"created_at\", \"updated_at\", \"name\")")),
			mcp.WithString("order", mcp.Description("Sort order (\"asc\" or \"desc\")")),
			mcp.WithString("branch", mcp.Description("Branch to list groups from (defaults to the live branch)")),
		),
		r.handle("xano_browse_api_groups", r.browseAPIGroups),
	)

	s.AddTool(
		mcp.NewTool("xano_get_api_group",
			mcp.WithDescription("Get details for a specific API group."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("apigroup_id", mcp.Required(), mcp.Description("The ID of the API group")),
		),
		r.handle("xano_get_api_group", r.getAPIGroup),
	)

	s.AddTool(
		mcp.NewTool("xano_create_api_group",
			mcp.WithDescription("Create a new API group in a workspace."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the new API group")),
			mcp.WithString("description", mcp.Description("API group description")),
			mcp.WithString("docs", mcp.Description("Documentation text")),
			mcp.WithString("branch", mcp.Description("Branch to create the group in")),
			mcp.WithBoolean("swagger", mcp.Description("Whether to publish swagger documentation")),
			mcp.WithArray("tag", mcp.Description("List of tags for the group")),
		),
		r.handle("xano_create_api_group", r.createAPIGroup),
	)

	s.AddTool(
		mcp.NewTool("xano_update_api_group",
			mcp.WithDescription("Update an existing API group. Only supplied fields are changed."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("apigroup_id", mcp.Required(), mcp.Description("The ID of the API group to update")),
			mcp.WithString("name", mcp.Description("The new name of the group")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("docs", mcp.Description("New documentation text")),
			mcp.WithBoolean("swagger", mcp.Description("New swagger publication setting")),
			mcp.WithArray("tag", mcp.Description("New list of tags")),
		),
		r.handle("xano_update_api_group", r.updateAPIGroup),
	)

	s.AddTool(
		mcp.NewTool("xano_browse_apis_in_group",
			mcp.WithDescription("Browse APIs within an API group."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("apigroup_id", mcp.Required(), mcp.Description("The ID of the API group")),
			mcp.WithNumber("page", mcp.Description("Page number (default: 1)")),
			mcp.WithNumber("per_page", mcp.Description("Number of APIs per page (default: 50)")),
			mcp.WithString("search", mcp.Description("Search term for filtering APIs")),
			mcp.WithString("sort", mcp.Description("Field to sort by")),
			mcp.WithString("order", mcp.Description("Sort order (\"asc\" or \"desc\")")),
		),
		r.handle("xano_browse_apis_in_group", r.browseAPIsInGroup),
	)

	s.AddTool(
		mcp.NewTool("xano_get_api",
			mcp.WithDescription("Get details for a specific API endpoint."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("apigroup_id", mcp.Required(), mcp.Description("The ID of the API group")),
			mcp.WithString("api_id", mcp.Required(), mcp.Description("The ID of the API")),
		),
		r.handle("xano_get_api", r.getAPI),
	)

	s.AddTool(
		mcp.NewTool("xano_create_api",
			mcp.WithDescription("Create a new API endpoint in an API group."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("apigroup_id", mcp.Required(), mcp.Description("The ID of the API group")),
			mcp.WithString("name", mcp.Required(), mcp.Description("The name of the new API")),
			mcp.WithString("verb", mcp.Required(), mcp.Description("HTTP verb (\"GET\", \"POST\", \"PUT\", \"PATCH\", \"DELETE\")")),
			mcp.WithString("description", mcp.Description("API description")),
			mcp.WithString("docs", mcp.Description("Documentation text")),
			mcp.WithArray("tag", mcp.Description("List of tags for the API")),
		),
		r.handle("xano_create_api", r.createAPI),
	)

	s.AddTool(
		mcp.NewTool("xano_update_api",
			mcp.WithDescription("Update an existing API endpoint. Only supplied fields are changed."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("apigroup_id", mcp.Required(), mcp.Description("The ID of the API group")),
			mcp.WithString("api_id", mcp.Required(), mcp.Description("The ID of the API to update")),
			mcp.WithString("name", mcp.Description("The new name of the API")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("docs", mcp.Description("New documentation text")),
			mcp.WithString("verb", mcp.Description("New HTTP verb")),
			mcp.WithBoolean("auth", mcp.Description("New authentication setting")),
			mcp.WithArray("tag", mcp.Description("New list of tags")),
		),
		r.handle("xano_update_api", r.updateAPI),
	)

	s.AddTool(
		mcp.NewTool("xano_set_api_security",
			mcp.WithDescription("Set the security guid on an API endpoint."),
			mcp.WithString("instance_name", mcp.Description("The name of the Xano instance; defaults to the configured instance")),
			mcp.WithString("workspace_id", mcp.Required(), mcp.Description("The ID of the workspace")),
			mcp.WithString("apigroup_id", mcp.Required(), mcp.Description("The ID of the API group")),
			mcp.WithString("api_id", mcp.Required(), mcp.Description("The ID of the API")),
			mcp.WithString("guid", mcp.Required(), mcp.Description("The security guid to apply")),
		),
		r.handle("xano_set_api_security", r.setAPISecurity),
	)
}

func (r *Registry) apigroupURL(req mcp.CallToolRequest) string {
	meta := r.meta(req)
	if meta == "" {
		return ""
	}
	return meta + "/workspace/" + normalizedID(req, "workspace_id") + "/apigroup"
}

func (r *Registry) apiURL(req mcp.CallToolRequest) string {
	base := r.apigroupURL(req)
	if base == "" {
		return ""
	}
	return base + "/" + normalizedID(req, "apigroup_id") + "/api"
}

func (r *Registry) browseAPIGroups(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apigroupURL(req)
	if url == "" {
		return errNoInstance()
	}

	q := pageQuery(req)
	addQueryIfSet(req, q, "search", "sort", "order", "branch")

	res := r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url,
		Headers: r.headers(),
		Query:   q,
	})
	return unwrapItems(res, "api_groups")
}

func (r *Registry) getAPIGroup(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apigroupURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url + "/" + normalizedID(req, "apigroup_id"),
		Headers: r.headers(),
	})
}

func (r *Registry) createAPIGroup(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apigroupURL(req)
	if url == "" {
		return errNoInstance()
	}

	body := map[string]any{"name": req.GetString("name", "")}
	copyProvided(req, body, "description", "docs", "branch", "swagger", "tag")

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url,
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) updateAPIGroup(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apigroupURL(req)
	if url == "" {
		return errNoInstance()
	}

	body := map[string]any{}
	copyProvided(req, body, "name", "description", "docs", "swagger", "tag")

	return r.client.Do(ctx, xano.Request{
		Method:  "PUT",
		URL:     url + "/" + normalizedID(req, "apigroup_id"),
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) browseAPIsInGroup(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apiURL(req)
	if url == "" {
		return errNoInstance()
	}

	q := pageQuery(req)
	addQueryIfSet(req, q, "search", "sort", "order")

	res := r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url,
		Headers: r.headers(),
		Query:   q,
	})
	return unwrapItems(res, "apis")
}

func (r *Registry) getAPI(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apiURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "GET",
		URL:     url + "/" + normalizedID(req, "api_id"),
		Headers: r.headers(),
	})
}

func (r *Registry) createAPI(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apiURL(req)
	if url == "" {
		return errNoInstance()
	}

	body := map[string]any{
		"name": req.GetString("name", ""),
		"verb": req.GetString("verb", ""),
	}
	copyProvided(req, body, "description", "docs", "tag")

	return r.client.Do(ctx, xano.Request{
		Method:  "POST",
		URL:     url,
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) updateAPI(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apiURL(req)
	if url == "" {
		return errNoInstance()
	}

	body := map[string]any{}
	copyProvided(req, body, "name", "description", "docs", "verb", "auth", "tag")

	return r.client.Do(ctx, xano.Request{
		Method:  "PUT",
		URL:     url + "/" + normalizedID(req, "api_id"),
		Headers: r.headers(),
		Body:    body,
	})
}

func (r *Registry) setAPISecurity(ctx context.Context, req mcp.CallToolRequest) any {
	url := r.apiURL(req)
	if url == "" {
		return errNoInstance()
	}

	return r.client.Do(ctx, xano.Request{
		Method:  "PUT",
		URL:     url + "/" + normalizedID(req, "api_id") + "/security",
		Headers: r.headers(),
		Body:    map[string]any{"guid": req.GetString("guid", "")},
	})
}
