package xano

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xano-community/xano-mcp/internal/config"
)

func testClient() *Client {
	return NewClient(config.XanoConfig{TimeoutSeconds: 5}, testLogger())
}

func TestDo_SuccessObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "name": "users"}`))
	}))
	defer srv.Close()

	got := testClient().Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	if IsError(got) {
		t.Fatalf("Do returned error envelope: %v", got)
	}
	obj, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("Do returned %T, want object", got)
	}
	if obj["name"] != "users" {
		t.Errorf("name = %v, want users", obj["name"])
	}
}

func TestDo_SuccessArrayPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id": 1}, {"id": 2}]`))
	}))
	defer srv.Close()

	got := testClient().Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	if IsError(got) {
		t.Fatalf("array response misclassified as error: %v", got)
	}
	arr, ok := got.([]any)
	if !ok {
		t.Fatalf("Do returned %T, want array", got)
	}
	if len(arr) != 2 {
		t.Errorf("len = %d, want 2", len(arr))
	}
}

func TestDo_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>internal</html>"))
	}))
	defer srv.Close()

	got := testClient().Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	env, ok := got.(Result)
	if !ok || env["error"] != "Failed to parse response as JSON" {
		t.Errorf("Do = %v, want parse-failure envelope", got)
	}
}

func TestDo_Non200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message": "invalid token"}`))
	}))
	defer srv.Close()

	got := testClient().Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	env, ok := got.(Result)
	if !ok {
		t.Fatalf("Do returned %T, want Result", got)
	}
	if env["error"] != "API request failed with status 403" {
		t.Errorf("error = %v", env["error"])
	}
	details, _ := env["details"].(string)
	if !strings.Contains(details, "invalid token") {
		t.Errorf("details = %q, want raw body", details)
	}
}

func TestDo_DetailsTruncated(t *testing.T) {
	long := strings.Repeat("x", 2000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(long))
	}))
	defer srv.Close()

	got := testClient().Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	env := got.(Result)
	details := env["details"].(string)
	if len(details) != 503 { // 500 bytes + "..."
		t.Errorf("details length = %d, want 503", len(details))
	}
	if !strings.HasSuffix(details, "...") {
		t.Errorf("details should be marked as truncated")
	}
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	got := testClient().Do(context.Background(), Request{Method: http.MethodGet, URL: srv.URL})
	env, ok := got.(Result)
	if !ok {
		t.Fatalf("Do returned %T, want Result", got)
	}
	msg, _ := env["error"].(string)
	if !strings.HasPrefix(msg, "Exception during API request:") {
		t.Errorf("error = %q, want transport-failure envelope", msg)
	}
}

func TestDo_GetQueryAndHeaders(t *testing.T) {
	var gotAuth, gotPage, gotDataSource string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotDataSource = r.Header.Get("X-Data-Source")
		gotPage = r.URL.Query().Get("page")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	testClient().Do(context.Background(), Request{
		Method: http.MethodGet,
		URL:    srv.URL,
		Headers: map[string]string{
			"Authorization": "Bearer tok",
			"X-Data-Source": "live",
		},
		Query: map[string]string{"page": "2", "per_page": "50"},
	})

	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotDataSource != "live" {
		t.Errorf("X-Data-Source = %q", gotDataSource)
	}
	if gotPage != "2" {
		t.Errorf("page = %q, want 2", gotPage)
	}
}

func TestDo_PostJSONBody(t *testing.T) {
	var gotBody map[string]any
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`{"id": 7}`))
	}))
	defer srv.Close()

	testClient().Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     srv.URL,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    map[string]any{"name": "orders"},
	})

	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q", gotContentType)
	}
	if gotBody["name"] != "orders" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestDo_DeleteBodyOnlyWhenSupplied(t *testing.T) {
	var bodies []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := testClient()
	c.Do(context.Background(), Request{Method: http.MethodDelete, URL: srv.URL})
	c.Do(context.Background(), Request{
		Method: http.MethodDelete,
		URL:    srv.URL,
		Body:   map[string]any{"row_ids": []any{1, 2}},
	})

	if bodies[0] != "" {
		t.Errorf("bodyless DELETE sent %q", bodies[0])
	}
	if !strings.Contains(bodies[1], "row_ids") {
		t.Errorf("DELETE with body sent %q", bodies[1])
	}
}

func TestDo_MultipartUpload(t *testing.T) {
	var fileName, fileContent, formField string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err != nil || mediaType != "multipart/form-data" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		mr := multipart.NewReader(r.Body, params["boundary"])
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			data, _ := io.ReadAll(part)
			if part.FileName() != "" {
				fileName = part.FileName()
				fileContent = string(data)
			} else if part.FormName() == "type" {
				formField = string(data)
			}
		}
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	testClient().Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     srv.URL,
		Headers: map[string]string{"Authorization": "Bearer tok"},
		Body:    map[string]any{"type": "image"},
		Files:   []File{{Field: "content", Name: "logo.png", Content: []byte("png-bytes")}},
	})

	if fileName != "logo.png" || fileContent != "png-bytes" {
		t.Errorf("file part = %q/%q", fileName, fileContent)
	}
	if formField != "image" {
		t.Errorf("type form field = %q, want image", formField)
	}
}

func TestDo_UnsupportedMethodPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unsupported method")
		}
	}()
	testClient().Do(context.Background(), Request{Method: "TRACE", URL: "https://example.com"})
}

func TestTruncateBody(t *testing.T) {
	short := []byte("short body")
	if got := truncateBody(short); got != "short body" {
		t.Errorf("truncateBody(short) = %q", got)
	}
	long := []byte(strings.Repeat("a", 600))
	got := truncateBody(long)
	if len(got) != 503 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncateBody(long) length = %d", len(got))
	}
}
