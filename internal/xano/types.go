// Package xano provides types and the HTTP client for the Xano Metadata API.
package xano

// Result is the uniform error envelope returned by the client and by every
// tool. Presence of the "error" key is the sole success/failure discriminant;
// successful responses are passed through as whatever JSON shape the Meta API
// returned (object, array, or scalar).
type Result map[string]any

// Error builds an error envelope with the given message.
func Error(msg string) Result {
	return Result{"error": msg}
}

// IsError reports whether v is an error envelope. Only JSON objects can carry
// the "error" key; arrays and scalars are always successful payloads.
func IsError(v any) bool {
	switch m := v.(type) {
	case Result:
		_, ok := m["error"]
		return ok
	case map[string]any:
		_, ok := m["error"]
		return ok
	}
	return false
}

// Request describes a single Meta API call.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string

	// Body is sent as a JSON payload for POST/PUT/PATCH, as form fields when
	// Files are attached, and for DELETE only when non-nil.
	Body map[string]any

	// Query carries URL query parameters for GET requests.
	Query map[string]string

	// Files holds multipart attachments; only meaningful for POST.
	Files []File
}

// File is a single multipart file attachment.
type File struct {
	Field   string
	Name    string
	Content []byte
}
