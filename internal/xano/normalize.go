package xano

import (
	"github.com/spf13/cast"
)

// NormalizeID converts a heterogeneous identifier value into its canonical
// string form for URL path construction. Upstream callers do not enforce a
// strict schema, so an id may arrive as a number, a plain string, or a
// quoted string ("5" passed as the literal `"5"`).
//
//   - nil → "" (field not supplied; callers treat "" as absent)
//   - string → one layer of leading/trailing single- or double-quote
//     characters stripped, otherwise unchanged
//   - anything else → canonical decimal/string representation
//
// Identifier content is not validated: a value containing path separators
// produces a malformed URL that the remote server rejects, surfaced through
// the normal non-200 error envelope.
func NormalizeID(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return trimQuotes(s)
	}
	return cast.ToString(v)
}

// trimQuotes strips at most one leading and one trailing quote character.
func trimQuotes(s string) string {
	if len(s) > 0 && (s[0] == '"' || s[0] == '\'') {
		s = s[1:]
	}
	if n := len(s); n > 0 && (s[n-1] == '"' || s[n-1] == '\'') {
		s = s[:n-1]
	}
	return s
}
