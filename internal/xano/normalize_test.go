package xano

import "testing"

func TestNormalizeID(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil is absent", nil, ""},
		{"plain string", "5", "5"},
		{"double-quoted string", `"5"`, "5"},
		{"single-quoted string", "'5'", "5"},
		{"mixed quotes", `"5'`, "5"},
		{"only one layer stripped", `""5""`, `"5"`},
		{"integer", 5, "5"},
		{"json number", float64(5), "5"},
		{"fractional number", 5.5, "5.5"},
		{"bool", true, "true"},
		{"empty string", "", ""},
		{"lone quote", `"`, ""},
		{"workspace slug", "x8ki-letl-twmt", "x8ki-letl-twmt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeID(tt.in); got != tt.want {
				t.Errorf("NormalizeID(%#v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIDIdempotent(t *testing.T) {
	for _, in := range []string{"5", "abc", "x8ki-letl-twmt", ""} {
		once := NormalizeID(in)
		twice := NormalizeID(once)
		if once != twice {
			t.Errorf("NormalizeID not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}
