package xano

import "testing"

func TestInstanceDomain(t *testing.T) {
	if got := InstanceDomain("x8ki-letl-twmt", ""); got != "x8ki-letl-twmt.n7c.xano.io" {
		t.Errorf("InstanceDomain = %q", got)
	}
	if got := InstanceDomain("abc", "custom.example.io"); got != "abc.custom.example.io" {
		t.Errorf("InstanceDomain with suffix = %q", got)
	}
}

func TestMetaAPI(t *testing.T) {
	if got := MetaAPI("abc", ""); got != "https://abc.n7c.xano.io/api:meta" {
		t.Errorf("MetaAPI = %q", got)
	}
}

func TestSwaggerURL(t *testing.T) {
	if got := SwaggerURL("abc", ""); got != "https://abc.n7c.xano.io/apispec:meta?type=json" {
		t.Errorf("SwaggerURL = %q", got)
	}
}
