package xano

// GlobalAPI is the account-level Metadata API endpoint. Instance discovery
// (auth/me) is the only operation served here; everything else goes through
// the per-instance Meta API.
const GlobalAPI = "https://app.xano.com/api:meta"

// DefaultDomainSuffix is the domain suffix appended to an instance name to
// form its host.
const DefaultDomainSuffix = "n7c.xano.io"

// InstanceDomain returns the host for a named instance, e.g.
// "xnwv-v1z6-dvnr.n7c.xano.io". Plain concatenation: instance names are
// taken as-is, so a name containing path-breaking characters yields a bad
// host that the request layer reports as a transport error.
func InstanceDomain(instance, suffix string) string {
	if suffix == "" {
		suffix = DefaultDomainSuffix
	}
	return instance + "." + suffix
}

// MetaAPI returns the Metadata API base URL for a named instance.
func MetaAPI(instance, suffix string) string {
	return "https://" + InstanceDomain(instance, suffix) + "/api:meta"
}

// SwaggerURL returns the instance's Meta API swagger spec URL.
func SwaggerURL(instance, suffix string) string {
	return "https://" + InstanceDomain(instance, suffix) + "/apispec:meta?type=json"
}
