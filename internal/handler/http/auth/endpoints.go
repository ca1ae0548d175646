package auth

import "strings"

// PublicEndpoints lists paths served without a bearer token.
// Entries ending in '/' match by prefix.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/auth/token",
	"/v1/widget/",
	"/swagger/",
}

// IsPublicEndpoint reports whether path can be accessed without authentication.
// Non-prefix entries match exactly, with a trailing slash, or with a query string,
// so /health matches /health?x=1 but not /healthcheck.
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		if path == endpoint || path == endpoint+"/" || strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
