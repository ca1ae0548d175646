package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

const uuidExpr = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`

// Patterns are evaluated in order from most specific to least specific.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/v1/announcements/` + uuidExpr + `$`), Template: "/v1/announcements/:id"},
	{Pattern: regexp.MustCompile(`^/v1/announcements/` + uuidExpr + `/publish$`), Template: "/v1/announcements/:id/publish"},
	{Pattern: regexp.MustCompile(`^/v1/announcements/` + uuidExpr + `/schedule$`), Template: "/v1/announcements/:id/schedule"},
	{Pattern: regexp.MustCompile(`^/v1/announcements/` + uuidExpr + `/archive$`), Template: "/v1/announcements/:id/archive"},
	{Pattern: regexp.MustCompile(`^/v1/announcements/[^/]+$`), Template: "/v1/announcements/:invalid"},
}

// NormalizePath converts paths carrying announcement IDs to templates so the
// metrics path label stays bounded.
//
//	NormalizePath("/v1/announcements/3f2504e0-4f89-11d3-9a0c-0305e82c3301")         // "/v1/announcements/:id"
//	NormalizePath("/v1/announcements/3f2504e0-4f89-11d3-9a0c-0305e82c3301/publish") // "/v1/announcements/:id/publish"
//	NormalizePath("/v1/announcements/stats")                                        // unchanged
//	NormalizePath("/v1/widget/announcements?userId=x")                              // "/v1/widget/announcements"
//	NormalizePath("/v1/announcements/not-a-uuid")                                   // "/v1/announcements/:invalid"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if path == "/v1/announcements/stats" {
		return path
	}
	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}
	return path
}
