package auth

import (
	"slices"
	"strings"
)

const (
	// RoleAdmin may author and manage announcements.
	RoleAdmin = "admin"
	// RoleViewer may read the account's announcements and stats.
	RoleViewer = "viewer"
)

// Permission lists what a role may do. Paths ending in "/*" match the prefix
// and everything below it.
type Permission struct {
	AllowedMethods []string
	AllowedPaths   []string
}

// RolePermissions maps each role to its permissions.
var RolePermissions = map[string]Permission{
	RoleAdmin: {
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedPaths:   []string{"/*"},
	},
	RoleViewer: {
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedPaths:   []string{"/v1/announcements/*"},
	},
}

func checkRolePermission(role, method, path string) bool {
	perm, ok := RolePermissions[role]
	if !ok {
		return false
	}
	if !slices.Contains(perm.AllowedMethods, method) {
		return false
	}
	return matchesPathPattern(path, perm.AllowedPaths)
}

func matchesPathPattern(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == "/*" {
			return true
		}
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if path == prefix || strings.HasPrefix(path, prefix+"/") {
				return true
			}
			continue
		}
		if path == pattern {
			return true
		}
	}
	return false
}
