// ABOUTME: Shared helpers for MCP tool handlers
// ABOUTME: Substring matching used by the list tools
package handlers

import "strings"

// matchesQuery reports whether any candidate contains the query,
// case-insensitively.
func matchesQuery(query string, candidates ...string) bool {
	q := strings.ToLower(query)
	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	return false
}
