package ratelimit

import (
	"strings"
)

// unlimited is returned for endpoints that are never limited.
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
//
// Matching order: exact paths, then patterns with "*" segments (one "*"
// matches exactly one path segment), then prefixes ending in "/".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		u := unlimited
		return &u
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && config.Path == path {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.Contains(config.Path, "*") && matchSegments(config.Path, path) {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}

// matchSegments reports whether path matches pattern segment by segment.
func matchSegments(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] == "*" {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
