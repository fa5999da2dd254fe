package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Path pattern: exact, prefix ending in "/", or with "*" segments
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_*
// environment variables read with getenv.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)
	if !env.bool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.int("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env.string("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(env.string("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Remote model calls
		{Path: "/sessions/*/generate", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},

		// Headless browser launches
		{Path: "/sessions/*/export", Method: "POST", Limit: 60, Window: time.Hour, Burst: 5},

		// Session creation allocates memory held until delete
		{Path: "/sessions", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Edits
		{Path: "/sessions/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/sessions/", Method: "PUT", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/sessions/", Method: "DELETE", Limit: 600, Window: time.Minute, Burst: 60},

		// Reads use the default limit; /health is unlimited (see MatchEndpoint)
	}
}

// envReader wraps a getenv function with typed lookups that fall back to a
// default when the variable is unset or malformed.
type envReader func(string) string

func (e envReader) string(key, defaultValue string) string {
	if value := e(key); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) int(key string, defaultValue int) int {
	if value := e(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e envReader) bool(key string, defaultValue bool) bool {
	if value := e(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if value := e(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
