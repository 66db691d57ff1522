package ratelimit

import (
	"strings"
	"time"
)

// Unlimited as an EndpointConfig limit exempts the route from limiting.
const Unlimited = 0

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// NewConfig builds a configuration that allows extractPerMinute extraction
// requests per client per minute. Other endpoints get ten times that budget.
// A non-positive extractPerMinute disables limiting.
func NewConfig(extractPerMinute int) *Config {
	if extractPerMinute <= 0 {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    extractPerMinute * 10,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(extractPerMinute),
	}
}

// DefaultEndpointConfigs returns the route table for the extraction API.
func DefaultEndpointConfigs(extractPerMinute int) []EndpointConfig {
	burst := max(1, extractPerMinute/10)
	return []EndpointConfig{
		// Extraction may call the AI provider
		{Path: "/v1/extract", Method: "POST", Limit: extractPerMinute, Window: time.Minute, Burst: burst},
		{Path: "/health", Method: "GET", Limit: Unlimited},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	for _, ip := range strings.Split(list, ",") {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}
