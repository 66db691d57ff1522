package ratelimit

import "strings"

// MatchEndpoint returns the route entry that governs a request, or nil when
// the default budget applies. An entry whose path and method equal the
// request wins outright. Otherwise the longest prefix entry (a path ending
// in "/") is used. An empty Method matches any method. Entries with a
// non-positive Limit mark unlimited routes.
func MatchEndpoint(path, method string, routes []EndpointConfig) *EndpointConfig {
	var best *EndpointConfig
	for i := range routes {
		route := &routes[i]
		if route.Method != "" && route.Method != method {
			continue
		}
		if route.Path == path {
			return route
		}
		if strings.HasSuffix(route.Path, "/") && strings.HasPrefix(path, route.Path) {
			if best == nil || len(route.Path) > len(best.Path) {
				best = route
			}
		}
	}
	return best
}
