package ratelimit

import "strings"

// MatchEndpoint resolves the tier for a request. An exact path match wins
// over a prefix match, and a configured path ending in "/" is a prefix
// pattern ("/auth/" covers "/auth/candidates/login"). The longest prefix
// wins when several apply. Returns nil when no tier matches, which leaves
// the request on the default limit.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			if prefix == nil || len(c.Path) > len(prefix.Path) {
				prefix = c
			}
		}
	}
	return prefix
}
