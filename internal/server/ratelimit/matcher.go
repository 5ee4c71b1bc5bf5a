package ratelimit

import (
	"strings"
)

// unlimitedPaths are never rate limited.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching (e.g., "/resume/" matches "/resume/pdf").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimitedPaths[path] {
		return &EndpointConfig{Path: path, Method: method}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}
	return nil
}

// decision is the outcome of the checks that precede counting.
type decision int

const (
	decisionCount decision = iota
	decisionAllow
	decisionDeny
)

// policy resolves which limit applies to a request, or whether the request
// bypasses counting altogether.
func (c *Config) policy(clientID, path, method string) (EndpointConfig, decision) {
	if !c.Enabled || c.Whitelist[clientID] {
		return EndpointConfig{}, decisionAllow
	}
	if c.Blacklist[clientID] {
		return EndpointConfig{}, decisionDeny
	}

	ec := MatchEndpoint(path, method, c.EndpointConfigs)
	if ec == nil {
		ec = &EndpointConfig{
			Path:   path,
			Method: method,
			Limit:  c.DefaultLimit,
			Window: c.DefaultWindow,
			Burst:  c.DefaultLimit,
		}
	}
	if ec.Limit <= 0 || ec.Window <= 0 {
		return *ec, decisionAllow
	}
	return *ec, decisionCount
}
