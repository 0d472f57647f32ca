package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Operator access token required
)

// EndpointSecurityConfig maps exact request paths to their required security level.
var EndpointSecurityConfig = map[string]SecurityLevel{
	"/healthz": SecurityPublic,
	"/metrics": SecurityPublic,
}

// GetSecurityLevel returns the required security level for a request path
func GetSecurityLevel(path string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[path]; ok {
		return level
	}
	// Default to most restrictive for unknown endpoints
	return SecurityAccess
}
