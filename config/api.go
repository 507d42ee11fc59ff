package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public paths (registration, login, health probe, read-only GraphQL)
	return []string{"/auth/register", "/auth/login", "/health", "/graphql"}
}
