package config

import "os"

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultHost is the default interface the HTTP server binds to.
	DefaultHost = "0.0.0.0"

	// DefaultDatabaseURL points at a local PostgreSQL with the default user and no password.
	DefaultDatabaseURL = "postgres://postgres@localhost:5432/tree_life"

	// EnvDatabaseURL is the environment variable that overrides DefaultDatabaseURL.
	EnvDatabaseURL = "DATABASE_URL"
)

// ResolveDatabaseURL returns override when it is non-empty and DefaultDatabaseURL otherwise.
// The value is not validated; a malformed URL fails later when the pool is created or used.
func ResolveDatabaseURL(override string) string {
	if override != "" {
		return override
	}
	return DefaultDatabaseURL
}

// DatabaseURLFromEnv resolves the connection string from DATABASE_URL.
func DatabaseURLFromEnv() string {
	return ResolveDatabaseURL(os.Getenv(EnvDatabaseURL))
}
