package postgres

// Config holds Postgres connection settings
type Config struct {
	// URL is the Postgres connection URL (e.g., postgres://localhost:5432/playerhub)
	URL string

	// Pool settings
	MaxOpenConns int
	MaxIdleConns int
}

// DefaultConfig returns sensible defaults for Postgres configuration
func DefaultConfig() Config {
	return Config{
		URL:          "postgres://localhost:5432/playerhub?sslmode=disable",
		MaxOpenConns: 20,
		MaxIdleConns: 5,
	}
}
