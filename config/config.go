package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - dynamo.go: DynamoDB table, index and credentials
//   - http.go: HTTP server configuration
//   - state.go: Session state backend (memory or Redis)
//   - observability.go: Metrics configuration
type AppConfig struct {
	// IsDev controls development mode behavior (template hot reloading).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Store configuration
	Dynamo DynamoConfig

	// Listing configuration
	Listing ListingConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Session state configuration
	State StateConfig
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// ListingConfig controls how the unprocessed index is paged.
type ListingConfig struct {
	// PageSize bounds the number of items returned per page.
	PageSize int `env:"JOBS_PAGE_SIZE" envDefault:"20"`
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Sanitize clamps the page size into a range the store accepts.
func (l *ListingConfig) Sanitize() {
	if l.PageSize <= 0 {
		l.PageSize = defaultPageSize
	}
	if l.PageSize > maxPageSize {
		l.PageSize = maxPageSize
	}
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Dynamo.Sanitize()
	c.Listing.Sanitize()
	c.HTTP.Sanitize()
	c.State.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
