// Package config loads application configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Neo4j holds the graph store connection settings.
type Neo4j struct {
	URI            string `env:"URI"`
	Username       string `env:"USERNAME" envDefault:"neo4j"`
	Password       string `env:"PASSWORD"`
	Database       string `env:"DATABASE" envDefault:"neo4j"`
	MaxPoolSize    int    `env:"MAX_POOL_SIZE" envDefault:"50"`
	TimeoutSeconds int    `env:"TIMEOUT_SECONDS" envDefault:"10"`
}

// Config is the full application configuration.
type Config struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	Port        string `env:"APP_PORT" envDefault:"8080"`
	CatalogPath string `env:"CATALOG_PATH" envDefault:"data/catalog.json"`
	Neo4j       Neo4j  `envPrefix:"NEO4J_"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the app runs in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}
