// Package config reads service settings from the environment. A .env file in
// the working directory is loaded first when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. MAPSTYLE_LISTEN.
const Prefix = "MAPSTYLE"

type Config struct {
	Domain        string        `envconfig:"DOMAIN" default:"http://localhost:8080"`
	Listen        string        `envconfig:"LISTEN" default:":8080"`
	DatabaseDSN   string        `envconfig:"DATABASE_DSN"`
	Migrate       bool          `envconfig:"MIGRATE" default:"false"`
	Seed          bool          `envconfig:"SEED" default:"false"`
	SeedDir       string        `envconfig:"SEED_DIR" default:"./seeds"`
	PublicDir     string        `envconfig:"PUBLIC_DIR" default:"./public"`
	FontUpstream  string        `envconfig:"FONT_UPSTREAM"`
	LoaderTimeout time.Duration `envconfig:"LOADER_TIMEOUT" default:"10s"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"10m"`
}

// Load reads envFiles (default ".env") and then the environment. Missing env
// files are ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", f, err)
		}
	}

	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c, nil
}

// HasDatabase reports whether a database connection is configured.
func (c Config) HasDatabase() bool {
	return c.DatabaseDSN != ""
}
