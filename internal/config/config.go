// Package config loads the application configuration.
// Values come from an optional YAML file, with environment variables
// taking precedence, falling back to built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgcfg "pressroom/pkg/config"
)

// Config is the full application configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Session  SessionConfig  `yaml:"session"`
	Seed     SeedConfig     `yaml:"seed"`
	Sweep    SweepConfig    `yaml:"sweep"`
}

// DatabaseConfig selects the database backend.
type DatabaseConfig struct {
	// Driver is "pgx" (PostgreSQL) or "sqlite3".
	Driver string `yaml:"driver"`
	// DSN is the connection string (DATABASE_URL).
	DSN string `yaml:"dsn"`
}

// StorageConfig configures the image blob store.
type StorageConfig struct {
	// Dir is the local directory uploads are written to.
	Dir string `yaml:"dir"`
	// BaseURL is the public URL prefix the directory is served under.
	BaseURL string `yaml:"base_url"`
}

// SessionConfig configures the signed session cookies.
type SessionConfig struct {
	// Secret signs session tokens. Must be at least 32 characters.
	Secret string `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// SeedConfig provisions the initial editor account on first start.
type SeedConfig struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
}

// SweepConfig configures the orphaned-upload sweeper.
type SweepConfig struct {
	// Schedule is a cron expression; empty disables the sweeper.
	Schedule string `yaml:"schedule"`
}

// Load builds the configuration. A YAML file named by CONFIG_FILE
// (default "config.yaml", skipped when absent) overrides the defaults,
// and environment variables override the file.
func Load() (*Config, error) {
	cfg := &Config{
		Addr: ":8080",
		Database: DatabaseConfig{
			Driver: "pgx",
		},
		Storage: StorageConfig{
			Dir:     "data/uploads",
			BaseURL: "/storage",
		},
		Session: SessionConfig{
			TTL: 12 * time.Hour,
		},
		Sweep: SweepConfig{
			Schedule: "30 4 * * *",
		},
	}

	path := pkgcfg.GetEnvString("CONFIG_FILE", "config.yaml")
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Running on env vars and defaults alone is fine.
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	cfg.Addr = pkgcfg.GetEnvString("HTTP_ADDR", cfg.Addr)
	cfg.Database.Driver = pkgcfg.GetEnvString("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.DSN = pkgcfg.GetEnvString("DATABASE_URL", cfg.Database.DSN)
	cfg.Storage.Dir = pkgcfg.GetEnvString("STORAGE_DIR", cfg.Storage.Dir)
	cfg.Storage.BaseURL = pkgcfg.GetEnvString("STORAGE_BASE_URL", cfg.Storage.BaseURL)
	cfg.Session.Secret = pkgcfg.GetEnvString("SESSION_SECRET", cfg.Session.Secret)
	cfg.Session.TTL = pkgcfg.GetEnvDuration("SESSION_TTL", cfg.Session.TTL)
	cfg.Seed.Email = pkgcfg.GetEnvString("SEED_EMAIL", cfg.Seed.Email)
	cfg.Seed.Name = pkgcfg.GetEnvString("SEED_NAME", cfg.Seed.Name)
	cfg.Seed.Password = pkgcfg.GetEnvString("SEED_PASSWORD", cfg.Seed.Password)
	cfg.Sweep.Schedule = pkgcfg.GetEnvString("SWEEP_SCHEDULE", cfg.Sweep.Schedule)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.DSN == "" {
		return fmt.Errorf("config: database DSN is required (set DATABASE_URL)")
	}
	if c.Database.Driver != "pgx" && c.Database.Driver != "sqlite3" {
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("config: session secret must be at least 32 characters (256 bits)")
	}
	// Reject the obvious weak secrets outright.
	weak := map[string]bool{"secret": true, "password": true, "changeme": true}
	if weak[c.Session.Secret] {
		return fmt.Errorf("config: session secret must not be a common weak value")
	}
	return nil
}
