package db

import (
	"database/sql"
	"fmt"
	"time"
)

// MigrateUp creates the schema for the given driver if it does not exist.
// The UNIQUE constraint on articles.slug is the real guard behind the
// validation-time uniqueness check, which is inherently racy under
// concurrent submissions.
func MigrateUp(database *sql.DB, driver string) error {
	var statements []string
	switch driver {
	case "pgx":
		statements = []string{`
CREATE TABLE IF NOT EXISTS users (
    id            SERIAL PRIMARY KEY,
    email         TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`, `
CREATE TABLE IF NOT EXISTS articles (
    id         SERIAL PRIMARY KEY,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    title      TEXT NOT NULL,
    slug       TEXT NOT NULL UNIQUE,
    content    TEXT NOT NULL,
    image_path TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
			`CREATE INDEX IF NOT EXISTS idx_articles_user_id ON articles(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`,
		}
	case "sqlite3":
		statements = []string{`
CREATE TABLE IF NOT EXISTS users (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    email         TEXT NOT NULL UNIQUE,
    name          TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at    TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`, `
CREATE TABLE IF NOT EXISTS articles (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id    INTEGER NOT NULL REFERENCES users(id),
    title      TEXT NOT NULL,
    slug       TEXT NOT NULL UNIQUE,
    content    TEXT NOT NULL,
    image_path TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`,
			`CREATE INDEX IF NOT EXISTS idx_articles_user_id ON articles(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles(created_at DESC)`,
		}
	default:
		return fmt.Errorf("migrate: unsupported driver %q", driver)
	}

	for _, stmt := range statements {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SeedUser inserts a user if no user with that email exists yet.
// Used to provision the initial editor account on first start.
func SeedUser(database *sql.DB, driver, email, name, passwordHash string) error {
	var query string
	switch driver {
	case "pgx":
		query = `
INSERT INTO users (email, name, password_hash, created_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO NOTHING`
	case "sqlite3":
		query = `
INSERT OR IGNORE INTO users (email, name, password_hash, created_at)
VALUES (?, ?, ?, ?)`
	default:
		return fmt.Errorf("seed user: unsupported driver %q", driver)
	}

	if _, err := database.Exec(query, email, name, passwordHash, time.Now()); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}
	return nil
}
