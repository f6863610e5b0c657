package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CONFIG_FILE", "HTTP_ADDR", "DB_DRIVER", "DATABASE_URL",
		"STORAGE_DIR", "STORAGE_BASE_URL", "SESSION_SECRET", "SESSION_TTL",
		"SEED_EMAIL", "SEED_NAME", "SEED_PASSWORD", "SWEEP_SCHEDULE",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("DATABASE_URL", "postgres://localhost/pressroom")
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "data/uploads", cfg.Storage.Dir)
	assert.Equal(t, "/storage", cfg.Storage.BaseURL)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "30 4 * * *", cfg.Sweep.Schedule)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
addr: ":9000"
database:
  driver: sqlite3
  dsn: file:press.db
session:
  secret: ` + testSecret + `
  ttl: 1h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7000")

	cfg, err := Load()
	require.NoError(t, err)

	// Env beats file, file beats default.
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "file:press.db", cfg.Database.DSN)
	assert.Equal(t, time.Hour, cfg.Session.TTL)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		env    map[string]string
		errSub string
	}{
		{
			name:   "missing DSN",
			env:    map[string]string{"SESSION_SECRET": testSecret},
			errSub: "DSN is required",
		},
		{
			name: "unsupported driver",
			env: map[string]string{
				"DATABASE_URL":   "x",
				"DB_DRIVER":      "oracle",
				"SESSION_SECRET": testSecret,
			},
			errSub: "unsupported database driver",
		},
		{
			name: "short secret",
			env: map[string]string{
				"DATABASE_URL":   "x",
				"SESSION_SECRET": "short",
			},
			errSub: "at least 32 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSub)
		})
	}
}
