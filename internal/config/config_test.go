package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment does not
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"TODO_CONFIG", "DATABASE_URL", "STATIC_DIR", "ADDR", "PORT",
		"DB_MAX_CONNS", "AUTO_MIGRATE", "STORE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults with only the database url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://localhost/todo")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "postgres://localhost/todo", cfg.DatabaseURL)
		assert.Equal(t, DefaultAddr, cfg.Addr)
		assert.Equal(t, DefaultStaticDir, cfg.StaticDir)
		assert.Equal(t, DefaultMaxConns, cfg.MaxConns)
		assert.True(t, cfg.AutoMigrate)
		assert.Equal(t, StorePostgres, cfg.Store)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("database url is required for postgres", func(t *testing.T) {
		clearEnv(t)

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DATABASE_URL")
	})

	t.Run("memory store needs no database url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE", StoreMemory)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, StoreMemory, cfg.Store)
	})

	t.Run("environment overrides", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://db/todo")
		t.Setenv("STATIC_DIR", "/srv/dist")
		t.Setenv("ADDR", "0.0.0.0:8080")
		t.Setenv("DB_MAX_CONNS", "3")
		t.Setenv("AUTO_MIGRATE", "false")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/srv/dist", cfg.StaticDir)
		assert.Equal(t, "0.0.0.0:8080", cfg.Addr)
		assert.Equal(t, 3, cfg.MaxConns)
		assert.False(t, cfg.AutoMigrate)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("port is used when addr is unset", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://db/todo")
		t.Setenv("PORT", "9000")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Addr)
	})

	t.Run("toml file sits between defaults and environment", func(t *testing.T) {
		clearEnv(t)
		path := writeFile(t, "todo.toml", `
database_url = "postgres://file/todo"
static_dir = "dist"
max_conns = 4
log_level = "warn"
`)
		t.Setenv("TODO_CONFIG", path)
		t.Setenv("LOG_LEVEL", "error")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "postgres://file/todo", cfg.DatabaseURL)
		assert.Equal(t, "dist", cfg.StaticDir)
		assert.Equal(t, 4, cfg.MaxConns)
		assert.Equal(t, "error", cfg.LogLevel)
		assert.Equal(t, DefaultAddr, cfg.Addr)
	})

	t.Run("missing config file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("TODO_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("invalid numbers", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://db/todo")
		t.Setenv("DB_MAX_CONNS", "many")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("non-positive pool size", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DATABASE_URL", "postgres://db/todo")
		t.Setenv("DB_MAX_CONNS", "0")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown store", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("STORE", "bolt")

		_, err := Load()
		assert.Error(t, err)
	})
}
