package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults on empty config", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, ""))
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.App.Environment)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, 8080, cfg.HTTP.Port)
		assert.Equal(t, "memory", cfg.Storage.Backend)
		assert.Equal(t, 0.30, cfg.Pricing.ProfitMargin)
		assert.Equal(t, 30, cfg.Reorder.VMDWindowDays)
		assert.Equal(t, 6, cfg.Reorder.FEFOPolicyMonths)
	})

	t.Run("reads values from file", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
[app]
environment = "production"

[http]
port = 9090

[storage]
backend = "sqlite"

[storage.sqlite]
path = "/tmp/test.db"

[pricing]
profit_margin = 0.45
`))
		require.NoError(t, err)

		assert.Equal(t, "production", cfg.App.Environment)
		assert.Equal(t, "json", cfg.Log.Format, "production default")
		assert.Equal(t, 9090, cfg.HTTP.Port)
		assert.Equal(t, "sqlite", cfg.Storage.Backend)
		assert.Equal(t, "/tmp/test.db", cfg.Storage.SQLite.Path)
		assert.Equal(t, 0.45, cfg.Pricing.ProfitMargin)
		assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	})

	t.Run("environment variables override file", func(t *testing.T) {
		t.Setenv("REDSALUD_HTTP_PORT", "7777")

		cfg, err := Load(writeConfig(t, "[http]\nport = 9090\n"))
		require.NoError(t, err)
		assert.Equal(t, 7777, cfg.HTTP.Port)
	})

	t.Run("rejects unknown storage backend", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[storage]\nbackend = \"etcd\"\n"))
		assert.Error(t, err)
	})

	t.Run("rejects out-of-range port", func(t *testing.T) {
		_, err := Load(writeConfig(t, "[http]\nport = 70000\n"))
		assert.Error(t, err)
	})
}
