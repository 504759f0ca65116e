package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"APP_ENV", "DB_PATH", "PORT", "LOG_LEVEL", "LOG_FORMAT", "API_TOKEN", "CATALOG_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "./farm.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Len(t, cfg.Warnings(), 1)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DB_PATH", "/var/lib/farm.db")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("CATALOG_PATH", "catalog.yaml")

	cfg := Load()

	assert.False(t, cfg.IsDev())
	assert.Equal(t, Config{
		Env:         "prod",
		DBPath:      "/var/lib/farm.db",
		Port:        "9090",
		LogLevel:    "debug",
		LogFormat:   "json",
		APIToken:    "secret",
		CatalogPath: "catalog.yaml",
	}, cfg)
	assert.Empty(t, cfg.Warnings())
}
