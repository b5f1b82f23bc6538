package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost:5432/quicktalk")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 10, cfg.AsynqConcurrency)
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DB_URL", "unused")
	require.NoError(t, os.Unsetenv("DB_URL"))
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	_, err := Load()
	assert.Error(t, err)
}
