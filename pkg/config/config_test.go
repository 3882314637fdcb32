package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "postgres", cfg.DatabaseDriver)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 2, cfg.ExtractMinInputLen)
	assert.Equal(t, 500, cfg.ExtractMaxInputLen)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/test.db")
	t.Setenv("GEMINI_TIMEOUT", "10s")
	t.Setenv("EXTRACT_MAX_INPUT_LEN", "1000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "/tmp/test.db", cfg.SQLitePath)
	assert.Equal(t, 10*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, 1000, cfg.ExtractMaxInputLen)
}

func TestLoad_IgnoresInvalidNumbers(t *testing.T) {
	t.Setenv("EXTRACT_MIN_INPUT_LEN", "not-a-number")
	t.Setenv("GEMINI_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.ExtractMinInputLen)
	assert.Equal(t, 45*time.Second, cfg.GeminiTimeout)
}
