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

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "./data/vestra.db", cfg.DBPath)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 10*time.Second, cfg.QuoteTTL)
	assert.Equal(t, 100*time.Second, cfg.HistoryTTL)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, time.Minute, cfg.RefreshInterval)
	assert.True(t, cfg.RefreshEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("QUOTE_TTL", "30s")
	t.Setenv("REFRESH_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.QuoteTTL)
	assert.False(t, cfg.RefreshEnabled)
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("QUOTE_TTL", "not-a-duration")

	_, err := Load()
	assert.Error(t, err)
}
