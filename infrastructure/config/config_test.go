package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 15*time.Second, cfg.ReadTimeout)
	assert.Equal(t, "snapboard", cfg.DynamoDBTable)
	assert.Equal(t, "GSI1", cfg.IndexName)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 120, cfg.IPRateLimit)
	assert.Equal(t, 300, cfg.UserRateLimit)
	assert.True(t, cfg.EnableCORS)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("IP_RATE_LIMIT", "10")
	t.Setenv("TABLE_NAME", "snapboard-prod")

	cfg := defaults()
	cfg.applyEnv()

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10, cfg.IPRateLimit)
	assert.Equal(t, "snapboard-prod", cfg.DynamoDBTable)
}

func TestValidate(t *testing.T) {
	t.Run("production requires a jwt secret", func(t *testing.T) {
		cfg := defaults()
		cfg.Environment = "production"

		require.Error(t, cfg.Validate())

		cfg.JWTSecret = "secret"
		require.NoError(t, cfg.Validate())
	})

	t.Run("development needs no secret", func(t *testing.T) {
		cfg := defaults()
		require.NoError(t, cfg.Validate())
	})
}
