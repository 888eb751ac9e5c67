package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "articled", cfg.MongoDB.Database)
	assert.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 10.0, cfg.RateLimit.RPS)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "articles_test")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")
	t.Setenv("OIDC_ISSUER", "https://issuer.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, "articles_test", cfg.MongoDB.Database)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.True(t, cfg.RateLimit.UseRedis)
	assert.Equal(t, "https://issuer.example.com", cfg.OIDC.Issuer)
}
