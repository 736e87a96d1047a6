package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LIVEKIT_API_KEY", "")
	cfg := LoadConfig()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.RedisTTL)
	assert.Equal(t, 6*time.Hour, cfg.LiveKitTokenTTL)
	assert.Equal(t, 10, cfg.MessagesBatch)
	assert.False(t, cfg.LiveKitConfigured())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("REDIS_TTL", "30s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("MAX_FILE_SIZE", "1024")
	t.Setenv("LIVEKIT_API_KEY", "key")
	t.Setenv("LIVEKIT_API_SECRET", "secret")
	t.Setenv("LIVEKIT_URL", "wss://media.example.com")

	cfg := LoadConfig()

	assert.Equal(t, 30*time.Second, cfg.RedisTTL)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, int64(1024), cfg.MaxFileSize)
	assert.True(t, cfg.LiveKitConfigured())
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REDIS_TTL", "soon")
	t.Setenv("RATE_LIMIT_BURST", "many")

	cfg := LoadConfig()

	assert.Equal(t, 5*time.Minute, cfg.RedisTTL)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{DBHost: "db", DBUser: "u", DBPass: "p", DBName: "n", DBPort: "5433"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5433 sslmode=disable", cfg.PostgresDSN())
}
