package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("JWT_TTL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10*time.Minute, cfg.SlotCacheTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SLOT_CACHE_TTL", "90s")
	t.Setenv("RATE_LIMIT_PER_MIN", "30")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 90*time.Second, cfg.SlotCacheTTL)
	assert.Equal(t, 30, cfg.RateLimitPerMin)
}

func TestDurationOr_FallsBackOnGarbage(t *testing.T) {
	assert.Equal(t, time.Minute, durationOr("soon", time.Minute))
	assert.Equal(t, time.Minute, durationOr("-5s", time.Minute))
	assert.Equal(t, 2*time.Hour, durationOr("2h", time.Minute))
}
