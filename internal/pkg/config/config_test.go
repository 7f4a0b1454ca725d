package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.SessionTTL)
	assert.Equal(t, BackendMemory, cfg.SessionBackend)
	assert.Equal(t, BackendMemory, cfg.RateLimitBackend)
	assert.Equal(t, 200, cfg.AuditCapacity)
	assert.Empty(t, cfg.Mongo.URI)
	assert.False(t, cfg.UsesRedis())
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "9090",
		"SESSION_TTL":     "30m",
		"SESSION_BACKEND": "redis",
		"REDIS_ADDR":      "cache:6379",
		"MONGO_URI":       "mongodb://db:27017",
		"ENV":             "production",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.True(t, cfg.UsesRedis())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, "mongodb://db:27017", cfg.Mongo.URI)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadWith_RejectsUnknownBackend(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"RATE_LIMIT_BACKEND": "memcached",
	}))
	assert.Error(t, err)
}

func TestLoadWith_AuditCapacityBounded(t *testing.T) {
	for _, v := range []string{"201", "0", "-5"} {
		_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
			"AUDIT_CAPACITY": v,
		}))
		assert.Error(t, err, "AUDIT_CAPACITY=%s", v)
	}

	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUDIT_CAPACITY": "50",
	}))
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.AuditCapacity)
}
