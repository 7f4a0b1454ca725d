package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/stampwallet/stamp-ledger/internal/core/domain"
)

// Backend names accepted by SESSION_BACKEND and RATE_LIMIT_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionTTL of 0 keeps sessions until logout.
	SessionTTL       time.Duration `env:"SESSION_TTL,        default=0"`
	SessionBackend   string        `env:"SESSION_BACKEND,    default=memory"`
	RateLimitBackend string        `env:"RATE_LIMIT_BACKEND, default=memory"`

	SeedFile   string  `env:"SEED_FILE"`
	BcryptCost int     `env:"BCRYPT_COST,        default=10"`
	LoginRate  float64 `env:"LOGIN_RATE_PER_SEC, default=1"`
	LoginBurst int     `env:"LOGIN_BURST,        default=5"`

	// AuditCapacity may only lower the per-store audit bound.
	AuditCapacity int `env:"AUDIT_CAPACITY, default=200"`

	Mongo MongoConfig
	Redis RedisConfig
}

// MongoConfig enables the audit archive when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=stamp_ledger"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// UsesRedis reports whether any component is configured to use Redis.
func (c *Config) UsesRedis() bool {
	return c.SessionBackend == BackendRedis || c.RateLimitBackend == BackendRedis
}

// IsDevelopment enables human-readable logs.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration from an arbitrary lookuper and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for name, v := range map[string]string{
		"SESSION_BACKEND":    c.SessionBackend,
		"RATE_LIMIT_BACKEND": c.RateLimitBackend,
	} {
		if v != BackendMemory && v != BackendRedis {
			return fmt.Errorf("%s must be %q or %q, got %q", name, BackendMemory, BackendRedis, v)
		}
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SESSION_TTL must not be negative")
	}
	if c.AuditCapacity < 1 || c.AuditCapacity > domain.DefaultAuditCapacity {
		return fmt.Errorf("AUDIT_CAPACITY must be between 1 and %d, got %d", domain.DefaultAuditCapacity, c.AuditCapacity)
	}
	return nil
}
