package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full environment surface the backend recognizes.
// SUPER_ADMIN_ID is deliberately the only required value: running without it
// would mean running with no admin at all, which is a configuration error,
// not a degraded mode.
type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SuperAdminID is the single identity granted privileged actions.
	// Kept as a string and compared verbatim.
	SuperAdminID string `env:"SUPER_ADMIN_ID, required"`

	SessionTTLSeconds int `env:"SESSION_TTL_SECONDS, default=3600"`

	// Bot-level limiter: per-user admission for inbound bot events.
	RateLimitWindowMS int `env:"RATE_LIMIT_WINDOW_MS, default=60000"`
	RateLimitMax      int `env:"RATE_LIMIT_MAX,       default=30"`

	// API-level limiter: per-client admission for the HTTP surface.
	APIRateLimitWindowMS int `env:"API_RATE_LIMIT_WINDOW_MS, default=900000"`
	APIRateLimitMax      int `env:"API_RATE_LIMIT_MAX,       default=100"`

	// CacheBackendURL selects the distributed session cache. Empty means
	// memory-only mode.
	CacheBackendURL string `env:"CACHE_BACKEND_URL"`

	// MongoURI enables durable user profiles. Empty disables persistence.
	MongoURI string `env:"MONGO_URI"`
	MongoDB  string `env:"MONGO_DB, default=marketplace_bot"`

	QueueWorkers int `env:"QUEUE_WORKERS, default=8"`
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLSeconds) * time.Second
}

// RateLimitWindow returns the bot-level limiter window.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowMS) * time.Millisecond
}

// APIRateLimitWindow returns the API-level limiter window.
func (c *Config) APIRateLimitWindow() time.Duration {
	return time.Duration(c.APIRateLimitWindowMS) * time.Millisecond
}

// Load reads configuration from environment variables using go-envconfig.
// A missing SUPER_ADMIN_ID surfaces here and must stop startup.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}
