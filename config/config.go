// Package config loads process configuration from environment variables.
package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds the settings the auth core and its collaborators need.
type Config struct {
	// BaseURL is the own-backend origin: requests to it never get the
	// bearer token attached through the third-party path.
	BaseURL  string `env:"BASE_URL, default=http://localhost:3000"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Cache CacheConfig
}

// CacheConfig selects and parameterizes the key-value cache backend.
type CacheConfig struct {
	// Backend is one of file, memory, redis.
	Backend string `env:"CACHE_BACKEND, default=file"`
	Dir     string `env:"CACHE_DIR, default=.lemon-mart"`

	RedisAddr   string `env:"REDIS_ADDR, default=localhost:6379"`
	RedisDB     int    `env:"REDIS_DB, default=0"`
	RedisPrefix string `env:"REDIS_PREFIX, default=lemonmart"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
