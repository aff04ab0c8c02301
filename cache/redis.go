package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr    string
	DB      int
	Prefix  string
	Timeout time.Duration
}

// RedisStore keeps entries in Redis under a shared key prefix so Clear only
// touches entries this store owns.
type RedisStore struct {
	client *redis.Client
	prefix string
	logger Logger
}

// NewRedisStore initialises a Redis client and validates connectivity with
// a ping before returning the store.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "lemonmart"
	}

	return &RedisStore{client: client, prefix: prefix, logger: defLogger{}}, nil
}

// WithLogger overrides the store logger.
func (r *RedisStore) WithLogger(logger Logger) *RedisStore {
	if logger != nil {
		r.logger = logger
	}
	return r
}

func (r *RedisStore) key(key string) string {
	return r.prefix + ":" + key
}

func (r *RedisStore) GetString(ctx context.Context, key string) (string, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("cache: redis get: %w", err)
	}
	return raw, nil
}

func (r *RedisStore) GetJSON(ctx context.Context, key string, dest any) error {
	raw, err := r.GetString(ctx, key)
	if err != nil {
		return err
	}
	return decodeJSON(r.logger, key, raw, dest)
}

func (r *RedisStore) Set(ctx context.Context, key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.key(key), raw, 0).Err(); err != nil {
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("cache: redis del: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache: redis clear: %w", err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache: redis scan: %w", err)
	}
	return nil
}

// Close releases the underlying Redis client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

var _ Store = (*RedisStore)(nil)
