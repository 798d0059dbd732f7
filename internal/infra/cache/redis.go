package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=redis.go -destination=../../../test/unit/doubles/infra/cache/redis_mock.go -package=cache -mock_names=RedisClient=MockRedisClient

// RedisClient is the subset of *redis.Client used by RedisCache.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key so several deployments can share a server.
	Prefix      string
	DialTimeout time.Duration
}

var _ Cache = (*RedisCache)(nil)

// RedisCache is a Cache shared by every server replica pointing at the same Redis.
type RedisCache struct {
	client RedisClient
	prefix string
}

func NewRedisCache(config RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        config.Addr,
		Password:    config.Password,
		DB:          config.DB,
		DialTimeout: config.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis %s: %w", config.Addr, err)
	}

	slog.Info("redis cache initialized", slog.String("addr", config.Addr), slog.Int("db", config.DB))
	return NewRedisCacheWithClient(client, config.Prefix), nil
}

func NewRedisCacheWithClient(client RedisClient, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("redis get failed", slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}
	return value, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		slog.Warn("redis set failed", slog.String("key", key), slog.Any("error", err))
		return false
	}
	return true
}

func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		slog.Warn("redis delete failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
