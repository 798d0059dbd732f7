package cache

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
	"golang.org/x/sync/singleflight"
)

// Cache stores encoded values under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool
	Delete(ctx context.Context, key string)
}

// Loader produces the value for a missed key. A false cacheable hands the value
// to the callers without storing it.
type Loader func(ctx context.Context) (value []byte, cacheable bool, err error)

// GetOrLoad reads key from c, calling load on a miss. Concurrent misses on the same
// key share one load.
func GetOrLoad(ctx context.Context, c Cache, group *singleflight.Group, key string, ttl time.Duration, load Loader) ([]byte, error) {
	if value, found := c.Get(ctx, key); found {
		return value, nil
	}

	value, err, _ := group.Do(key, func() (any, error) {
		if value, found := c.Get(ctx, key); found {
			return value, nil
		}

		value, cacheable, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if cacheable {
			c.Set(ctx, key, value, ttl)
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

type RistrettoConfig struct {
	// MaxCost is the total size in bytes of the cached values.
	MaxCost     int64
	NumCounters int64
	BufferItems int64
}

func DefaultRistrettoConfig() *RistrettoConfig {
	return &RistrettoConfig{
		MaxCost:     64 << 20,
		NumCounters: 1e5,
		BufferItems: 64,
	}
}

var _ Cache = (*RistrettoCache)(nil)

// RistrettoCache is an in-process Cache.
type RistrettoCache struct {
	store *ristretto.Cache
}

func NewRistrettoCache(config *RistrettoConfig) (*RistrettoCache, error) {
	if config == nil {
		config = DefaultRistrettoConfig()
	}

	store, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: config.NumCounters,
		MaxCost:     config.MaxCost,
		BufferItems: config.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &RistrettoCache{store: store}, nil
}

func (c *RistrettoCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}
	return value.([]byte), true
}

// Set blocks until the write is visible to Get.
func (c *RistrettoCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	ok := c.store.SetWithTTL(key, value, int64(len(value))+1, ttl)
	c.store.Wait()
	return ok
}

func (c *RistrettoCache) Delete(_ context.Context, key string) {
	c.store.Del(key)
}

func (c *RistrettoCache) Close() {
	c.store.Close()
}
