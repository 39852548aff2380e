package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	cache *gocache.Cache
}

// NewMemory returns the process-local fallback store. Entries honor the
// requested TTL but do not survive a restart.
func NewMemory() Cache {
	return &memoryCache{
		cache: gocache.New(time.Hour, 10*time.Minute),
	}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true, nil
	}
	return nil, false, nil
}

func (c *memoryCache) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}
