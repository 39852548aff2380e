package cache

import (
	"context"
	"time"

	"github.com/unbiaslab/unbias-backend/internal/logger"
	"github.com/unbiaslab/unbias-backend/internal/utils"
)

// Cache is a key to serialized-value store with per-entry expiry.
// Callers never learn which implementation they hold; the in-process
// fallback differs only in durability.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New connects to Redis at REDIS_ADDR. If Redis is unreachable at
// startup the process keeps running on an in-process map instead of
// failing hard; validation just loses cross-restart memoization.
func New(log *logger.Logger) Cache {
	addr := utils.GetEnv("REDIS_ADDR", "localhost:6379", log)
	c, err := NewRedis(log, addr)
	if err != nil {
		log.Warn("Redis unreachable, using in-process cache fallback", "addr", addr, "error", err)
		return NewMemory()
	}
	log.Info("Connected to Redis cache", "addr", addr)
	return c
}
