package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/redis/go-redis/v9"
	"github.com/shubham23mamgain/bringit/domain"
	"github.com/shubham23mamgain/bringit/internal/logging"
)

const keyPrefix = "product:"

// RedisProductCache implements domain.ProductCache on redis. Cache failures
// are logged and treated as misses.
type RedisProductCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger log.Logger
}

// NewRedisProductCache creates a product cache with the given entry TTL
func NewRedisProductCache(client redis.Cmdable, ttl time.Duration, logger log.Logger) *RedisProductCache {
	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logging.Component(logger, "product_cache"),
	}
}

// Get implements domain.ProductCache
func (c *RedisProductCache) Get(ctx context.Context, id string) (*domain.Product, bool) {
	raw, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			_ = level.Warn(c.logger).Log("msg", "cache get failed", "id", id, "err", err)
		}
		return nil, false
	}
	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		_ = level.Warn(c.logger).Log("msg", "cache entry corrupt", "id", id, "err", err)
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &product, true
}

// Set implements domain.ProductCache
func (c *RedisProductCache) Set(ctx context.Context, product *domain.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, keyPrefix+product.ID, raw, c.ttl).Err(); err != nil {
		_ = level.Warn(c.logger).Log("msg", "cache set failed", "id", product.ID, "err", err)
	}
}

// Invalidate implements domain.ProductCache
func (c *RedisProductCache) Invalidate(ctx context.Context, id string) {
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		_ = level.Warn(c.logger).Log("msg", "cache invalidate failed", "id", id, "err", err)
	}
}

// NoopProductCache never stores anything; used when redis is not configured
type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, string) (*domain.Product, bool) { return nil, false }
func (NoopProductCache) Set(context.Context, *domain.Product)                {}
func (NoopProductCache) Invalidate(context.Context, string)                  {}

var (
	_ domain.ProductCache = (*RedisProductCache)(nil)
	_ domain.ProductCache = NoopProductCache{}
)
