package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fhuszti/blog-media-go/internal/port"
)

// Cache stores rendered media details and their ETags in Redis, each pair
// under its own TTL.
type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetMediaDetails(ctx context.Context, id string) ([]byte, error) {
	log.Printf("getting entry in cache for media #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id, false)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) SetMediaDetails(ctx context.Context, id string, raw []byte, ttl time.Duration) error {
	log.Printf("creating entry in cache for media #%s, valid for %s...", id, ttl)

	if err := c.client.Set(ctx, getCacheKey(id, false), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *Cache) GetEtagMediaDetails(ctx context.Context, id string) (string, error) {
	log.Printf("getting etag in cache for media #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id, true)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil // cache miss
	}
	if err != nil {
		return "", fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) SetEtagMediaDetails(ctx context.Context, id string, etag string, ttl time.Duration) error {
	log.Printf("creating etag in cache for media #%s...", id)

	if err := c.client.Set(ctx, getCacheKey(id, true), etag, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// DeleteMediaDetails drops both the details entry and its ETag so a stale
// pair can never be served.
func (c *Cache) DeleteMediaDetails(ctx context.Context, id string) error {
	log.Printf("deleting entry in cache for media #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id, false), getCacheKey(id, true)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string, isEtag bool) string {
	if isEtag {
		return "media:" + id + ":etag"
	}
	return "media:" + id
}
