package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tenantbot/api-registry/internal/domain"
)

const (
	// generationKey counts invalidations. Listings are stored per generation.
	generationKey = "registry:apis:generation"
	listKeyPrefix = "registry:apis:all:"
)

func listKey(gen int64) string {
	return listKeyPrefix + strconv.FormatInt(gen, 10)
}

// DefaultTTL applies when a non-positive TTL is configured.
const DefaultTTL = 60 * time.Second

// ListCache caches the full API listing. Each listing is keyed by the
// generation that was current before the database was read, so a listing
// computed before an Invalidate is written where no later reader looks.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to the Redis server at redisURL and verifies it with PING.
func New(ctx context.Context, redisURL string, ttl time.Duration) (*ListCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.PoolTimeout = 4 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewWithClient(client, ttl), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// Generation returns the current listing generation. A missing counter is
// generation 0.
func (c *ListCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation failed: %w", err)
	}
	return gen, nil
}

// Get returns the listing cached for gen. A missing key is (nil, false, nil).
func (c *ListCache) Get(ctx context.Context, gen int64) ([]domain.API, bool, error) {
	key := listKey(gen)
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var apis []domain.API
	if err := json.Unmarshal(data, &apis); err != nil {
		c.client.Del(ctx, key)
		return nil, false, fmt.Errorf("failed to unmarshal cached listing: %w", err)
	}
	return apis, true, nil
}

// Set stores apis for gen with the configured TTL. gen must have been read
// with Generation before the listing was loaded.
func (c *ListCache) Set(ctx context.Context, gen int64, apis []domain.API) error {
	if apis == nil {
		apis = []domain.API{}
	}
	data, err := json.Marshal(apis)
	if err != nil {
		return fmt.Errorf("failed to marshal listing: %w", err)
	}
	return c.client.Set(ctx, listKey(gen), data, c.ttl).Err()
}

// Invalidate advances the generation and drops the previous generation's
// listing.
func (c *ListCache) Invalidate(ctx context.Context) error {
	gen, err := c.client.Incr(ctx, generationKey).Result()
	if err != nil {
		return fmt.Errorf("redis incr generation failed: %w", err)
	}
	return c.client.Del(ctx, listKey(gen-1)).Err()
}

// Ping checks connectivity for readiness probes.
func (c *ListCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *ListCache) Close() error {
	return c.client.Close()
}
