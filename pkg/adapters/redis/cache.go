package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/pathfinder/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// noExpiry is the index score used when entries never expire (2100-01-01).
const noExpiry = 4102444800

// Cache implements ports.DigestCache using Redis.
// Each fingerprint is stored as JSON under prefix+path; a sorted set scored by
// expiry time indexes the cached paths.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for cached fingerprints.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix for cached fingerprints.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	c := &Cache{
		client: client,
		prefix: "pathfinder:digest:",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) key(path string) string {
	return c.prefix + path
}

func (c *Cache) indexKey() string {
	return c.prefix + "index"
}

// Get retrieves a fingerprint from Redis.
func (c *Cache) Get(ctx context.Context, path string) (domain.Fingerprint, error) {
	val, err := c.client.Get(ctx, c.key(path)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Fingerprint{}, domain.ErrCacheMiss
		}
		return domain.Fingerprint{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var fp domain.Fingerprint
	if err := json.Unmarshal([]byte(val), &fp); err != nil {
		return domain.Fingerprint{}, fmt.Errorf("failed to unmarshal fingerprint: %w", err)
	}
	return fp, nil
}

// Put stores the fingerprint and indexes its path.
func (c *Cache) Put(ctx context.Context, fp domain.Fingerprint) error {
	data, err := json.Marshal(fp)
	if err != nil {
		return fmt.Errorf("failed to marshal fingerprint: %w", err)
	}

	score := float64(time.Now().Add(c.ttl).Unix())
	if c.ttl == 0 {
		score = noExpiry
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, c.key(fp.Path), data, c.ttl)
	pipe.ZAdd(ctx, c.indexKey(), backend.Z{Score: score, Member: fp.Path})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Delete removes the fingerprint and its index entry.
func (c *Cache) Delete(ctx context.Context, path string) error {
	pipe := c.client.Pipeline()
	pipe.Del(ctx, c.key(path))
	pipe.ZRem(ctx, c.indexKey(), path)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// List returns cached paths, pruning index entries whose TTL has passed.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := c.client.ZRemRangeByScore(ctx, c.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired entries: %w", err)
	}

	list, err := c.client.ZRange(ctx, c.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return list, nil
}

// Ping checks connectivity to the Redis server.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
