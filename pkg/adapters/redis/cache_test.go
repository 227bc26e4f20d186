package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/pathfinder/pkg/adapters/redis"
	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/ports/tests"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T, opts ...redis.Option) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	cache := redis.NewFromClient(client, opts...)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestRedisCache_Contract(t *testing.T) {
	cache, _ := newCache(t)
	tests.DigestCacheContractTest(t, cache)
}

func TestRedisCache_Prefix(t *testing.T) {
	cache, mr := newCache(t, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.Fingerprint{Path: "/a", Digest: "x"}))
	assert.True(t, mr.Exists("test:/a"))
	assert.True(t, mr.Exists("test:index"))
	require.NoError(t, cache.Ping(ctx))
}

func TestRedisCache_TTL_Expiration(t *testing.T) {
	cache, mr := newCache(t, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, domain.Fingerprint{Path: "/models/box.sdf", Digest: "abc"}))

	list, err := cache.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, list, "/models/box.sdf")

	mr.FastForward(2 * time.Second)

	_, err = cache.Get(ctx, "/models/box.sdf")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	// The index is pruned by wall-clock score, which miniredis cannot fast forward.
	time.Sleep(1200 * time.Millisecond)

	list, err = cache.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	cache, mr := newCache(t)
	require.NoError(t, mr.Set("pathfinder:digest:/bad", "{not json"))

	_, err := cache.Get(context.Background(), "/bad")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
}
