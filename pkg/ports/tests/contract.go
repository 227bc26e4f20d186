package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pathfinder/pkg/domain"
	"github.com/aretw0/pathfinder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DigestCacheContractTest is a reusable test suite that verifies if an adapter complies with ports.DigestCache.
// The cache must be empty when passed in.
func DigestCacheContractTest(t *testing.T, cache ports.DigestCache) {
	t.Helper()
	ctx := context.Background()

	fp := domain.Fingerprint{
		Path:    "/opt/models/box/model.sdf",
		Digest:  "a9993e364706816aba3e25717850c26c9cd0d89d",
		Size:    3,
		ModTime: time.Date(2024, time.May, 1, 12, 0, 0, 123456789, time.UTC),
	}

	t.Run("Get_Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, fp.Path)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Put_Get", func(t *testing.T) {
		require.NoError(t, cache.Put(ctx, fp))

		got, err := cache.Get(ctx, fp.Path)
		require.NoError(t, err)
		assert.Equal(t, fp.Path, got.Path)
		assert.Equal(t, fp.Digest, got.Digest)
		assert.Equal(t, fp.Size, got.Size)
		assert.True(t, fp.ModTime.Equal(got.ModTime), "mod time %v != %v", got.ModTime, fp.ModTime)
	})

	t.Run("Put_Replaces", func(t *testing.T) {
		updated := fp
		updated.Digest = "da39a3ee5e6b4b0d3255bfef95601890afd80709"
		updated.Size = 0
		require.NoError(t, cache.Put(ctx, updated))

		got, err := cache.Get(ctx, fp.Path)
		require.NoError(t, err)
		assert.Equal(t, updated.Digest, got.Digest)
		assert.Equal(t, int64(0), got.Size)
	})

	t.Run("List", func(t *testing.T) {
		other := fp
		other.Path = "/opt/models/sphere/model.sdf"
		require.NoError(t, cache.Put(ctx, other))

		list, err := cache.List(ctx)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{fp.Path, other.Path}, list)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, fp.Path))
		require.NoError(t, cache.Delete(ctx, fp.Path))

		_, err := cache.Get(ctx, fp.Path)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)

		list, err := cache.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, list, fp.Path)
	})
}
