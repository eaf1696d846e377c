package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) *RedisCache {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return NewRedisCache(mr.Addr(), "", 0)
}

func TestLikeCountMissThenHit(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	_, hit, err := c.GetLikeCount(ctx, 42)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetLikeCount(ctx, 42, 5))

	n, hit, err := c.GetLikeCount(ctx, 42)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(5), n)
}

func TestLikeCountIncrDecr(t *testing.T) {
	c := setupCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetLikeCount(ctx, 1, 2))
	require.NoError(t, c.IncrLikeCount(ctx, 1))
	require.NoError(t, c.IncrLikeCount(ctx, 1))
	require.NoError(t, c.DecrLikeCount(ctx, 1))

	n, hit, err := c.GetLikeCount(ctx, 1)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, int64(3), n)
}
