package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedAuthor struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	c := NewRedisCache(srv.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Connect(context.Background()))
	return c, srv
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	var got cachedAuthor
	found, err := c.Get(ctx, "author:1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "author:1", cachedAuthor{ID: 1, Name: "Лев"}, time.Minute))

	found, err = c.Get(ctx, "author:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedAuthor{ID: 1, Name: "Лев"}, got)
}

func TestRedisCacheTTL(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", time.Second))
	srv.FastForward(2 * time.Second)

	var s string
	found, err := c.Get(ctx, "k", &s)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheDeletePattern(t *testing.T) {
	c, srv := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"author:1", "author:2", "quote:1"} {
		require.NoError(t, c.Set(ctx, k, `{}`, time.Minute))
	}
	require.NoError(t, c.DeletePattern(ctx, "author:*"))

	assert.False(t, srv.Exists("author:1"))
	assert.False(t, srv.Exists("author:2"))
	assert.True(t, srv.Exists("quote:1"))
}

func TestRedisCachePingFailsWhenServerDown(t *testing.T) {
	c, srv := newTestCache(t)
	srv.Close()
	assert.Error(t, c.Ping(context.Background()))
}
