package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *Cache) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New(mr.Addr(), "", time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return mr, c
}

func TestSetAndGetJSON(t *testing.T) {
	_, c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Title string `json:"title"`
		Year  int    `json:"year"`
	}

	require.NoError(t, c.SetJSON(ctx, "trending:movie:1", payload{Title: "The Matrix", Year: 1999}))

	var got payload
	hit, err := c.GetJSON(ctx, "trending:movie:1", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, "The Matrix", got.Title)
	assert.Equal(t, 1999, got.Year)
}

func TestGetJSON_Miss(t *testing.T) {
	_, c := newTestCache(t)

	var got map[string]any
	hit, err := c.GetJSON(context.Background(), "nope", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestTTLExpiry(t *testing.T) {
	mr, c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "key", "value"))
	mr.FastForward(2 * time.Minute)

	var got string
	hit, err := c.GetJSON(ctx, "key", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache

	assert.NoError(t, c.SetJSON(context.Background(), "key", "value"))

	var got string
	hit, err := c.GetJSON(context.Background(), "key", &got)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Close())
}

func TestNew_Unreachable(t *testing.T) {
	_, err := New("127.0.0.1:1", "", time.Minute)
	assert.Error(t, err)
}
