package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := NewClient(context.Background(), Options{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewClient(context.Background(), Options{Addr: addr})
	require.Error(t, err)
}

func TestJSONCacheRoundTrip(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewJSONCache[cachedThing](client.Client, "thing:", 0)
	ctx := context.Background()

	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)

	cache.Set(ctx, "a", &cachedThing{ID: "a", Name: "first"})
	assert.True(t, mr.Exists("thing:a"))

	got, ok := cache.Get(ctx, "a")
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)

	cache.Delete(ctx, "a")
	_, ok = cache.Get(ctx, "a")
	assert.False(t, ok)
}

func TestJSONCacheTTL(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewJSONCache[cachedThing](client.Client, "thing:", time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "a", &cachedThing{ID: "a"})
	assert.Equal(t, time.Minute, mr.TTL("thing:a"))

	mr.FastForward(2 * time.Minute)
	_, ok := cache.Get(ctx, "a")
	assert.False(t, ok)
}

func TestJSONCacheIgnoresCorruptEntries(t *testing.T) {
	client, mr := newTestClient(t)
	cache := NewJSONCache[cachedThing](client.Client, "thing:", 0)

	require.NoError(t, mr.Set("thing:bad", "{not json"))
	_, ok := cache.Get(context.Background(), "bad")
	assert.False(t, ok)
}
