package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"detour/pkg/domain"
)

func TestRouteCache_SetGet(t *testing.T) {
	rc := NewRouteCache(newTestMemoryCache(t, 100), time.Minute)
	ctx := context.Background()

	path := &domain.Path{Vertices: []domain.VertexID{1, 2, 3}, Distance: 5}
	require.NoError(t, rc.Set(ctx, "h", KindShortest, 1, 3, path))

	got, found, err := rc.Get(ctx, "h", KindShortest, 1, 3)
	require.NoError(t, err)
	require.True(t, found)
	assert.False(t, got.Unreachable)
	assert.Equal(t, path, got.Path())
	assert.False(t, got.ComputedAt.IsZero())

	_, found, err = rc.Get(ctx, "h", KindDetour, 1, 3)
	require.NoError(t, err)
	assert.False(t, found, "kinds are cached separately")
}

func TestRouteCache_Unreachable(t *testing.T) {
	rc := NewRouteCache(newTestMemoryCache(t, 100), 0)
	ctx := context.Background()

	require.NoError(t, rc.Set(ctx, "h", KindDetour, 1, 2, nil))

	got, found, err := rc.Get(ctx, "h", KindDetour, 1, 2)
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, got.Unreachable)
	assert.Nil(t, got.Path())
}

func TestRouteCache_CorruptEntry(t *testing.T) {
	mc := newTestMemoryCache(t, 100)
	rc := NewRouteCache(mc, time.Minute)
	ctx := context.Background()

	key := BuildRouteKey("h", KindShortest, 1, 2)
	require.NoError(t, mc.Set(ctx, key, []byte("{not json"), 0))

	_, found, err := rc.Get(ctx, "h", KindShortest, 1, 2)
	require.NoError(t, err)
	assert.False(t, found)

	_, err = mc.Get(ctx, key)
	assert.ErrorIs(t, err, ErrKeyNotFound, "corrupt entry is removed")
}

func TestRouteCache_Invalidate(t *testing.T) {
	rc := NewRouteCache(newTestMemoryCache(t, 100), time.Minute)
	ctx := context.Background()

	p := &domain.Path{Vertices: []domain.VertexID{1}}
	rc.Set(ctx, "h1", KindShortest, 1, 1, p)
	rc.Set(ctx, "h1", KindDetour, 1, 1, p)
	rc.Set(ctx, "h2", KindShortest, 1, 1, p)

	n, err := rc.Invalidate(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, found, _ := rc.Get(ctx, "h2", KindShortest, 1, 1)
	assert.True(t, found)
}
