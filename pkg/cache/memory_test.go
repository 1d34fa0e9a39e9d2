package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMemoryCache(t *testing.T, maxEntries int) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(&Options{DefaultTTL: time.Minute, MaxEntries: maxEntries})
	t.Cleanup(func() { c.Close() })
	return c
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestMemoryCache_ReturnsCopy(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", value, 0))
	value[0] = 'x'

	got, _ := c.Get(ctx, "k")
	got[1] = 'y'

	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestMemoryCache_GetNotFound(t *testing.T) {
	c := newTestMemoryCache(t, 100)

	_, err := c.Get(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 20*time.Millisecond))
	time.Sleep(40 * time.Millisecond)

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryCache_Overwrite(t *testing.T) {
	c := newTestMemoryCache(t, 2)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("1"), 0)
	c.Set(ctx, "k", []byte("2"), 0)

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", string(got))

	stats, _ := c.Stats(ctx)
	assert.Equal(t, int64(1), stats.TotalKeys)
	assert.Equal(t, int64(0), stats.Evictions)
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c := newTestMemoryCache(t, 2)
	ctx := context.Background()

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)
	_, _ = c.Get(ctx, "a") // a свежее b
	c.Set(ctx, "c", []byte("3"), 0)

	_, err := c.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrKeyNotFound)
	_, err = c.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = c.Get(ctx, "c")
	assert.NoError(t, err)

	stats, _ := c.Stats(ctx)
	assert.Equal(t, int64(1), stats.Evictions)
}

func TestMemoryCache_DeleteByPattern(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	c.Set(ctx, "route:h1:shortest:1:2", []byte("x"), 0)
	c.Set(ctx, "route:h1:detour:1:2", []byte("x"), 0)
	c.Set(ctx, "route:h2:shortest:1:2", []byte("x"), 0)

	n, err := c.DeleteByPattern(ctx, "route:h1:*")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = c.Get(ctx, "route:h2:shortest:1:2")
	assert.NoError(t, err)
}

func TestMemoryCache_StatsAndClear(t *testing.T) {
	c := newTestMemoryCache(t, 100)
	ctx := context.Background()

	c.Set(ctx, "k", []byte("1234"), 0)
	c.Get(ctx, "k")
	c.Get(ctx, "missing")

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalKeys)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
	assert.Equal(t, int64(4), stats.MemoryBytes)
	assert.Equal(t, BackendMemory, stats.Backend)

	require.NoError(t, c.Clear(ctx))
	stats, _ = c.Stats(ctx)
	assert.Equal(t, int64(0), stats.TotalKeys)
}

func TestMemoryCache_Closed(t *testing.T) {
	c := NewMemoryCache(nil)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "second close is a no-op")

	ctx := context.Background()
	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheClosed)
	assert.ErrorIs(t, c.Set(ctx, "k", nil, 0), ErrCacheClosed)
	assert.ErrorIs(t, c.Delete(ctx, "k"), ErrCacheClosed)
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := newTestMemoryCache(t, 50)
	ctx := context.Background()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", (w*200+i)%80)
				c.Set(ctx, key, []byte("v"), 0)
				c.Get(ctx, key)
			}
		}(w)
	}
	wg.Wait()

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.LessOrEqual(t, stats.TotalKeys, int64(50))
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern, key string
		want         bool
	}{
		{"*", "anything", true},
		{"route:*", "route:x", true},
		{"route:*", "other:x", false},
		{"*:2", "route:1:2", true},
		{"route:*:2", "route:1:2", true},
		{"route:*:2", "route:2", false},
		{"exact", "exact", true},
		{"exact", "exactly", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchPattern(tt.pattern, tt.key), "%s vs %s", tt.pattern, tt.key)
	}
}
