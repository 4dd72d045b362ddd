package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable clock for TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewCache[string](5*time.Minute, clock.Now)

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", "v")
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)

	at, ok := c.FetchedAt("k")
	require.True(t, ok)
	assert.Equal(t, clock.Now(), at)

	clock.Advance(5*time.Minute - time.Second)
	_, ok = c.Get("k")
	assert.True(t, ok, "entry should be fresh just before the TTL")

	clock.Advance(time.Second)
	_, ok = c.Get("k")
	assert.False(t, ok, "entry should expire at the TTL")
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Hour, nil)
	c.Set("k", 1)
	c.Invalidate("k")

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCache_GetOrLoad(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	c := NewCache[int](time.Minute, clock.Now)
	ctx := context.Background()

	var loads int
	load := func(context.Context) (int, error) {
		loads++
		return loads * 10, nil
	}

	v, hit, err := c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 10, v)

	v, hit, err = c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 10, v)

	clock.Advance(time.Minute)
	v, hit, err = c.GetOrLoad(ctx, "k", load)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 20, v)
	assert.Equal(t, 2, loads)
}

func TestCache_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Minute, nil)
	ctx := context.Background()

	_, _, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) {
		return 0, errors.New("catalog down")
	})
	require.Error(t, err)

	v, hit, err := c.GetOrLoad(ctx, "k", func(context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 7, v)
}

func TestCache_GetOrLoadSharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Minute, nil)
	ctx := context.Background()

	var loads atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		loads.Add(1)
		<-release
		return 1, nil
	}

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.GetOrLoad(ctx, "k", load)
			assert.NoError(t, err)
			assert.Equal(t, 1, v)
		}()
	}

	// Give the goroutines a chance to pile up on the in-flight load.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestCache_GetOrLoadSurvivesCancelledCaller(t *testing.T) {
	t.Parallel()

	c := NewCache[int](time.Minute, nil)

	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return 3, nil
	}

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := c.GetOrLoad(firstCtx, "k", load)
		firstErr <- err
	}()
	<-started

	second := make(chan int, 1)
	go func() {
		v, _, err := c.GetOrLoad(context.Background(), "k", load)
		assert.NoError(t, err)
		second <- v
	}()

	cancel()
	require.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	assert.Equal(t, 3, <-second)

	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}
