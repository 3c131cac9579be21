package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCachesWithinTTL(t *testing.T) {
	c := New(time.Minute)
	var loads int32
	load := func() (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		return "value", nil
	}

	v, cached, err := c.Get("k", load)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "value", v)

	v, cached, err = c.Get("k", load)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, "value", v)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestGetReloadsAfterTTL(t *testing.T) {
	c := New(10 * time.Millisecond)
	var loads int32
	load := func() (interface{}, error) {
		return atomic.AddInt32(&loads, 1), nil
	}

	_, _, err := c.Get("k", load)
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	v, cached, err := c.Get("k", load)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int32(2), v)
}

func TestGetDoesNotCacheErrors(t *testing.T) {
	c := New(time.Minute)
	calls := 0
	failing := func() (interface{}, error) {
		calls++
		return nil, errors.New("boom")
	}

	_, _, err := c.Get("k", failing)
	require.Error(t, err)

	v, cached, err := c.Get("k", func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 1, calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	c := New(time.Minute)
	var loads int32
	load := func() (interface{}, error) {
		return atomic.AddInt32(&loads, 1), nil
	}

	_, _, err := c.Get("k", load)
	require.NoError(t, err)

	c.Invalidate("k")

	v, cached, err := c.Get("k", load)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, int32(2), v)
}

func TestConcurrentMissesShareOneLoad(t *testing.T) {
	c := New(time.Minute)
	var loads int32
	load := func() (interface{}, error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(20 * time.Millisecond)
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, _, err := c.Get("k", load)
			assert.NoError(t, err)
			assert.Equal(t, "shared", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))
}

func TestKeysAreIndependent(t *testing.T) {
	c := New(time.Minute)

	a, _, err := c.Get("a", func() (interface{}, error) { return 1, nil })
	require.NoError(t, err)
	b, _, err := c.Get("b", func() (interface{}, error) { return 2, nil })
	require.NoError(t, err)

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}
