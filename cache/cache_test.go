package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byteCost(b []byte) int64 { return int64(len(b)) }

func TestSetGet(t *testing.T) {
	c, err := New("responses", 1<<20, byteCost)
	require.NoError(t, err)
	defer c.Close()

	body := []byte(`{"cars":[]}`)
	c.Set("/api/cars?page=1", body, time.Minute)
	c.Wait()

	got, ok := c.Get("/api/cars?page=1")
	require.True(t, ok)
	assert.Equal(t, body, got)

	_, ok = c.Get("/api/cars?page=2")
	assert.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c, err := New("responses", 1<<20, byteCost)
	require.NoError(t, err)
	defer c.Close()

	c.Set("k", []byte("v"), 10*time.Millisecond)
	c.Wait()

	require.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestDelAndClear(t *testing.T) {
	c, err := New("responses", 1<<20, byteCost)
	require.NoError(t, err)
	defer c.Close()

	c.Set("a", []byte("1"), time.Minute)
	c.Set("b", []byte("2"), time.Minute)
	c.Wait()

	c.Del("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Clear()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestStats(t *testing.T) {
	c, err := New("responses", 1<<20, byteCost)
	require.NoError(t, err)
	defer c.Close()

	c.Set("a", []byte("hello"), time.Minute)
	c.Wait()
	c.Get("a")
	c.Get("missing")

	s := c.Stats()
	assert.Equal(t, "responses", s.Name)
	assert.Equal(t, uint64(1), s.Hits)
	assert.Equal(t, uint64(1), s.Misses)
	assert.InDelta(t, 0.5, s.HitRate, 0.001)
	assert.Equal(t, int64(1), s.Items)
	assert.Equal(t, int64(5), s.CostUsed)
}
