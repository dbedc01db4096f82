package wincache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestCache(ttl time.Duration) (*Cache[uintptr, string], *clock) {
	clk := &clock{t: time.Unix(1700000000, 0)}
	c := New[uintptr, string](ttl)
	c.now = clk.now
	return c, clk
}

func TestCacheHitWithinTTL(t *testing.T) {
	c, clk := newTestCache(250 * time.Millisecond)

	calls := 0
	fetch := func() (string, error) {
		calls++
		return "notepad.exe", nil
	}

	for i := 0; i < 5; i++ {
		v, err := c.GetOrFetch(0x1234, fetch)
		require.NoError(t, err)
		assert.Equal(t, "notepad.exe", v)
		clk.t = clk.t.Add(40 * time.Millisecond)
	}
	assert.Equal(t, 1, calls)

	clk.t = clk.t.Add(250 * time.Millisecond)
	_, err := c.GetOrFetch(0x1234, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheMissOnOtherWindow(t *testing.T) {
	c, _ := newTestCache(time.Second)
	c.Put(1, "a")

	_, ok := c.Get(2)
	assert.False(t, ok)

	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)
}

func TestCacheDoesNotStoreErrors(t *testing.T) {
	c, _ := newTestCache(time.Second)
	boom := errors.New("boom")

	_, err := c.GetOrFetch(1, func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Second)
	c.Put(1, "a")
	c.Invalidate()

	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestDefaultTTL(t *testing.T) {
	c := New[int, int](0)
	assert.Equal(t, DefaultTTL, c.ttl)
}
