package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, 0)
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)
}

func TestExpiration(t *testing.T) {
	c := New[string, string]()
	c.Set("k", "v", 10*time.Millisecond)

	_, ok := c.Get("k")
	require.True(t, ok)

	orig := now
	now = func() time.Time { return orig().Add(20 * time.Millisecond) }
	defer func() { now = orig }()

	_, ok = c.Get("k")
	require.False(t, ok)

	c.PurgeExpired()
	require.Equal(t, 0, c.Len())
}

func TestDeleteAndClear(t *testing.T) {
	c := New[string, int]()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Equal(t, 1, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())
}
