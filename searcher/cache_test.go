package searcher

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCacheEntries(t *testing.T) {
	t.Run("keys are qualified by remaining depth", func(t *testing.T) {
		c, err := NewCache[float64](8)
		require.NoError(t, err)
		require.True(t, c.Put("s", 2, 1))

		_, ok := c.Get("s", 3)
		require.False(t, ok, "Should not answer for a different horizon")
		v, ok := c.Get("s", 2)
		require.True(t, ok)
		require.Equal(t, 1.0, v)
	})

	t.Run("first write wins", func(t *testing.T) {
		c, err := NewCache[float64](8)
		require.NoError(t, err)
		require.True(t, c.Put("s", 1, 1))
		require.False(t, c.Put("s", 1, -1), "Should ignore later writes")
		v, _ := c.Get("s", 1)
		require.Equal(t, 1.0, v)
	})

	t.Run("concurrent writers agree", func(t *testing.T) {
		c, err := NewCache[int](8)
		require.NoError(t, err)
		var wg sync.WaitGroup
		stored := make([]bool, 16)
		for i := range stored {
			wg.Add(1)
			go func() {
				defer wg.Done()
				stored[i] = c.Put("s", 0, i)
			}()
		}
		wg.Wait()

		winners := 0
		for _, ok := range stored {
			if ok {
				winners++
			}
		}
		require.Equal(t, 1, winners, "Should store exactly one value")
	})

	t.Run("evicts beyond capacity", func(t *testing.T) {
		c, err := NewCache[float64](2)
		require.NoError(t, err)
		c.Put("a", 0, 1)
		c.Put("b", 0, 2)
		c.Put("c", 0, 3)
		require.Equal(t, 2, c.Len())
		_, ok := c.Get("a", 0)
		require.False(t, ok, "Should evict the least recently used entry")
	})

	t.Run("purge drops entries", func(t *testing.T) {
		c, err := NewCache[float64](2)
		require.NoError(t, err)
		c.Put("a", 0, 1)
		c.Get("a", 0)
		c.Purge()
		require.Zero(t, c.Len())
		_, ok := c.Get("a", 0)
		require.False(t, ok)
	})

	t.Run("nil cache stores nothing", func(t *testing.T) {
		var c *Cache[float64]
		require.False(t, c.Put("a", 0, 1))
		_, ok := c.Get("a", 0)
		require.False(t, ok)
		require.Zero(t, c.Len())
		c.Purge()
	})

	t.Run("capacity must be positive", func(t *testing.T) {
		_, err := NewCache[float64](0)
		require.ErrorIs(t, err, ErrConfiguration)
	})
}
