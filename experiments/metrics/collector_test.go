package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counts concurrent events", func(t *testing.T) {
		c := NewCollector()
		c.Start(5, 4)
		var wg sync.WaitGroup
		for i := 1; i <= 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.AddNode()
				c.AddLeaf()
				c.AddCacheHit()
				c.ReachPly(i)
			}()
		}
		wg.Wait()

		m := c.Complete(true)
		require.Equal(t, 8, m.Nodes)
		require.Equal(t, 8, m.Leaves)
		require.Equal(t, 8, m.CacheHits)
		require.Equal(t, 8, m.DeepestPly, "Should keep the deepest ply")
		require.Equal(t, 5, m.Depth)
		require.Equal(t, 4, m.Goroutines)
		require.True(t, m.Complete)
	})

	t.Run("start resets counters", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1)
		c.AddTerminal()
		c.AddChance()
		c.AddCacheMiss()
		c.Start(2, 1)
		m := c.Complete(false)
		require.Zero(t, m.Terminals)
		require.Zero(t, m.ChanceNodes)
		require.Zero(t, m.CacheMisses)
		require.False(t, m.Complete)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(3, 1)
		c.AddNode()
		c.ReachPly(3)
		require.Equal(t, SearchMetric{Complete: true}, c.Complete(true))
	})
}
