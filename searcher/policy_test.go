package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArgmax(t *testing.T) {
	t.Run("skips unscored entries", func(t *testing.T) {
		m := mustMinimax(t)
		best, ties := m.argmax([]float64{1, math.NaN(), 0.5}, []bool{false, false, true})
		require.Equal(t, 0.5, best)
		require.Equal(t, []int{2}, ties)
	})

	t.Run("exact ties in enumeration order", func(t *testing.T) {
		m := mustMinimax(t)
		best, ties := m.argmax([]float64{1, 0, 1}, []bool{true, true, true})
		require.Equal(t, 1.0, best)
		require.Equal(t, []int{0, 2}, ties)
	})

	t.Run("tolerance is measured against the maximum", func(t *testing.T) {
		m := mustMinimax(t, WithTolerance(0.1))
		// 0.85 is within 0.1 of 0.9 but not of 1.0.
		_, ties := m.argmax([]float64{0.85, 0.9, 1.0}, []bool{true, true, true})
		require.Equal(t, []int{1, 2}, ties)
	})

	t.Run("nothing scored", func(t *testing.T) {
		m := mustMinimax(t)
		best, ties := m.argmax([]float64{1}, []bool{false})
		require.True(t, math.IsInf(best, -1))
		require.Empty(t, ties)
	})
}
