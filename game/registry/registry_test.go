package registry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	t.Run("every registered game starts legal", func(t *testing.T) {
		for _, name := range Names() {
			s, err := New(name)
			require.NoError(t, err, name)
			require.False(t, s.IsGameOver(), "Should start %s unfinished", name)
			require.True(t, s.IsLegalState(), "Should start %s legal", name)
		}
	})

	t.Run("unknown games", func(t *testing.T) {
		_, err := New("chess")
		require.ErrorIs(t, err, ErrUnknownGame)
		_, err = Parse("chess", "")
		require.ErrorIs(t, err, ErrUnknownGame)
	})

	t.Run("parses positions", func(t *testing.T) {
		s, err := Parse("tictactoe", "X---O----")
		require.NoError(t, err)
		require.Equal(t, "X---O----:0", s.Key())

		s, err = Parse("nim3", "")
		require.NoError(t, err)
		require.Equal(t, 3, s.NumPlayers())

		_, err = Parse("sim", "---")
		require.Error(t, err, "Should not parse games without a position format")
	})
}
