package sim

import (
	"testing"

	"gamesearch/game"

	"github.com/stretchr/testify/require"
)

func colour(t *testing.T, s *State, edges ...[2]int) {
	t.Helper()
	for _, e := range edges {
		require.NoError(t, s.Advance(game.NewAction(Edge(e[0], e[1]))))
	}
}

func TestEdges(t *testing.T) {
	t.Run("edge codes are symmetric and distinct", func(t *testing.T) {
		seen := map[int]bool{}
		for a := 0; a < Nodes; a++ {
			for b := a + 1; b < Nodes; b++ {
				require.Equal(t, Edge(a, b), Edge(b, a))
				seen[Edge(a, b)] = true
			}
		}
		require.Len(t, seen, Edges)
	})

	t.Run("loops panic", func(t *testing.T) {
		require.Panics(t, func() { Edge(2, 2) })
	})
}

func TestTwoPlayers(t *testing.T) {
	t.Run("closing a triangle loses", func(t *testing.T) {
		s := New(2)
		colour(t, s, [2]int{0, 1}, [2]int{3, 4}, [2]int{1, 2}, [2]int{4, 5}, [2]int{0, 2})
		require.True(t, s.IsGameOver())
		require.Equal(t, 0, s.Loser())
		require.Equal(t, 1, s.Winner())
		require.Equal(t, game.ScoreTuple{-1, 1}, s.GameScoreTuple())
		require.Equal(t, 1.0, s.GameScore(s), "Should win from the view of the player to move")
	})

	t.Run("coloured edges are rejected", func(t *testing.T) {
		s := New(2)
		colour(t, s, [2]int{0, 1})
		require.ErrorIs(t, s.Advance(game.NewAction(Edge(1, 0))), game.ErrIllegalAction)
		require.ErrorIs(t, s.Advance(game.NewAction(Edges)), game.ErrIllegalAction)
	})
}

func TestThreePlayers(t *testing.T) {
	t.Run("first triangle eliminates, second ends the game", func(t *testing.T) {
		s := New(3)
		colour(t, s,
			[2]int{0, 1}, [2]int{3, 4}, [2]int{0, 3},
			[2]int{1, 2}, [2]int{4, 5}, [2]int{1, 3},
			[2]int{0, 2}, // player 0 closes 0-1-2
		)
		require.False(t, s.IsGameOver(), "Should play on after the first elimination")
		require.Equal(t, 0, s.Loser())
		require.Equal(t, 1, s.Player(), "Should skip nobody yet")
		require.True(t, s.IsLegalState())

		colour(t, s, [2]int{2, 5}) // player 1, no triangle
		require.Equal(t, 2, s.Player())
		colour(t, s, [2]int{2, 4}) // player 2, no triangle
		require.Equal(t, 1, s.Player(), "Should skip the eliminated player")

		colour(t, s, [2]int{3, 5}) // player 1 closes 3-4-5
		require.True(t, s.IsGameOver())
		require.Equal(t, 2, s.Winner())
		require.Equal(t, game.ScoreTuple{-1, -1, 1}, s.GameScoreTuple())
	})

	t.Run("key separates turn orders", func(t *testing.T) {
		a := New(3)
		b := New(3)
		colour(t, a, [2]int{0, 1})
		colour(t, b, [2]int{0, 1})
		require.Equal(t, a.Key(), b.Key())
		b.player = 2
		require.NotEqual(t, a.Key(), b.Key(), "Should include the player to move")
	})

	t.Run("rotation is checked", func(t *testing.T) {
		s := New(3)
		colour(t, s, [2]int{0, 1})
		require.True(t, s.IsLegalState())
		s.player = 0
		require.False(t, s.IsLegalState())
	})

	t.Run("only two or three players", func(t *testing.T) {
		require.Panics(t, func() { New(4) })
	})
}
