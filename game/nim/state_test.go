package nim

import (
	"testing"

	"gamesearch/game"

	"github.com/stretchr/testify/require"
)

func TestNim(t *testing.T) {
	t.Run("actions are capped by the pile", func(t *testing.T) {
		s := New(2, 2, 3)
		require.Equal(t, []game.Action{game.NewAction(1), game.NewAction(2)}, s.AvailableActions())
	})

	t.Run("taking the last token wins", func(t *testing.T) {
		s := New(2, 4, 3)
		require.NoError(t, s.Advance(game.NewAction(1)))
		require.NoError(t, s.Advance(game.NewAction(3)))
		require.True(t, s.IsGameOver())
		require.Equal(t, 1, s.Winner())
		require.Equal(t, 0, s.Player())
		require.Equal(t, -1.0, s.GameScore(s), "Should lose from the view of the player left without tokens")
		require.Equal(t, game.ScoreTuple{-1, 1}, s.GameScoreTuple())
	})

	t.Run("three players split the loss", func(t *testing.T) {
		s := New(3, 3, 3)
		require.NoError(t, s.Advance(game.NewAction(1)))
		require.NoError(t, s.Advance(game.NewAction(2)))
		require.Equal(t, 1, s.Winner())
		require.Equal(t, game.ScoreTuple{-0.5, 1, -0.5}, s.GameScoreTuple())
	})

	t.Run("illegal takes are rejected", func(t *testing.T) {
		s := New(2, 2, 3)
		require.ErrorIs(t, s.Advance(game.NewAction(0)), game.ErrIllegalAction)
		require.ErrorIs(t, s.Advance(game.NewAction(3)), game.ErrIllegalAction)
		require.NoError(t, s.Advance(game.NewAction(2)))
		require.ErrorIs(t, s.Advance(game.NewAction(1)), game.ErrIllegalAction)
	})

	t.Run("key carries pile and player", func(t *testing.T) {
		s := New(3, 10, 3)
		require.Equal(t, "10/3:0", s.Key())
		require.NoError(t, s.Advance(game.NewAction(2)))
		require.Equal(t, "8/3:1", s.Key())
		require.True(t, s.IsLegalState())
	})

	t.Run("invalid setups panic", func(t *testing.T) {
		require.Panics(t, func() { New(0, 10, 3) })
		require.Panics(t, func() { New(2, 0, 3) })
		require.Panics(t, func() { New(2, 10, 0) })
	})
}
