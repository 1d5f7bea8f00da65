package agent

import (
	"context"

	"gamesearch/game"
	"gamesearch/searcher"

	"github.com/pkg/errors"
)

// playEpisode lets agent play against itself from a copy of state until the
// game ends or maxMoves moves were made (-1 for no limit). It returns the
// number of moves played.
func playEpisode(agent Agent, state game.State, maxMoves int) (int, error) {
	s := state.Copy()
	moves := 0
	for !s.IsGameOver() && (maxMoves < 0 || moves < maxMoves) {
		decision, err := agent.PickAction(context.Background(), s, true, true)
		if err != nil {
			return moves, err
		}
		if err := s.Advance(decision.Action); err != nil {
			return moves, errors.Wrapf(searcher.ErrContractViolation, "agent %s picked %s: %v", agent.Name(), decision.Action, err)
		}
		moves++
	}
	return moves, nil
}
