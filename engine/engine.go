package engine

import (
	"context"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
)

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run(ctx context.Context) (Outcome, error)
}

// Outcome describes a finished (or abandoned) game.
type Outcome struct {
	Final   game.State
	Scores  game.ScoreTuple
	Winner  int // -1 if no single player has the best score
	History []game.Action
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}

// winner returns the player with the strictly best score, or -1.
func winner(scores game.ScoreTuple) int {
	bestPlayer, tied := -1, false
	for p, s := range scores {
		switch {
		case bestPlayer < 0 || s > scores[bestPlayer]:
			bestPlayer, tied = p, false
		case s == scores[bestPlayer]:
			tied = true
		}
	}
	if tied {
		return -1
	}
	return bestPlayer
}
