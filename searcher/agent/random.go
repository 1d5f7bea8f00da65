package agent

import (
	"context"

	"gamesearch/config"
	"gamesearch/game"
	"gamesearch/searcher"

	"golang.org/x/exp/rand"
)

// RandomAgent plays uniformly random moves. It is the usual baseline opponent.
type RandomAgent struct {
	cfg  config.Agent
	rand *rand.Rand
}

func NewRandomAgent(cfg config.Agent) *RandomAgent {
	cfg = cfg.WithDefaults()
	cfg.Kind = config.KindRandom
	return &RandomAgent{cfg: cfg, rand: newRand(cfg.Seed)}
}

func (a *RandomAgent) Name() string         { return a.cfg.Name }
func (a *RandomAgent) Config() config.Agent { return a.cfg }
func (a *RandomAgent) Reset()               {}

func (a *RandomAgent) PickAction(_ context.Context, state game.State, _, _ bool) (searcher.Decision, error) {
	return explore(state, a.rand)
}

func (a *RandomAgent) Score(state game.State) (float64, error) {
	return state.GameScore(state), nil
}

func (a *RandomAgent) ScoreTuple(state game.State) (game.ScoreTuple, error) {
	return state.GameScoreTuple(), nil
}

func (a *RandomAgent) Train(state game.State) (bool, error) {
	_, err := playEpisode(a, state, a.cfg.EpisodeLength)
	return false, err
}
