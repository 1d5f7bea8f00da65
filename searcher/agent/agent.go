package agent

import (
	"context"

	"gamesearch/config"
	"gamesearch/game"
	"gamesearch/searcher"

	"github.com/pkg/errors"
)

// Agent is what a game loop or a competition harness drives.
type Agent interface {
	Name() string
	// Reset forgets everything learned or memoized so far.
	Reset()
	// PickAction returns the action to play in state and the per-action value
	// table behind it. random allows exploratory moves; silent suppresses the
	// move log.
	PickAction(ctx context.Context, state game.State, random, silent bool) (searcher.Decision, error)
	Score(state game.State) (float64, error)
	ScoreTuple(state game.State) (game.ScoreTuple, error)
	// Train runs one training episode from state and reports whether the agent
	// changed.
	Train(state game.State) (bool, error)
	Config() config.Agent
}

// New builds the agent described by cfg. gameName is only used by remote
// agents, which have to tell the server what they play.
func New(cfg config.Agent, gameName string) (Agent, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(searcher.ErrConfiguration, "%v", err)
	}
	switch cfg.Kind {
	case config.KindRandom:
		return NewRandomAgent(cfg), nil
	case config.KindRemote:
		return NewRemoteAgent(cfg, gameName), nil
	default:
		a, err := NewMinimaxAgent(cfg)
		if err != nil {
			return nil, err
		}
		return a, nil
	}
}
