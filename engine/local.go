package engine

import (
	"context"
	"time"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/meta"
	"gamesearch/searcher"
	"gamesearch/searcher/agent"
	"gamesearch/utils"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// LocalEngine plays a game between in-process agents.
type LocalEngine struct {
	state    game.State
	agents   []agent.Agent
	name     string
	maxMoves int
	verbose  bool
	random   bool
}

type Option func(*LocalEngine)

// WithMaxMoves stops the game after n moves even if it is not over.
func WithMaxMoves(n int) Option {
	return func(e *LocalEngine) {
		e.maxMoves = n
	}
}

// WithGameName labels the recorded game metric.
func WithGameName(name string) Option {
	return func(e *LocalEngine) {
		e.name = name
	}
}

// Verbose logs every move.
func Verbose() Option {
	return func(e *LocalEngine) {
		e.verbose = true
	}
}

// WithExploration lets agents make exploratory moves.
func WithExploration() Option {
	return func(e *LocalEngine) {
		e.random = true
	}
}

// Local sets up a game from state. Either one agent per player is given, or a
// single agent playing all sides.
func Local(agents []agent.Agent, state game.State, options ...Option) (*LocalEngine, error) {
	if state == nil {
		return nil, errors.Wrap(searcher.ErrConfiguration, "no initial state")
	}
	if len(agents) != 1 && len(agents) != state.NumPlayers() {
		return nil, errors.Wrapf(searcher.ErrConfiguration, "%d agents for %d players", len(agents), state.NumPlayers())
	}
	e := &LocalEngine{
		state:    state.Copy(),
		agents:   agents,
		maxMoves: meta.MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	if e.maxMoves < 1 {
		return nil, errors.Wrapf(searcher.ErrConfiguration, "max moves %d must be positive", e.maxMoves)
	}
	return e, nil
}

func (e *LocalEngine) agentFor(player int) agent.Agent {
	if len(e.agents) == 1 {
		return e.agents[0]
	}
	return e.agents[player]
}

// Run executes the game loop until the game is over or the move limit is hit.
func (e *LocalEngine) Run(ctx context.Context) (Outcome, error) {
	gameMetric := metrics.GameMetric{
		ID:             uuid.NewString(),
		Game:           e.name,
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	log.Info().Str("game", e.name).Str("id", gameMetric.ID).Msgf("player %d is starting", e.state.Player())

	var history []game.Action
	var moves []metrics.MoveMetric
	for step := 1; !e.state.IsGameOver() && step <= e.maxMoves; step++ {
		if err := ctx.Err(); err != nil {
			return Outcome{}, errors.WithStack(err)
		}
		player := e.state.Player()
		a := e.agentFor(player)

		decision, err := a.PickAction(ctx, e.state.Copy(), e.random, !e.verbose)
		if err != nil {
			return Outcome{}, errors.WithMessagef(err, "move %d", step)
		}
		if err := e.play(decision.Action); err != nil {
			return Outcome{}, errors.WithMessagef(err, "agent %s at move %d", a.Name(), step)
		}

		history = append(history, decision.Action)
		moves = append(moves, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Action:       decision.Action.Code,
			Random:       decision.Action.Random,
			SearchMetric: decision.Metric,
		})
		if e.verbose {
			log.Info().Int("step", step).Int("player", player).Stringer("action", decision.Action).Str("state", e.state.Key()).Msg("played")
		}
	}

	if !e.state.IsGameOver() {
		log.Warn().Str("game", e.name).Msgf("stopped after %d moves (game not over)", e.maxMoves)
	}

	scores := e.state.GameScoreTuple()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(history)
	gameMetric.Scores = scores
	gameMetric.Winner = winner(scores)

	log.Info().Str("game", e.name).Str("id", gameMetric.ID).Int("winner", gameMetric.Winner).Int("moves", gameMetric.TotalMoves).Msg("game over")

	return Outcome{
		Final:   e.state.Copy(),
		Scores:  scores,
		Winner:  gameMetric.Winner,
		History: history,
		Game:    gameMetric,
		Moves:   moves,
	}, nil
}

// play applies action after checking it against the available actions.
func (e *LocalEngine) play(action game.Action) error {
	actions := e.state.AvailableActions()
	codes := make([]int, len(actions))
	for i, a := range actions {
		codes[i] = a.Code
	}
	if utils.FindIndex(codes, action.Code) < 0 {
		return errors.Wrapf(searcher.ErrContractViolation, "action %s not available in %s", action, e.state.Key())
	}
	if err := e.state.Advance(game.NewAction(action.Code)); err != nil {
		return errors.Wrapf(searcher.ErrContractViolation, "advance %s: %v", action, err)
	}
	return nil
}

// State returns a copy of the current position.
func (e *LocalEngine) State() game.State {
	return e.state.Copy()
}
