package agent

import (
	"context"
	"time"

	"gamesearch/config"
	"gamesearch/game"
	"gamesearch/searcher"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// MinimaxAgent plays the move found by a depth-limited minimax search.
// Two-player and one-player games use negamax; games with more players use
// the score tuple search.
type MinimaxAgent struct {
	cfg    config.Agent
	search *searcher.Minimax
	rand   *rand.Rand

	games      int
	trainMoves int64
}

// NewMinimaxAgent builds the search from cfg. Extra options are applied after
// those derived from cfg, e.g. a game specific leaf evaluator.
func NewMinimaxAgent(cfg config.Agent, options ...searcher.Option) (*MinimaxAgent, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(searcher.ErrConfiguration, "%v", err)
	}

	opts := []searcher.Option{
		searcher.WithDepth(cfg.Depth),
		searcher.WithCacheCapacity(cfg.CacheCapacity),
		searcher.WithGoroutines(cfg.Goroutines),
		searcher.WithTolerance(cfg.Tolerance),
		searcher.WithMetrics(),
	}
	if cfg.DisableCache {
		opts = append(opts, searcher.WithoutCache())
	}
	if cfg.Seed != 0 {
		opts = append(opts, searcher.WithSeed(cfg.Seed))
	}
	if cfg.Debug {
		opts = append(opts, searcher.WithDebug(true))
	}
	search, err := searcher.NewMinimax(append(opts, options...)...)
	if err != nil {
		return nil, err
	}

	return &MinimaxAgent{
		cfg:    cfg,
		search: search,
		rand:   newRand(cfg.Seed),
	}, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	// Offset so exploration does not replay the searcher's tie-break sequence.
	return rand.New(rand.NewSource(seed + 1))
}

func (a *MinimaxAgent) Name() string {
	return a.cfg.Name
}

func (a *MinimaxAgent) Config() config.Agent {
	return a.cfg
}

// Searcher exposes the underlying search, e.g. to change its depth between
// moves.
func (a *MinimaxAgent) Searcher() *searcher.Minimax {
	return a.search
}

func (a *MinimaxAgent) Reset() {
	a.search.ClearCache()
	a.games = 0
	a.trainMoves = 0
}

func (a *MinimaxAgent) PickAction(ctx context.Context, state game.State, random, silent bool) (searcher.Decision, error) {
	if random && a.cfg.Epsilon > 0 && a.rand.Float64() < a.cfg.Epsilon {
		return explore(state, a.rand)
	}

	if a.cfg.TimeBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.TimeBudget)
		defer cancel()
	}

	var decision searcher.Decision
	var err error
	if state.NumPlayers() > 2 {
		decision, err = a.search.SearchTuple(ctx, state)
	} else {
		decision, err = a.search.Search(ctx, state)
	}
	if err != nil {
		return searcher.Decision{}, errors.WithMessagef(err, "agent %s", a.cfg.Name)
	}

	if !silent {
		log.Info().
			Str("agent", a.cfg.Name).
			Str("state", state.Key()).
			Stringer("action", decision.Action).
			Float64("score", decision.Best).
			Bool("complete", decision.Complete).
			Msg("best move")
	}
	return decision, nil
}

func (a *MinimaxAgent) Score(state game.State) (float64, error) {
	return a.search.Score(state)
}

func (a *MinimaxAgent) ScoreTuple(state game.State) (game.ScoreTuple, error) {
	return a.search.ScoreTuple(state)
}

// Train only plays an episode to measure time; minimax has nothing to learn.
func (a *MinimaxAgent) Train(state game.State) (bool, error) {
	moves, err := playEpisode(a, state, a.cfg.EpisodeLength)
	a.trainMoves += int64(moves)
	if err != nil {
		return false, err
	}
	a.games++
	if a.games%100 == 0 {
		log.Warn().Str("agent", a.cfg.Name).Int("games", a.games).Msg("only dummy training (for time measurements)")
	}
	return false, nil
}

// GameNum returns the number of training episodes played.
func (a *MinimaxAgent) GameNum() int {
	return a.games
}

// TrainMoves returns the number of moves made during training.
func (a *MinimaxAgent) TrainMoves() int64 {
	return a.trainMoves
}

// explore picks a uniformly random available action.
func explore(state game.State, r *rand.Rand) (searcher.Decision, error) {
	actions := state.AvailableActions()
	if len(actions) == 0 {
		return searcher.Decision{}, errors.Wrapf(searcher.ErrContractViolation, "no action to pick in %s", state.Key())
	}
	pick := actions[r.Intn(len(actions))]
	return searcher.Decision{
		Action:   game.RandomAction(pick.Code),
		Actions:  actions,
		Values:   make([]float64, len(actions)+1),
		Complete: true,
	}, nil
}
