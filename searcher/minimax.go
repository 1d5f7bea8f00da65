package searcher

import (
	"context"
	"math"

	"gamesearch/experiments/metrics"
	"gamesearch/game"
	"gamesearch/meta"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Minimax is a depth-limited game tree search with memoized state values.
//
// Search serves one- and two-player games with negamax; SearchTuple serves any
// number of players by backward induction on score tuples. A Minimax must not
// be used by two searches at the same time; WithGoroutines parallelizes inside
// one search.
type Minimax struct {
	depth         int
	capacity      int
	goroutines    int
	tolerance     float64
	debug         bool
	evaluate      game.Evaluate
	evaluateTuple game.EvaluateTuple
	rand          *rand.Rand
	metrics       metrics.Collector

	values *Cache[float64]
	tuples *Cache[game.ScoreTuple]
}

func NewMinimax(options ...Option) (*Minimax, error) {
	m := defaults()
	for _, option := range options {
		option(m)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	if m.capacity > 0 {
		var err error
		if m.values, err = NewCache[float64](m.capacity); err != nil {
			return nil, err
		}
		if m.tuples, err = NewCache[game.ScoreTuple](m.capacity); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Minimax) validate() error {
	switch {
	case m.depth <= 0 || m.depth > meta.MaxDepthLimit:
		return errors.Wrapf(ErrConfiguration, "depth %d not in [1, %d]", m.depth, meta.MaxDepthLimit)
	case m.capacity < 0:
		return errors.Wrapf(ErrConfiguration, "negative cache capacity %d", m.capacity)
	case m.goroutines < 1:
		return errors.Wrapf(ErrConfiguration, "goroutines %d must be positive", m.goroutines)
	case m.tolerance < 0 || math.IsNaN(m.tolerance):
		return errors.Wrapf(ErrConfiguration, "invalid tolerance %g", m.tolerance)
	case m.evaluate == nil || m.evaluateTuple == nil:
		return errors.Wrap(ErrConfiguration, "missing leaf evaluator")
	case m.rand == nil:
		return errors.Wrap(ErrConfiguration, "missing random source")
	}
	return nil
}

func (m *Minimax) Depth() int {
	return m.depth
}

// SetDepth changes the search depth for subsequent searches. Cached values stay
// valid because their keys carry the remaining depth.
func (m *Minimax) SetDepth(depth int) error {
	if depth <= 0 || depth > meta.MaxDepthLimit {
		return errors.Wrapf(ErrConfiguration, "depth %d not in [1, %d]", depth, meta.MaxDepthLimit)
	}
	m.depth = depth
	return nil
}

func (m *Minimax) ClearCache() {
	m.values.Purge()
	m.tuples.Purge()
}

// CacheLen returns the number of memoized values of both searches.
func (m *Minimax) CacheLen() int {
	return m.values.Len() + m.tuples.Len()
}

// Search picks the best action for the player to move with negamax.
func (m *Minimax) Search(ctx context.Context, state game.State) (Decision, error) {
	if n := state.NumPlayers(); n > 2 {
		return Decision{}, errors.Wrapf(ErrUnsupportedPlayers, "%d players", n)
	}
	actions, err := m.rootActions(state)
	if err != nil {
		return Decision{}, err
	}

	m.metrics.Start(m.depth, m.goroutines)
	values, scored, err := scoreRoot(ctx, m.goroutines, actions, func(ctx context.Context, a game.Action) (float64, error) {
		return m.child(ctx, state, a, 0)
	})
	if err != nil {
		return Decision{}, err
	}

	best, ties := m.argmax(values, scored)
	if len(ties) == 0 {
		return Decision{}, errors.Wrapf(ctxErr(ctx), "no root action of %s finished", state.Key())
	}
	chosen := m.breakTie(ties)

	table := make([]float64, len(actions)+1)
	complete := true
	for i := range actions {
		table[i] = values[i]
		if !scored[i] {
			table[i] = math.NaN()
			complete = false
		}
	}
	table[len(actions)] = best

	if !complete {
		log.Debug().Str("state", state.Key()).Msg("search deadline reached, returning best action so far")
	}
	return Decision{
		Action:   actions[chosen],
		Actions:  actions,
		Values:   table,
		Best:     best,
		Complete: complete,
		Metric:   m.metrics.Complete(complete),
	}, nil
}

// SearchTuple picks the action maximizing the mover's own component of the
// score tuple. It works for any number of players.
func (m *Minimax) SearchTuple(ctx context.Context, state game.State) (Decision, error) {
	actions, err := m.rootActions(state)
	if err != nil {
		return Decision{}, err
	}

	m.metrics.Start(m.depth, m.goroutines)
	tuples, scored, err := scoreRoot(ctx, m.goroutines, actions, func(ctx context.Context, a game.Action) (game.ScoreTuple, error) {
		return m.childTuple(ctx, state, a, 0)
	})
	if err != nil {
		return Decision{}, err
	}

	mover := state.Player()
	values := make([]float64, len(actions))
	for i, t := range tuples {
		if scored[i] {
			values[i] = t.Of(mover)
		}
	}
	best, ties := m.argmax(values, scored)
	if len(ties) == 0 {
		return Decision{}, errors.Wrapf(ctxErr(ctx), "no root action of %s finished", state.Key())
	}
	chosen := m.breakTie(ties)

	table := make([]float64, len(actions)+1)
	complete := true
	for i := range actions {
		table[i] = values[i]
		if !scored[i] {
			table[i] = math.NaN()
			complete = false
		}
	}
	table[len(actions)] = best

	// Cached tuples are shared; callers get their own copies.
	for i, t := range tuples {
		if t != nil {
			tuples[i] = t.Clone()
		}
	}

	return Decision{
		Action:   actions[chosen],
		Actions:  actions,
		Values:   table,
		Tuples:   tuples,
		Tuple:    tuples[chosen].Clone(),
		Best:     best,
		Complete: complete,
		Metric:   m.metrics.Complete(complete),
	}, nil
}

// Score returns the negamax value of state for its player to move. Finished
// games return their terminal reward whatever the depth, also seen by the
// player who would move next, not the one who just moved.
func (m *Minimax) Score(state game.State) (float64, error) {
	if n := state.NumPlayers(); n > 2 {
		return 0, errors.Wrapf(ErrUnsupportedPlayers, "%d players", n)
	}
	return m.value(context.Background(), state, 0)
}

// ScoreTuple returns the backed-up score tuple of state.
func (m *Minimax) ScoreTuple(state game.State) (game.ScoreTuple, error) {
	t, err := m.tupleValue(context.Background(), state, 0)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

func (m *Minimax) rootActions(state game.State) ([]game.Action, error) {
	if state.IsGameOver() {
		return nil, errors.Wrapf(ErrContractViolation, "no action to pick in finished game %s", state.Key())
	}
	if nd, ok := state.(game.Nondeterministic); ok && !nd.IsNextActionDeterministic() {
		return nil, errors.Wrapf(ErrContractViolation, "state %s waits for a chance event, not a player", state.Key())
	}
	if err := m.assertLegal(state); err != nil {
		return nil, err
	}
	actions := state.AvailableActions()
	if len(actions) == 0 {
		return nil, errors.Wrapf(ErrContractViolation, "unfinished game %s has no available actions", state.Key())
	}
	return actions, nil
}

// scoreRoot evaluates every root action, in parallel when goroutines > 1. When
// ctx expires the actions already evaluated are kept and marked as scored;
// other errors abort the search.
func scoreRoot[V any](ctx context.Context, goroutines int, actions []game.Action, eval func(context.Context, game.Action) (V, error)) ([]V, []bool, error) {
	values := make([]V, len(actions))
	scored := make([]bool, len(actions))

	if goroutines <= 1 {
		for i, a := range actions {
			v, err := eval(ctx, a)
			if err != nil {
				if ctx.Err() != nil {
					break
				}
				return nil, nil, err
			}
			values[i], scored[i] = v, true
		}
		return values, scored, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(goroutines)
	for i, a := range actions {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			v, err := eval(gctx, a)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			values[i], scored[i] = v, true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return values, scored, nil
}

// ctxErr returns the context's error, or a contract violation when the context
// is still alive.
func ctxErr(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return ErrContractViolation
}

func (m *Minimax) assertLegal(state game.State) error {
	if state.IsLegalState() {
		return nil
	}
	if m.debug {
		return errors.Wrapf(ErrIllegalState, "state %s", state.Key())
	}
	log.Warn().Str("state", state.Key()).Msg("search reached an illegal state")
	return nil
}
