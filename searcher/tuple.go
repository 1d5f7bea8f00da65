package searcher

import (
	"context"

	"gamesearch/game"

	"github.com/pkg/errors"
)

// tupleValue backs up score tuples: the player to move picks the successor that
// maximizes its own component. Successors tied for that maximum are averaged,
// the expected outcome of a uniform random tie-break, which keeps interior
// values independent of the random source and of the cache.
func (m *Minimax) tupleValue(ctx context.Context, state game.State, ply int) (game.ScoreTuple, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.metrics.ReachPly(ply)
	if err := m.assertLegal(state); err != nil {
		return nil, err
	}

	if state.IsGameOver() {
		m.metrics.AddTerminal()
		return state.GameScoreTuple(), nil
	}
	if ply >= m.depth {
		m.metrics.AddLeaf()
		return m.evaluateTuple(state), nil
	}
	if nd, ok := state.(game.Nondeterministic); ok && !nd.IsNextActionDeterministic() {
		return m.chanceTuple(ctx, nd, ply)
	}

	actions := state.AvailableActions()
	if len(actions) == 0 {
		return nil, errors.Wrapf(ErrContractViolation, "unfinished game %s has no available actions", state.Key())
	}
	m.metrics.AddNode()

	tuples := make([]game.ScoreTuple, len(actions))
	values := make([]float64, len(actions))
	scored := make([]bool, len(actions))
	mover := state.Player()
	for i, a := range actions {
		t, err := m.childTuple(ctx, state, a, ply)
		if err != nil {
			return nil, err
		}
		tuples[i], values[i], scored[i] = t, t.Of(mover), true
	}

	_, ties := m.argmax(values, scored)
	if len(ties) == 1 {
		return tuples[ties[0]], nil
	}
	tied := make([]game.ScoreTuple, len(ties))
	for i, j := range ties {
		tied[i] = tuples[j]
	}
	return game.Average(tied...), nil
}

func (m *Minimax) childTuple(ctx context.Context, state game.State, action game.Action, ply int) (game.ScoreTuple, error) {
	next := state.Copy()
	if err := advance(next, action); err != nil {
		return nil, err
	}
	return m.cachedTuple(ctx, next, ply+1)
}

func (m *Minimax) chanceTuple(ctx context.Context, state game.Nondeterministic, ply int) (game.ScoreTuple, error) {
	m.metrics.AddChance()
	outcomes := state.AvailableRandoms()
	if len(outcomes) == 0 {
		return nil, errors.Wrapf(ErrContractViolation, "chance event of %s has no outcomes", state.Key())
	}

	expected := game.NewScoreTuple(state.NumPlayers())
	for _, r := range outcomes {
		next, err := roll(state, r)
		if err != nil {
			return nil, err
		}
		t, err := m.cachedTuple(ctx, next, ply+1)
		if err != nil {
			return nil, err
		}
		expected.Add(t.Clone().Scale(state.Probability(r)))
	}
	return expected, nil
}

// cachedTuple memoizes tupleValue. Cached tuples are shared and must not be
// modified.
func (m *Minimax) cachedTuple(ctx context.Context, state game.State, ply int) (game.ScoreTuple, error) {
	key, remaining := state.Key(), m.depth-ply
	if t, ok := m.tuples.Get(key, remaining); ok {
		m.metrics.AddCacheHit()
		return t, nil
	}
	m.metrics.AddCacheMiss()

	t, err := m.tupleValue(ctx, state, ply)
	if err != nil {
		return nil, err
	}
	if len(t) != state.NumPlayers() {
		return nil, errors.Wrapf(ErrContractViolation, "state %s scored %d players, has %d", state.Key(), len(t), state.NumPlayers())
	}
	m.tuples.Put(key, remaining, t)
	return t, nil
}
