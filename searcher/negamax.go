package searcher

import (
	"context"
	"math"

	"gamesearch/game"

	"github.com/pkg/errors"
)

// value returns the negamax value of state for its player to move. ply counts
// the actions applied since the root; the call stack grows by one frame per ply.
func (m *Minimax) value(ctx context.Context, state game.State, ply int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.metrics.ReachPly(ply)
	if err := m.assertLegal(state); err != nil {
		return 0, err
	}

	if state.IsGameOver() {
		m.metrics.AddTerminal()
		return state.GameScore(state), nil
	}
	if ply >= m.depth {
		m.metrics.AddLeaf()
		return m.evaluate(state), nil
	}
	if nd, ok := state.(game.Nondeterministic); ok && !nd.IsNextActionDeterministic() {
		return m.chanceValue(ctx, nd, ply)
	}

	actions := state.AvailableActions()
	if len(actions) == 0 {
		return 0, errors.Wrapf(ErrContractViolation, "unfinished game %s has no available actions", state.Key())
	}
	m.metrics.AddNode()

	best := math.Inf(-1)
	for _, a := range actions {
		v, err := m.child(ctx, state, a, ply)
		if err != nil {
			return 0, err
		}
		if v > best {
			best = v
		}
	}
	return best, nil
}

// child returns the value of playing action in state, seen by state's player
// to move.
func (m *Minimax) child(ctx context.Context, state game.State, action game.Action, ply int) (float64, error) {
	next := state.Copy()
	if err := advance(next, action); err != nil {
		return 0, err
	}
	v, err := m.cachedValue(ctx, next, ply+1)
	if err != nil {
		return 0, err
	}
	return relative(state, next, v)
}

// chanceValue is the probability weighted value over the outcomes of a chance
// event, seen by the player to move at state.
func (m *Minimax) chanceValue(ctx context.Context, state game.Nondeterministic, ply int) (float64, error) {
	m.metrics.AddChance()
	outcomes := state.AvailableRandoms()
	if len(outcomes) == 0 {
		return 0, errors.Wrapf(ErrContractViolation, "chance event of %s has no outcomes", state.Key())
	}

	expected := 0.0
	for _, r := range outcomes {
		next, err := roll(state, r)
		if err != nil {
			return 0, err
		}
		v, err := m.cachedValue(ctx, next, ply+1)
		if err != nil {
			return 0, err
		}
		if v, err = relative(state, next, v); err != nil {
			return 0, err
		}
		expected += state.Probability(r) * v
	}
	return expected, nil
}

// cachedValue memoizes value by state key and remaining depth. The stored value
// is the state's own, so parents of either side can share it.
func (m *Minimax) cachedValue(ctx context.Context, state game.State, ply int) (float64, error) {
	key, remaining := state.Key(), m.depth-ply
	if v, ok := m.values.Get(key, remaining); ok {
		m.metrics.AddCacheHit()
		return v, nil
	}
	m.metrics.AddCacheMiss()

	v, err := m.value(ctx, state, ply)
	if err != nil {
		return 0, err
	}
	m.values.Put(key, remaining, v)
	return v, nil
}

// relative converts the value v of child, seen by child's player to move, to the
// view of parent's player to move.
func relative(parent, child game.State, v float64) (float64, error) {
	if parent.Player() == child.Player() {
		return v, nil
	}
	switch parent.NumPlayers() {
	case 1:
		return v, nil
	case 2:
		return -v, nil // negamax
	default:
		return 0, errors.Wrapf(ErrUnsupportedPlayers, "%d players", parent.NumPlayers())
	}
}

// advance applies a player's action to state. For games with chance events only
// the deterministic part is applied; the chance event becomes its own node.
func advance(state game.State, action game.Action) error {
	var err error
	if nd, ok := state.(game.Nondeterministic); ok {
		err = nd.AdvanceDeterministic(action)
	} else {
		err = state.Advance(action)
	}
	if err != nil {
		return errors.Wrapf(ErrContractViolation, "available action %s rejected: %v", action, err)
	}
	return nil
}

// roll returns a copy of state after the chance outcome r.
func roll(state game.Nondeterministic, r game.Action) (game.State, error) {
	next, ok := state.Copy().(game.Nondeterministic)
	if !ok {
		return nil, errors.Wrapf(ErrContractViolation, "copy of %s lost its chance events", state.Key())
	}
	if err := next.AdvanceNondeterministic(r); err != nil {
		return nil, errors.Wrapf(ErrContractViolation, "available outcome %s rejected: %v", r, err)
	}
	return next, nil
}
