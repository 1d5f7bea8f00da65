package searcher

import (
	"gamesearch/experiments/metrics"
	"gamesearch/game"

	"github.com/pkg/errors"
)

var (
	// ErrContractViolation means a game or caller broke the State contract, or
	// the search reached a state it cannot decide in. It is never retried.
	ErrContractViolation = errors.New("contract violation")

	// ErrUnsupportedPlayers is returned by the scalar path for more than two
	// players. It is a contract violation.
	ErrUnsupportedPlayers = errors.Wrap(ErrContractViolation, "scalar minimax supports at most two players")

	// ErrConfiguration is returned for unusable search parameters.
	ErrConfiguration = errors.New("configuration defect")

	// ErrIllegalState is returned for failed IsLegalState checks when debug
	// assertions are on.
	ErrIllegalState = errors.New("illegal state")
)

// Decision is the outcome of a root search.
type Decision struct {
	Action  game.Action
	Actions []game.Action

	// Values[i] scores Actions[i] for the player to move; the extra last slot
	// holds the best score. Root actions cut off by a deadline are NaN.
	Values []float64

	// Tuples[i] is the full score tuple of Actions[i]. Only the tuple search
	// fills it.
	Tuples []game.ScoreTuple
	Tuple  game.ScoreTuple

	Best     float64
	Complete bool
	Metric   metrics.SearchMetric
}

// ValueOf returns the value recorded for action.
func (d Decision) ValueOf(action game.Action) (float64, bool) {
	for i, a := range d.Actions {
		if a.Equal(action) {
			return d.Values[i], true
		}
	}
	return 0, false
}
