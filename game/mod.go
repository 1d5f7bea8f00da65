package game

import "github.com/pkg/errors"

// ErrIllegalAction is returned by State.Advance when the action is not currently available.
var ErrIllegalAction = errors.New("illegal action")

// State is the capability set any turn-based game exposes to the searcher.
//
// Advance mutates the receiver in place, so callers that need to keep a sibling
// position must Copy first. Key must encode everything that affects the game's
// future (board and player to move at least): it is the transposition cache key.
type State interface {
	Copy() State
	AvailableActions() []Action
	Advance(Action) error
	IsGameOver() bool

	// GameScore is the reward from the point of view of perspective.Player().
	GameScore(perspective State) float64
	GameScoreTuple() ScoreTuple

	NumPlayers() int
	Player() int
	MoveCounter() int

	Key() string
	IsLegalState() bool
}

// Nondeterministic is implemented by games with chance events (dice, card draws).
// A state that is not IsNextActionDeterministic is waiting for one of
// AvailableRandoms to happen.
type Nondeterministic interface {
	State
	IsNextActionDeterministic() bool
	AvailableRandoms() []Action
	Probability(Action) float64
	AdvanceDeterministic(Action) error
	AdvanceNondeterministic(Action) error
}

// Evaluate scores a non-terminal state from the perspective of its player to move.
type Evaluate func(State) float64

// EvaluateTuple scores a non-terminal state for every player.
type EvaluateTuple func(State) ScoreTuple

// EvaluateScore falls back to the game's own score without looking ahead. For
// most unfinished games this is 0.
func EvaluateScore(s State) float64 {
	return s.GameScore(s)
}

// EvaluateScoreTuple is the tuple counterpart of EvaluateScore.
func EvaluateScoreTuple(s State) ScoreTuple {
	return s.GameScoreTuple()
}

// Contains reports whether action is among the state's available actions.
func Contains(s State, action Action) bool {
	for _, a := range s.AvailableActions() {
		if a.Equal(action) {
			return true
		}
	}
	return false
}
