package searcher

import (
	"fmt"
	"strconv"

	"gamesearch/game"

	"github.com/pkg/errors"
)

// chainState never ends: every position offers width actions and the key is the
// path from the root, so there are no transpositions.
type chainState struct {
	path    string
	width   int
	players int
	illegal string // path reported as illegal
}

func newChain(width, players int) *chainState {
	return &chainState{width: width, players: players}
}

func (s *chainState) Copy() game.State {
	c := *s
	return &c
}

func (s *chainState) AvailableActions() []game.Action {
	actions := make([]game.Action, s.width)
	for i := range actions {
		actions[i] = game.NewAction(i)
	}
	return actions
}

func (s *chainState) Advance(a game.Action) error {
	if a.Code < 0 || a.Code >= s.width {
		return errors.Wrapf(game.ErrIllegalAction, "action %d", a.Code)
	}
	s.path += strconv.Itoa(a.Code)
	return nil
}

func (s *chainState) IsGameOver() bool                { return false }
func (s *chainState) GameScore(game.State) float64    { return 0 }
func (s *chainState) GameScoreTuple() game.ScoreTuple { return game.NewScoreTuple(s.players) }
func (s *chainState) NumPlayers() int                 { return s.players }
func (s *chainState) Player() int                     { return len(s.path) % s.players }
func (s *chainState) MoveCounter() int                { return len(s.path) }
func (s *chainState) Key() string                     { return "chain:" + s.path }
func (s *chainState) IsLegalState() bool              { return s.illegal == "" || s.path != s.illegal }

// diceState is a two-player game with one decision for player 0: a safe action
// worth 0.2 to player 0, or a gamble won with probability 0.75.
type diceState struct {
	stage   int // 0 decision, 1 waiting for the dice, 2 over
	player  int
	p0Score float64
}

const (
	safe   = 0
	gamble = 1
)

func (s *diceState) Copy() game.State {
	c := *s
	return &c
}

func (s *diceState) AvailableActions() []game.Action {
	if s.stage != 0 {
		return nil
	}
	return []game.Action{game.NewAction(safe), game.NewAction(gamble)}
}

func (s *diceState) Advance(a game.Action) error {
	if err := s.AdvanceDeterministic(a); err != nil {
		return err
	}
	if s.stage == 1 {
		return s.AdvanceNondeterministic(game.NewAction(0))
	}
	return nil
}

func (s *diceState) AdvanceDeterministic(a game.Action) error {
	if s.stage != 0 {
		return errors.Wrap(game.ErrIllegalAction, "no decision pending")
	}
	switch a.Code {
	case safe:
		s.stage, s.p0Score = 2, 0.2
	case gamble:
		s.stage = 1
	default:
		return errors.Wrapf(game.ErrIllegalAction, "action %d", a.Code)
	}
	s.player = 1
	return nil
}

func (s *diceState) IsNextActionDeterministic() bool { return s.stage != 1 }

func (s *diceState) AvailableRandoms() []game.Action {
	if s.stage != 1 {
		return nil
	}
	return []game.Action{game.NewAction(0), game.NewAction(1)}
}

func (s *diceState) Probability(r game.Action) float64 {
	if r.Code == 0 {
		return 0.75
	}
	return 0.25
}

func (s *diceState) AdvanceNondeterministic(r game.Action) error {
	if s.stage != 1 {
		return errors.Wrap(game.ErrIllegalAction, "no dice pending")
	}
	s.stage = 2
	if r.Code == 0 {
		s.p0Score = 1
	} else {
		s.p0Score = -1
	}
	return nil
}

func (s *diceState) IsGameOver() bool { return s.stage == 2 }

func (s *diceState) GameScore(perspective game.State) float64 {
	return s.GameScoreTuple().Of(perspective.Player())
}

func (s *diceState) GameScoreTuple() game.ScoreTuple {
	return game.ZeroSum(0, s.p0Score)
}

func (s *diceState) NumPlayers() int    { return 2 }
func (s *diceState) Player() int        { return s.player }
func (s *diceState) MoveCounter() int   { return s.stage }
func (s *diceState) IsLegalState() bool { return true }

func (s *diceState) Key() string {
	return fmt.Sprintf("dice:%d:%d:%g", s.stage, s.player, s.p0Score)
}
