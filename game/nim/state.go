// Package nim is a subtraction game for any number of players: players take
// turns removing 1..MaxTake tokens from a single pile and whoever takes the
// last token wins.
package nim

import (
	"fmt"

	"gamesearch/game"

	"github.com/pkg/errors"
)

type State struct {
	players int
	pile    int
	maxTake int
	player  int
	moves   int
	winner  int
}

// New starts a game with players players and pile tokens.
func New(players, pile, maxTake int) *State {
	if players < 1 || pile < 1 || maxTake < 1 {
		panic(fmt.Sprintf("invalid nim setup: players=%d pile=%d maxTake=%d", players, pile, maxTake))
	}
	return &State{players: players, pile: pile, maxTake: maxTake, winner: -1}
}

func (s *State) Copy() game.State {
	c := *s
	return &c
}

// AvailableActions lists take counts; action code n removes n tokens.
func (s *State) AvailableActions() []game.Action {
	if s.IsGameOver() {
		return nil
	}
	n := min(s.maxTake, s.pile)
	actions := make([]game.Action, n)
	for i := range actions {
		actions[i] = game.NewAction(i + 1)
	}
	return actions
}

func (s *State) Advance(action game.Action) error {
	take := action.Code
	if s.IsGameOver() {
		return errors.Wrapf(game.ErrIllegalAction, "take %d: game is over", take)
	}
	if take < 1 || take > s.maxTake || take > s.pile {
		return errors.Wrapf(game.ErrIllegalAction, "take %d from pile of %d (max %d)", take, s.pile, s.maxTake)
	}
	s.pile -= take
	if s.pile == 0 {
		s.winner = s.player
	}
	s.player = (s.player + 1) % s.players
	s.moves++
	return nil
}

func (s *State) IsGameOver() bool {
	return s.pile == 0
}

// Winner returns the player who took the last token, or -1.
func (s *State) Winner() int {
	return s.winner
}

func (s *State) GameScore(perspective game.State) float64 {
	if s.winner < 0 {
		return 0
	}
	return s.GameScoreTuple().Of(perspective.Player())
}

// GameScoreTuple gives the winner 1 and splits -1 among the others, so every
// tuple sums to zero.
func (s *State) GameScoreTuple() game.ScoreTuple {
	t := game.NewScoreTuple(s.players)
	if s.winner < 0 {
		return t
	}
	if s.players > 1 {
		loss := -1 / float64(s.players-1)
		for i := range t {
			t[i] = loss
		}
	}
	t[s.winner] = 1
	return t
}

func (s *State) NumPlayers() int  { return s.players }
func (s *State) Player() int      { return s.player }
func (s *State) MoveCounter() int { return s.moves }
func (s *State) Pile() int        { return s.pile }

func (s *State) Key() string {
	return fmt.Sprintf("%d/%d:%d", s.pile, s.maxTake, s.player)
}

func (s *State) IsLegalState() bool {
	return s.pile >= 0 && s.player >= 0 && s.player < s.players && (s.pile == 0) == (s.winner >= 0)
}

func (s *State) String() string {
	return fmt.Sprintf("pile=%d player=%d", s.pile, s.player)
}
