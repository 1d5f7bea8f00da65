// Package tictactoe implements 3x3 TicTacToe on top of game.State. Boards are
// written as 9 characters, row by row, using '-', 'X' and 'O'.
package tictactoe

import (
	"fmt"
	"strconv"
	"strings"

	"gamesearch/game"

	"github.com/pkg/errors"
)

const (
	Empty  byte = '-'
	Cross  byte = 'X'
	Nought byte = 'O'

	Cells = 9
)

// Player numbers
const (
	PlayerX = 0
	PlayerO = 1
)

var marks = [2]byte{Cross, Nought}

var lines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// State is a TicTacToe position. X always moves first.
type State struct {
	board  [Cells]byte
	player int
	moves  int
}

func New() *State {
	s := &State{}
	for i := range s.board {
		s.board[i] = Empty
	}
	return s
}

// Parse reads a 9-character board. The player to move is derived from the
// number of marks on the board.
func Parse(board string) (*State, error) {
	if len(board) != Cells {
		return nil, errors.Errorf("board %q: want %d cells, got %d", board, Cells, len(board))
	}
	s := &State{}
	crosses, noughts := 0, 0
	for i := 0; i < Cells; i++ {
		switch c := board[i]; c {
		case Empty:
		case Cross:
			crosses++
		case Nought:
			noughts++
		default:
			return nil, errors.Errorf("board %q: invalid cell %q at %d", board, c, i)
		}
		s.board[i] = board[i]
	}
	switch crosses - noughts {
	case 0:
		s.player = PlayerX
	case 1:
		s.player = PlayerO
	default:
		return nil, errors.Errorf("board %q: %d X against %d O", board, crosses, noughts)
	}
	s.moves = crosses + noughts
	return s, nil
}

func (s *State) Copy() game.State {
	c := *s
	return &c
}

func (s *State) AvailableActions() []game.Action {
	if s.IsGameOver() {
		return nil
	}
	actions := make([]game.Action, 0, Cells-s.moves)
	for i, c := range s.board {
		if c == Empty {
			actions = append(actions, game.NewAction(i))
		}
	}
	return actions
}

func (s *State) Advance(action game.Action) error {
	cell := action.Code
	if cell < 0 || cell >= Cells {
		return errors.Wrapf(game.ErrIllegalAction, "cell %d out of range", cell)
	}
	if s.IsGameOver() {
		return errors.Wrapf(game.ErrIllegalAction, "cell %d: game is over", cell)
	}
	if s.board[cell] != Empty {
		return errors.Wrapf(game.ErrIllegalAction, "cell %d is taken by %c", cell, s.board[cell])
	}
	s.board[cell] = marks[s.player]
	s.player = 1 - s.player
	s.moves++
	return nil
}

// Winner returns the winning player or -1.
func (s *State) Winner() int {
	for _, line := range lines {
		c := s.board[line[0]]
		if c != Empty && c == s.board[line[1]] && c == s.board[line[2]] {
			if c == Cross {
				return PlayerX
			}
			return PlayerO
		}
	}
	return -1
}

func (s *State) IsGameOver() bool {
	return s.moves == Cells || s.Winner() >= 0
}

func (s *State) GameScore(perspective game.State) float64 {
	winner := s.Winner()
	switch {
	case winner < 0:
		return 0
	case winner == perspective.Player():
		return 1
	default:
		return -1
	}
}

func (s *State) GameScoreTuple() game.ScoreTuple {
	winner := s.Winner()
	if winner < 0 {
		return game.NewScoreTuple(2)
	}
	return game.ZeroSum(winner, 1)
}

func (s *State) NumPlayers() int  { return 2 }
func (s *State) Player() int      { return s.player }
func (s *State) MoveCounter() int { return s.moves }

// Key is the board followed by the player to move, e.g. "X---O----:0".
func (s *State) Key() string {
	return string(s.board[:]) + ":" + strconv.Itoa(s.player)
}

// IsLegalState checks mark parity against the player to move and that at most
// one side has a line.
func (s *State) IsLegalState() bool {
	crosses := strings.Count(string(s.board[:]), string(Cross))
	noughts := strings.Count(string(s.board[:]), string(Nought))
	switch {
	case crosses == noughts && s.player == PlayerX:
	case crosses == noughts+1 && s.player == PlayerO:
	default:
		return false
	}
	if crosses+noughts != s.moves {
		return false
	}
	wins := [2]bool{}
	for _, line := range lines {
		c := s.board[line[0]]
		if c != Empty && c == s.board[line[1]] && c == s.board[line[2]] {
			wins[strings.IndexByte("XO", c)] = true
		}
	}
	return !(wins[PlayerX] && wins[PlayerO])
}

// Cell returns the mark at index i.
func (s *State) Cell(i int) byte {
	return s.board[i]
}

// String returns the 9-character board.
func (s *State) String() string {
	return string(s.board[:])
}

// Pretty renders the board as three rows.
func (s *State) Pretty() string {
	var b strings.Builder
	for row := 0; row < 3; row++ {
		fmt.Fprintf(&b, "%c %c %c\n", s.board[3*row], s.board[3*row+1], s.board[3*row+2])
	}
	return b.String()
}
