// Package sim implements Sim: players colour the 15 edges of a complete graph
// on six nodes, and whoever closes a triangle in their own colour loses. The
// three-player variant eliminates the first such player and plays on.
package sim

import (
	"fmt"
	"strconv"
	"strings"

	"gamesearch/game"

	"github.com/pkg/errors"
)

const (
	Nodes = 6
	Edges = Nodes * (Nodes - 1) / 2

	noWinner = -2 // game still running
	draw     = -1
)

// edgeIndex[a][b] is the action code of the edge between nodes a and b.
var edgeIndex [Nodes][Nodes]int

// endpoints[e] are the two nodes of edge e.
var endpoints [Edges][2]int

func init() {
	e := 0
	for a := 0; a < Nodes-1; a++ {
		for b := a + 1; b < Nodes; b++ {
			edgeIndex[a][b], edgeIndex[b][a] = e, e
			endpoints[e] = [2]int{a, b}
			e++
		}
	}
}

// Edge returns the action code for the edge between two nodes.
func Edge(a, b int) int {
	if a == b || a < 0 || b < 0 || a >= Nodes || b >= Nodes {
		panic(fmt.Sprintf("no edge between %d and %d", a, b))
	}
	return edgeIndex[a][b]
}

type State struct {
	players int
	edges   [Edges]int8 // 0 uncoloured, otherwise player+1
	player  int
	moves   int
	loser   int // eliminated player, -1 if none
	winner  int
}

// New returns the empty graph for two or three players.
func New(players int) *State {
	if players != 2 && players != 3 {
		panic(fmt.Sprintf("sim is played by 2 or 3 players, not %d", players))
	}
	return &State{players: players, loser: -1, winner: noWinner}
}

func (s *State) Copy() game.State {
	c := *s
	return &c
}

func (s *State) AvailableActions() []game.Action {
	if s.IsGameOver() {
		return nil
	}
	actions := make([]game.Action, 0, Edges-s.moves)
	for e, c := range s.edges {
		if c == 0 {
			actions = append(actions, game.NewAction(e))
		}
	}
	return actions
}

func (s *State) Advance(action game.Action) error {
	e := action.Code
	if s.IsGameOver() {
		return errors.Wrapf(game.ErrIllegalAction, "edge %d: game is over", e)
	}
	if e < 0 || e >= Edges {
		return errors.Wrapf(game.ErrIllegalAction, "edge %d out of range", e)
	}
	if s.edges[e] != 0 {
		return errors.Wrapf(game.ErrIllegalAction, "edge %d already coloured by player %d", e, s.edges[e]-1)
	}

	s.edges[e] = int8(s.player + 1)
	s.moves++
	full := s.moves == Edges

	switch {
	case s.closesTriangle(e):
		if s.players == 2 || s.loser >= 0 {
			s.loser, s.winner = s.player, s.remaining(s.player)
		} else {
			s.loser = s.player
			if full {
				s.winner = draw
			}
		}
	case full:
		s.winner = draw
	}

	s.player = s.next()
	return nil
}

// closesTriangle reports whether edge e and two edges of the same colour form a
// triangle.
func (s *State) closesTriangle(e int) bool {
	a, b := endpoints[e][0], endpoints[e][1]
	colour := s.edges[e]
	for k := 0; k < Nodes; k++ {
		if k == a || k == b {
			continue
		}
		if s.edges[edgeIndex[a][k]] == colour && s.edges[edgeIndex[b][k]] == colour {
			return true
		}
	}
	return false
}

// remaining returns the one player who is neither the eliminated player nor
// excluded.
func (s *State) remaining(excluded int) int {
	for p := 0; p < s.players; p++ {
		if p != excluded && p != s.loser {
			return p
		}
	}
	panic("no player left")
}

func (s *State) next() int {
	p := (s.player + 1) % s.players
	if p == s.loser && s.players > 2 {
		p = (p + 1) % s.players
	}
	return p
}

func (s *State) IsGameOver() bool {
	return s.winner != noWinner
}

// Winner returns the winner, -1 for a draw and -2 while the game runs.
func (s *State) Winner() int {
	return s.winner
}

// Loser returns the eliminated player or -1.
func (s *State) Loser() int {
	return s.loser
}

func (s *State) GameScore(perspective game.State) float64 {
	return s.scoreOf(perspective.Player())
}

func (s *State) scoreOf(player int) float64 {
	switch {
	case player == s.loser:
		return -1
	case s.winner == noWinner, s.winner == draw:
		return 0
	case player == s.winner:
		return 1
	default:
		return -1
	}
}

func (s *State) GameScoreTuple() game.ScoreTuple {
	t := game.NewScoreTuple(s.players)
	for p := range t {
		t[p] = s.scoreOf(p)
	}
	return t
}

func (s *State) NumPlayers() int  { return s.players }
func (s *State) Player() int      { return s.player }
func (s *State) MoveCounter() int { return s.moves }

// Key encodes the edge colours, the player to move and the eliminated player.
// Without the last two, positions reached by different turn orders collide.
func (s *State) Key() string {
	loser := "-"
	if s.loser >= 0 {
		loser = strconv.Itoa(s.loser)
	}
	return s.String() + ":" + strconv.Itoa(s.player) + ":" + loser
}

func (s *State) IsLegalState() bool {
	if s.player < 0 || s.player >= s.players || (s.player == s.loser && !s.IsGameOver()) {
		return false
	}
	counts := make([]int, s.players)
	total := 0
	for _, c := range s.edges {
		if c > 0 {
			counts[c-1]++
			total++
		}
	}
	if total != s.moves {
		return false
	}
	if s.loser >= 0 {
		return true
	}
	// Strict rotation until someone is eliminated.
	for p, n := range counts {
		want := s.moves / s.players
		if p < s.moves%s.players {
			want++
		}
		if n != want {
			return false
		}
	}
	return s.player == s.moves%s.players
}

// String lists the colour of each edge: '-' or the 1-based player number.
func (s *State) String() string {
	var b strings.Builder
	for _, c := range s.edges {
		if c == 0 {
			b.WriteByte('-')
		} else {
			b.WriteByte('0' + byte(c))
		}
	}
	return b.String()
}
